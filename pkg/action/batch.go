package action

import (
	"fmt"
	"strings"
	"time"
)

// Batch 一次关键帧切换产生的过渡集合
//
// Group 中的过渡同时开始、在 Duration 后一起结束。
// Group 为空时 Batch 表示一段等待，仍然占用 Duration，
// 这样无论有多少属性变化，每一步都推进相同的时间。
type Batch struct {
	Group    []Transition
	Duration time.Duration
}

// IsIdle 是否为空等待
func (b Batch) IsIdle() bool {
	return len(b.Group) == 0
}

// Find 返回指定类别的过渡（每个类别最多一个）
func (b Batch) Find(kind Kind) (Transition, bool) {
	for _, t := range b.Group {
		if t.Kind() == kind {
			return t, true
		}
	}
	return nil, false
}

// Kinds 按求值顺序返回 Group 中的类别
func (b Batch) Kinds() []Kind {
	kinds := make([]Kind, 0, len(b.Group))
	for _, t := range b.Group {
		kinds = append(kinds, t.Kind())
	}
	return kinds
}

func (b Batch) String() string {
	if b.IsIdle() {
		return fmt.Sprintf("wait %v", b.Duration)
	}
	parts := make([]string, 0, len(b.Group))
	for _, t := range b.Group {
		parts = append(parts, fmt.Sprint(t))
	}
	return fmt.Sprintf("group(%s) %v", strings.Join(parts, "; "), b.Duration)
}
