// Package action 将关键帧描述转换为一组并发执行的属性过渡。
//
// Build 是纯函数：不持有状态、不记录日志、不返回错误，可以在多个 goroutine 中并发调用。
// 生成的 Batch 交给执行端（systems.ActionSystem 或其他引擎适配层）运行。
package action

import (
	"time"

	"github.com/gonewx/spritebuddy/pkg/keyframe"
)

// Build 根据当前关键帧与上一关键帧生成过渡集合
//
// 属性按固定顺序求值：位置、旋转、尺寸、缩放、透明度、着色。
//
// previous 为 nil（序列中的第一帧）时：
//   - 位置/旋转/尺寸/缩放 总是生成过渡（从节点当前状态出发）
//   - 透明度/着色 总是跳过，只有从第二帧开始才会生成
//
// 没有任何属性变化时返回时长为 duration 的空等待。
// duration 为负数时按 0 处理。
func Build(current keyframe.Keyframe, previous *keyframe.Keyframe, duration time.Duration) Batch {
	if duration < 0 {
		duration = 0
	}

	group := make([]Transition, 0, 6)
	for _, build := range builders {
		if t, ok := build(&current, previous, duration); ok {
			group = append(group, t)
		}
	}

	if len(group) == 0 {
		return Batch{Duration: duration}
	}
	return Batch{Group: group, Duration: duration}
}

type transitionBuilder func(current, previous *keyframe.Keyframe, d time.Duration) (Transition, bool)

// builders 的顺序即求值顺序
var builders = []transitionBuilder{
	moveTransition,
	rotateTransition,
	resizeTransition,
	scaleTransition,
	fadeTransition,
	tintTransition,
}

func moveTransition(current, previous *keyframe.Keyframe, d time.Duration) (Transition, bool) {
	if previous != nil && current.Position == previous.Position {
		return nil, false
	}
	return Move{To: current.Position, Span: d, Curve: CurveFor(current.TimingMode)}, true
}

func rotateTransition(current, previous *keyframe.Keyframe, d time.Duration) (Transition, bool) {
	if previous != nil && current.Rotation == previous.Rotation {
		return nil, false
	}
	return Rotate{To: current.Rotation, Span: d, Curve: CurveFor(current.TimingMode)}, true
}

func resizeTransition(current, previous *keyframe.Keyframe, d time.Duration) (Transition, bool) {
	if previous != nil && current.Size == previous.Size {
		return nil, false
	}
	return Resize{To: current.Size, Span: d, Curve: CurveFor(current.TimingMode)}, true
}

// scaleTransition 不设置缓动曲线，执行端按线性处理
func scaleTransition(current, previous *keyframe.Keyframe, d time.Duration) (Transition, bool) {
	if previous != nil && current.Scale == previous.Scale {
		return nil, false
	}
	return Scale{To: current.Scale, Span: d}, true
}

func fadeTransition(current, previous *keyframe.Keyframe, d time.Duration) (Transition, bool) {
	if previous == nil || current.Alpha == previous.Alpha {
		return nil, false
	}
	return Fade{To: current.Alpha, Span: d, Curve: CurveFor(current.TimingMode)}, true
}

func tintTransition(current, previous *keyframe.Keyframe, d time.Duration) (Transition, bool) {
	if previous == nil {
		return nil, false
	}
	if current.Color == previous.Color && current.ColorBlendFactor == previous.ColorBlendFactor {
		return nil, false
	}
	return Tint{
		Color:       current.Color,
		BlendFactor: current.ColorBlendFactor,
		Span:        d,
		Curve:       CurveFor(current.TimingMode),
	}, true
}
