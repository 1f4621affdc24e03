package components

import "github.com/gonewx/spritebuddy/pkg/action"

// ActionComponent 正在执行的 Batch（运行状态）
//
// 由 ActionSystem 创建和维护，其他系统只读。
type ActionComponent struct {
	// Batch 正在执行的过渡集合
	Batch action.Batch

	// Start 开始执行时节点的状态快照
	// 每个过渡都从这里插值到目标值
	Start NodeComponent

	// Elapsed 已执行时间（秒）
	Elapsed float64

	// IsFinished 是否已执行完毕
	IsFinished bool
}

// Progress 返回线性进度 0.0 ~ 1.0；零时长的 Batch 直接视为完成
func (a *ActionComponent) Progress() float64 {
	total := a.Batch.Duration.Seconds()
	if total <= 0 {
		return 1
	}
	p := a.Elapsed / total
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
