package components

import "github.com/gonewx/spritebuddy/pkg/action"

// ActionCommandComponent 过渡执行命令组件(纯数据)
//
// 设计目的:
//
//	action.Build 只负责生成 Batch，执行交给 ActionSystem；
//	调用方把 Batch 作为命令组件挂到节点实体上即可，双方不直接耦合
//
// 生命周期:
//  1. 调用方添加此组件到拥有 NodeComponent 的实体
//  2. ActionSystem 在 Update() 中读取命令，记录节点起始状态并开始执行
//  3. 执行后标记 Processed = true
//  4. Batch 结束后 ActionSystem 移除运行状态，命令组件保留供调试
//
// 示例:
//
//	batch := action.Build(next, &prev, 500*time.Millisecond)
//	ecs.AddComponent(em, nodeID, &components.ActionCommandComponent{Batch: batch})
//
// 注意事项:
//   - 一个实体同时只应有一个命令(后续命令会覆盖前一个，正在执行的 Batch 会被替换)
type ActionCommandComponent struct {
	// Batch 待执行的过渡集合
	Batch action.Batch

	// Processed 是否已被 ActionSystem 处理
	Processed bool

	// Timestamp 命令创建时间(游戏时间,单位:秒)
	// 由添加组件的系统设置(可选)，仅用于调试
	Timestamp float64
}
