package systems

import (
	"log"

	"github.com/gonewx/spritebuddy/pkg/action"
	"github.com/gonewx/spritebuddy/pkg/components"
	"github.com/gonewx/spritebuddy/pkg/ecs"
	"github.com/gonewx/spritebuddy/pkg/utils"
)

// ActionSystem 执行节点上的过渡集合（action.Batch）
//
// 职责：
//   - 读取未处理的 ActionCommandComponent，记录节点起始状态，开始执行
//   - 每帧推进所有正在执行的 Batch；同一 Batch 内的过渡同步推进、同时结束
//   - Batch 到达 Duration 时写入最终目标值并移除运行状态
//
// 插值规则：
//   - 除 Scale 外，过渡按自身携带的缓动曲线插值（utils.Ease）
//   - Scale 不携带曲线，始终线性
//   - Rotate 直接对角度做线性插值，不取最短弧
//   - 空等待只消耗时间，不改变节点
type ActionSystem struct {
	entityManager *ecs.EntityManager
	// Verbose 为 true 时记录每个 Batch 的开始和结束
	Verbose bool
}

// NewActionSystem 创建过渡执行系统
func NewActionSystem(em *ecs.EntityManager) *ActionSystem {
	return &ActionSystem{
		entityManager: em,
	}
}

// Update 推进所有节点的过渡
//
// 参数：
//   - deltaTime: 距上一帧的时间（秒）
func (s *ActionSystem) Update(deltaTime float64) {
	s.processCommands()

	entities := ecs.GetEntitiesWith2[*components.ActionComponent, *components.NodeComponent](s.entityManager)
	for _, id := range entities {
		running, _ := ecs.GetComponent[*components.ActionComponent](s.entityManager, id)
		node, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, id)

		if running.IsFinished {
			continue
		}

		running.Elapsed += deltaTime
		s.apply(running, node)

		if running.Progress() >= 1 {
			running.IsFinished = true
			ecs.RemoveComponent[*components.ActionComponent](s.entityManager, id)
			if s.Verbose {
				log.Printf("[ActionSystem] Batch finished (entity %d): %v", id, running.Batch)
			}
		}
	}
}

// IsRunning 节点上是否有尚未完成的 Batch（包括尚未开始的命令）；已销毁的实体返回 false
func (s *ActionSystem) IsRunning(id ecs.EntityID) bool {
	if !s.entityManager.Exists(id) {
		return false
	}
	if cmd, ok := ecs.GetComponent[*components.ActionCommandComponent](s.entityManager, id); ok && !cmd.Processed {
		return true
	}
	running, ok := ecs.GetComponent[*components.ActionComponent](s.entityManager, id)
	return ok && !running.IsFinished
}

// processCommands 将新命令转换为运行状态
func (s *ActionSystem) processCommands() {
	entities := ecs.GetEntitiesWith2[*components.ActionCommandComponent, *components.NodeComponent](s.entityManager)
	for _, id := range entities {
		cmd, _ := ecs.GetComponent[*components.ActionCommandComponent](s.entityManager, id)
		if cmd.Processed {
			continue
		}
		node, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, id)

		if prev, ok := ecs.GetComponent[*components.ActionComponent](s.entityManager, id); ok && !prev.IsFinished {
			log.Printf("[ActionSystem] Entity %d: replacing unfinished batch at %.3fs", id, prev.Elapsed)
		}

		ecs.AddComponent(s.entityManager, id, &components.ActionComponent{
			Batch: cmd.Batch,
			Start: node.Snapshot(),
		})
		cmd.Processed = true

		if s.Verbose {
			log.Printf("[ActionSystem] Batch started (entity %d): %v", id, cmd.Batch)
		}
	}
}

// apply 将当前进度下的插值结果写入节点
func (s *ActionSystem) apply(running *components.ActionComponent, node *components.NodeComponent) {
	p := running.Progress()
	start := &running.Start

	for _, t := range running.Batch.Group {
		e := p
		if curve, ok := action.Easing(t); ok {
			e = utils.Ease(curve)(p)
		}

		switch v := t.(type) {
		case action.Move:
			node.Position.X = mix(start.Position.X, v.To.X, e)
			node.Position.Y = mix(start.Position.Y, v.To.Y, e)
		case action.Rotate:
			node.Rotation = mix(start.Rotation, v.To, e)
		case action.Resize:
			node.Size.Width = mix(start.Size.Width, v.To.Width, e)
			node.Size.Height = mix(start.Size.Height, v.To.Height, e)
		case action.Scale:
			node.Scale.X = mix(start.Scale.X, v.To.X, e)
			node.Scale.Y = mix(start.Scale.Y, v.To.Y, e)
		case action.Fade:
			node.Alpha = utils.Clamp01(mix(start.Alpha, v.To, e))
		case action.Tint:
			node.Color = utils.LerpColor(start.Color, v.Color, e)
			node.ColorBlendFactor = utils.Clamp01(mix(start.ColorBlendFactor, v.BlendFactor, e))
		}
	}
}

// mix 在进度到达终点时直接返回目标值，避免浮点误差残留
func mix(a, b, e float64) float64 {
	if e >= 1 {
		return b
	}
	return utils.Lerp(a, b, e)
}
