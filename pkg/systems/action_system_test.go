package systems

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/gonewx/spritebuddy/pkg/action"
	"github.com/gonewx/spritebuddy/pkg/components"
	"github.com/gonewx/spritebuddy/pkg/ecs"
	"github.com/gonewx/spritebuddy/pkg/keyframe"
)

func newTestNode(em *ecs.EntityManager, kf keyframe.Keyframe) (ecs.EntityID, *components.NodeComponent) {
	id := em.CreateEntity()
	node := components.NewNodeComponent(kf)
	ecs.AddComponent(em, id, node)
	return id, node
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestActionSystem_LinearMove 测试线性移动的中间值与终点
func TestActionSystem_LinearMove(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)

	start := keyframe.New()
	id, node := newTestNode(em, start)

	target := start
	target.Position = keyframe.Point{X: 100, Y: -50}
	batch := action.Build(target, &start, time.Second)
	ecs.AddComponent(em, id, &components.ActionCommandComponent{Batch: batch})

	system.Update(0.5)
	if !almostEqual(node.Position.X, 50) || !almostEqual(node.Position.Y, -25) {
		t.Errorf("half-way position = %+v, 期望 (50, -25)", node.Position)
	}
	if !system.IsRunning(id) {
		t.Error("batch should still be running")
	}

	system.Update(0.5)
	if node.Position != target.Position {
		t.Errorf("final position = %+v, 期望 %+v", node.Position, target.Position)
	}
	if system.IsRunning(id) {
		t.Error("batch should be finished")
	}
	if ecs.HasComponent[*components.ActionComponent](em, id) {
		t.Error("running state should be removed after finish")
	}

	cmd, _ := ecs.GetComponent[*components.ActionCommandComponent](em, id)
	if !cmd.Processed {
		t.Error("command should be marked processed")
	}
}

// TestActionSystem_EasingApplied 测试缓动曲线生效，而缩放始终线性
func TestActionSystem_EasingApplied(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)

	start := keyframe.New()
	id, node := newTestNode(em, start)

	target := start
	target.TimingMode = keyframe.TimingEaseIn
	target.Rotation = 2
	target.Scale = keyframe.Vector{X: 3, Y: 3}
	ecs.AddComponent(em, id, &components.ActionCommandComponent{
		Batch: action.Build(target, &start, 2*time.Second),
	})

	system.Update(1.0)

	// ease_in (t²) at 0.5 → 0.25
	if !almostEqual(node.Rotation, 0.5) {
		t.Errorf("eased rotation = %v, 期望 0.5", node.Rotation)
	}
	// scale is linear at 0.5 → 2
	if !almostEqual(node.Scale.X, 2) || !almostEqual(node.Scale.Y, 2) {
		t.Errorf("linear scale = %+v, 期望 (2, 2)", node.Scale)
	}
}

// TestActionSystem_FadeAndTint 测试透明度和着色
func TestActionSystem_FadeAndTint(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)

	start := keyframe.New()
	id, node := newTestNode(em, start)

	target := start
	target.Alpha = 0
	target.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	target.ColorBlendFactor = 1
	ecs.AddComponent(em, id, &components.ActionCommandComponent{
		Batch: action.Build(target, &start, time.Second),
	})

	system.Update(0.5)
	if !almostEqual(node.Alpha, 0.5) {
		t.Errorf("alpha = %v, 期望 0.5", node.Alpha)
	}
	if node.Color.G != 128 || !almostEqual(node.ColorBlendFactor, 0.5) {
		t.Errorf("tint = %+v blend %v", node.Color, node.ColorBlendFactor)
	}

	system.Update(0.5)
	if node.Alpha != 0 || node.Color != target.Color || node.ColorBlendFactor != 1 {
		t.Errorf("final node = %+v", node)
	}
}

// TestActionSystem_IdleBatch 测试空等待只消耗时间
func TestActionSystem_IdleBatch(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)

	kf := keyframe.New()
	kf.Position = keyframe.Point{X: 7, Y: 8}
	id, node := newTestNode(em, kf)

	batch := action.Build(kf, &kf, 300*time.Millisecond)
	if !batch.IsIdle() {
		t.Fatalf("expected idle batch, got %v", batch)
	}
	ecs.AddComponent(em, id, &components.ActionCommandComponent{Batch: batch})

	before := node.Snapshot()
	system.Update(0.2)
	if !system.IsRunning(id) {
		t.Error("idle batch should still be waiting")
	}
	system.Update(0.2)
	if system.IsRunning(id) {
		t.Error("idle batch should be finished")
	}
	if *node != before {
		t.Errorf("idle batch changed node: %+v → %+v", before, *node)
	}
}

// TestActionSystem_ZeroDuration 测试零时长立即生效
func TestActionSystem_ZeroDuration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)

	id, node := newTestNode(em, keyframe.New())

	target := keyframe.New()
	target.Size = keyframe.Size{Width: 32, Height: 16}
	ecs.AddComponent(em, id, &components.ActionCommandComponent{
		Batch: action.Build(target, nil, 0),
	})

	system.Update(0)
	if node.Size != target.Size {
		t.Errorf("size = %+v, 期望 %+v", node.Size, target.Size)
	}
	if system.IsRunning(id) {
		t.Error("zero-length batch should finish in the first update")
	}
}

// TestActionSystem_ReplaceCommand 测试新命令替换正在执行的 Batch
func TestActionSystem_ReplaceCommand(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)

	start := keyframe.New()
	id, node := newTestNode(em, start)

	first := start
	first.Position = keyframe.Point{X: 100}
	ecs.AddComponent(em, id, &components.ActionCommandComponent{Batch: action.Build(first, &start, time.Second)})
	system.Update(0.5) // x = 50

	second := first
	second.Position = keyframe.Point{X: 0}
	ecs.AddComponent(em, id, &components.ActionCommandComponent{Batch: action.Build(second, &first, time.Second)})
	system.Update(0.5) // from 50 toward 0 → 25

	if !almostEqual(node.Position.X, 25) {
		t.Errorf("position after replacement = %v, 期望 25", node.Position.X)
	}
}

// TestActionSystem_IgnoresEntitiesWithoutNode 测试没有节点组件的命令不会被处理
func TestActionSystem_IgnoresEntitiesWithoutNode(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)

	id := em.CreateEntity()
	cmd := &components.ActionCommandComponent{Batch: action.Batch{Duration: time.Second}}
	ecs.AddComponent(em, id, cmd)

	system.Update(0.1)
	if cmd.Processed {
		t.Error("command without NodeComponent should stay pending")
	}
}

// TestActionSystem_IsRunningAfterDestroy 测试实体销毁后不再被视为运行中
func TestActionSystem_IsRunningAfterDestroy(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)

	start := keyframe.New()
	id, _ := newTestNode(em, start)

	target := start
	target.Position = keyframe.Point{X: 10}
	ecs.AddComponent(em, id, &components.ActionCommandComponent{Batch: action.Build(target, &start, time.Second)})
	system.Update(0.1)
	if !system.IsRunning(id) {
		t.Fatal("batch should still be running")
	}

	// 标记删除后，清理之前仍然存在
	em.DestroyEntity(id)
	if !system.IsRunning(id) {
		t.Error("entity marked for removal should still report running until cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) || em.EntityCount() != 0 {
		t.Fatalf("entity should be removed, count = %d", em.EntityCount())
	}
	if system.IsRunning(id) {
		t.Error("destroyed entity should not report running")
	}
	if system.IsRunning(id + 100) {
		t.Error("unknown entity should not report running")
	}

	// 销毁后 Update 不再处理该实体
	system.Update(1)
}
