package components

import (
	"testing"
	"time"

	"github.com/gonewx/spritebuddy/pkg/action"
	"github.com/gonewx/spritebuddy/pkg/keyframe"
)

// TestActionCommandComponent_ZeroValue 测试零值命令表示零时长等待
func TestActionCommandComponent_ZeroValue(t *testing.T) {
	var cmd ActionCommandComponent

	if cmd.Processed {
		t.Error("Expected Processed to be false (zero value)")
	}
	if !cmd.Batch.IsIdle() || cmd.Batch.Duration != 0 {
		t.Errorf("Expected zero-length idle batch, got %v", cmd.Batch)
	}
	if cmd.Timestamp != 0.0 {
		t.Error("Expected Timestamp to be 0.0 (zero value)")
	}
}

// TestActionComponent_Progress 测试进度计算
func TestActionComponent_Progress(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		elapsed  float64
		expected float64
	}{
		{"开始", time.Second, 0, 0},
		{"一半", 2 * time.Second, 1, 0.5},
		{"超出", time.Second, 3, 1},
		{"零时长", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &ActionComponent{
				Batch:   action.Batch{Duration: tt.duration},
				Elapsed: tt.elapsed,
			}
			if got := a.Progress(); got != tt.expected {
				t.Errorf("Progress() = %v, 期望 %v", got, tt.expected)
			}
		})
	}
}

// TestNewNodeComponent 测试从关键帧初始化节点
func TestNewNodeComponent(t *testing.T) {
	kf := keyframe.New()
	kf.Position = keyframe.Point{X: 5, Y: 6}
	kf.Rotation = 1.2

	node := NewNodeComponent(kf)
	if node.Position != kf.Position || node.Rotation != 1.2 {
		t.Errorf("node = %+v", node)
	}
	if node.Alpha != 1 || node.Scale != kf.Scale {
		t.Errorf("defaults not copied: %+v", node)
	}

	snap := node.Snapshot()
	node.Alpha = 0
	if snap.Alpha != 1 {
		t.Error("Snapshot should be independent of later changes")
	}
}
