package components

import (
	"image/color"

	"github.com/gonewx/spritebuddy/pkg/keyframe"
)

// NodeComponent 节点的可动画状态（纯数据）
//
// ActionSystem 在执行过渡时逐帧写入这些字段，
// 渲染端通过 systems.ApplyNodeDrawOptions 把它们映射为 ebiten 的绘制参数。
type NodeComponent struct {
	// Position 节点中心点（像素）
	Position keyframe.Point

	// Rotation 旋转角度（弧度）
	Rotation float64

	// Size 节点显示尺寸（像素）
	// 为零时渲染端使用图片原始尺寸
	Size keyframe.Size

	// Scale X/Y 缩放比例，叠加在 Size 之上
	Scale keyframe.Vector

	// Alpha 不透明度 0.0 ~ 1.0
	Alpha float64

	// Color 着色颜色，ColorBlendFactor 为混合系数 0.0 ~ 1.0
	// 混合系数为 0 时不着色
	Color            color.RGBA
	ColorBlendFactor float64
}

// NewNodeComponent 以关键帧为初始状态创建节点组件
func NewNodeComponent(kf keyframe.Keyframe) *NodeComponent {
	return &NodeComponent{
		Position:         kf.Position,
		Rotation:         kf.Rotation,
		Size:             kf.Size,
		Scale:            kf.Scale,
		Alpha:            kf.Alpha,
		Color:            kf.Color,
		ColorBlendFactor: kf.ColorBlendFactor,
	}
}

// Snapshot 返回当前状态的副本
func (n *NodeComponent) Snapshot() NodeComponent {
	return *n
}
