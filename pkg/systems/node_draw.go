package systems

import (
	"github.com/gonewx/spritebuddy/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// ApplyNodeDrawOptions 将节点状态映射为 ebiten 绘制参数
//
// 变换顺序：以图片中心为锚点 → 缩放到 Size × Scale → 旋转 → 平移到 Position。
// 颜色：先按 ColorBlendFactor 在白色与 Color 之间混合得到着色系数，再乘以 Alpha。
//
// 参数：
//   - node: 节点状态
//   - imgW, imgH: 图片原始尺寸（像素）
//   - op: 要写入的绘制参数（GeoM 和 ColorScale 会被重置）
func ApplyNodeDrawOptions(node *components.NodeComponent, imgW, imgH int, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.ColorScale.Reset()

	if imgW <= 0 || imgH <= 0 {
		return
	}

	w, h := float64(imgW), float64(imgH)
	sx, sy := node.Scale.X, node.Scale.Y
	if node.Size.Width > 0 {
		sx *= node.Size.Width / w
	}
	if node.Size.Height > 0 {
		sy *= node.Size.Height / h
	}

	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(node.Rotation)
	op.GeoM.Translate(node.Position.X, node.Position.Y)

	f := float32(node.ColorBlendFactor)
	if f > 0 {
		r := 1 - f + f*float32(node.Color.R)/0xff
		g := 1 - f + f*float32(node.Color.G)/0xff
		b := 1 - f + f*float32(node.Color.B)/0xff
		op.ColorScale.Scale(r, g, b, 1)
	}
	op.ColorScale.ScaleAlpha(float32(node.Alpha))
}
