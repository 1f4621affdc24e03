package utils

import (
	"image/color"
	"math"

	"github.com/gonewx/spritebuddy/pkg/action"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制过渡的速度曲线。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseFunc 缓动函数签名
type EaseFunc func(t float64) float64

// Ease 返回缓动曲线对应的缓动函数
//
// 曲线与函数的对应关系：
//   - linear → EaseLinear
//   - ease_in → EaseInQuad
//   - ease_out → EaseOutQuad
//   - ease_in_ease_out → EaseInOutQuad
func Ease(curve action.Curve) EaseFunc {
	switch curve {
	case action.CurveEaseIn:
		return EaseInQuad
	case action.CurveEaseOut:
		return EaseOutQuad
	case action.CurveEaseInEaseOut:
		return EaseInOutQuad
	}
	return EaseLinear
}

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInOutQuad 二次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Clamp01 将进度限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpColor 按通道对颜色做线性插值
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: lerpChannel(a.A, b.A, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(Lerp(float64(a), float64(b), t))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
