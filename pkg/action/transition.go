package action

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gonewx/spritebuddy/pkg/keyframe"
)

// Kind 过渡的属性类别
type Kind int

const (
	KindMove Kind = iota
	KindRotate
	KindResize
	KindScale
	KindFade
	KindTint
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindRotate:
		return "rotate"
	case KindResize:
		return "resize"
	case KindScale:
		return "scale"
	case KindFade:
		return "fade"
	case KindTint:
		return "tint"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Curve 过渡的缓动曲线
type Curve int

const (
	CurveLinear Curve = iota
	CurveEaseIn
	CurveEaseOut
	CurveEaseInEaseOut
)

func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveEaseIn:
		return "ease_in"
	case CurveEaseOut:
		return "ease_out"
	case CurveEaseInEaseOut:
		return "ease_in_ease_out"
	}
	return fmt.Sprintf("Curve(%d)", int(c))
}

// CurveFor 将关键帧的时间曲线映射为过渡的缓动曲线（全函数）
func CurveFor(mode keyframe.TimingMode) Curve {
	switch mode {
	case keyframe.TimingEaseIn:
		return CurveEaseIn
	case keyframe.TimingEaseOut:
		return CurveEaseOut
	case keyframe.TimingEaseInEaseOut:
		return CurveEaseInEaseOut
	}
	return CurveLinear
}

// Transition 单个属性在固定时长内的变化
//
// 变体集合是封闭的：Move / Rotate / Resize / Scale / Fade / Tint。
// 执行端（见 systems.ActionSystem）按 Kind 分派。
type Transition interface {
	Kind() Kind
	Duration() time.Duration
	isTransition()
}

// Move 移动到目标位置
type Move struct {
	To    keyframe.Point
	Span  time.Duration
	Curve Curve
}

// Rotate 旋转到目标角度（弧度，不走最短弧）
type Rotate struct {
	To    float64
	Span  time.Duration
	Curve Curve
}

// Resize 调整到目标尺寸
type Resize struct {
	To    keyframe.Size
	Span  time.Duration
	Curve Curve
}

// Scale 缩放到目标比例
//
// 注意：Scale 不携带缓动曲线，执行时总是线性。
type Scale struct {
	To   keyframe.Vector
	Span time.Duration
}

// Fade 透明度渐变到目标值
type Fade struct {
	To    float64
	Span  time.Duration
	Curve Curve
}

// Tint 颜色与混合系数一起过渡到目标值
type Tint struct {
	Color       color.RGBA
	BlendFactor float64
	Span        time.Duration
	Curve       Curve
}

func (Move) Kind() Kind   { return KindMove }
func (Rotate) Kind() Kind { return KindRotate }
func (Resize) Kind() Kind { return KindResize }
func (Scale) Kind() Kind  { return KindScale }
func (Fade) Kind() Kind   { return KindFade }
func (Tint) Kind() Kind   { return KindTint }

func (t Move) Duration() time.Duration   { return t.Span }
func (t Rotate) Duration() time.Duration { return t.Span }
func (t Resize) Duration() time.Duration { return t.Span }
func (t Scale) Duration() time.Duration  { return t.Span }
func (t Fade) Duration() time.Duration   { return t.Span }
func (t Tint) Duration() time.Duration   { return t.Span }

func (Move) isTransition()   {}
func (Rotate) isTransition() {}
func (Resize) isTransition() {}
func (Scale) isTransition()  {}
func (Fade) isTransition()   {}
func (Tint) isTransition()   {}

// Easing 返回过渡携带的缓动曲线；Scale 不携带曲线，返回 (CurveLinear, false)
func Easing(t Transition) (Curve, bool) {
	switch v := t.(type) {
	case Move:
		return v.Curve, true
	case Rotate:
		return v.Curve, true
	case Resize:
		return v.Curve, true
	case Fade:
		return v.Curve, true
	case Tint:
		return v.Curve, true
	}
	return CurveLinear, false
}

func (t Move) String() string {
	return fmt.Sprintf("move to (%g, %g) over %v [%v]", t.To.X, t.To.Y, t.Span, t.Curve)
}

func (t Rotate) String() string {
	return fmt.Sprintf("rotate to %g rad over %v [%v]", t.To, t.Span, t.Curve)
}

func (t Resize) String() string {
	return fmt.Sprintf("resize to %gx%g over %v [%v]", t.To.Width, t.To.Height, t.Span, t.Curve)
}

func (t Scale) String() string {
	return fmt.Sprintf("scale to (%g, %g) over %v", t.To.X, t.To.Y, t.Span)
}

func (t Fade) String() string {
	return fmt.Sprintf("fade to %g over %v [%v]", t.To, t.Span, t.Curve)
}

func (t Tint) String() string {
	return fmt.Sprintf("tint to #%02x%02x%02x%02x blend %g over %v [%v]",
		t.Color.R, t.Color.G, t.Color.B, t.Color.A, t.BlendFactor, t.Span, t.Curve)
}
