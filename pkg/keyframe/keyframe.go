package keyframe

import (
	"fmt"
	"image/color"
	"strings"

	"gopkg.in/yaml.v3"
)

// Point 二维坐标（节点位置）
type Point struct {
	X float64
	Y float64
}

// Size 二维尺寸（节点宽高）
type Size struct {
	Width  float64
	Height float64
}

// Vector 二维向量（节点 X/Y 缩放）
type Vector struct {
	X float64
	Y float64
}

// TimingMode 关键帧的时间曲线
//
// 取值集合是封闭的：Linear / EaseIn / EaseOut / EaseInEaseOut。
type TimingMode int

const (
	TimingLinear TimingMode = iota
	TimingEaseIn
	TimingEaseOut
	TimingEaseInEaseOut
)

// String 返回 YAML 中使用的规范名称
func (m TimingMode) String() string {
	switch m {
	case TimingLinear:
		return "linear"
	case TimingEaseIn:
		return "ease_in"
	case TimingEaseOut:
		return "ease_out"
	case TimingEaseInEaseOut:
		return "ease_in_ease_out"
	}
	return fmt.Sprintf("TimingMode(%d)", int(m))
}

// ParseTimingMode 解析时间曲线名称
//
// 同时接受下划线写法（ease_in）和驼峰写法（easeIn），不区分大小写。
func ParseTimingMode(s string) (TimingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return TimingLinear, nil
	case "ease_in", "easein":
		return TimingEaseIn, nil
	case "ease_out", "easeout":
		return TimingEaseOut, nil
	case "ease_in_ease_out", "easeineaseout", "ease_in_out", "easeinout":
		return TimingEaseInEaseOut, nil
	}
	return TimingLinear, fmt.Errorf("unknown timing mode %q", s)
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (m *TimingMode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	mode, err := ParseTimingMode(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = mode
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (m TimingMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// Keyframe 节点可动画属性在某一时刻的快照
//
// Keyframe 是值类型，构造后不应再修改；两个关键帧之间只按字段值比较。
type Keyframe struct {
	Position Point
	Rotation float64 // 弧度
	Size     Size
	Scale    Vector
	Alpha    float64 // 0.0 ~ 1.0

	// Color 与 ColorBlendFactor 共同决定着色（tint）
	Color            color.RGBA
	ColorBlendFactor float64

	TimingMode TimingMode
}

// New 返回恒等状态的关键帧：原点、不旋转、缩放 1、完全不透明、白色且不混合
func New() Keyframe {
	return Keyframe{
		Scale: Vector{X: 1, Y: 1},
		Alpha: 1,
		Color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}
