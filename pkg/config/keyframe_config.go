package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gonewx/spritebuddy/pkg/keyframe"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// KeyframeConfig 关键帧文档的顶层结构
//
// 一个文档描述同一节点的一串关键帧，相邻两帧之间构成一段过渡。
type KeyframeConfig struct {
	// Name 文档名称（用于日志和输出）
	Name string `yaml:"name"`

	// DefaultDuration 每段过渡的默认时长（秒），可被关键帧的 duration 覆盖
	DefaultDuration *float64 `yaml:"default_duration,omitempty"`

	// DefaultTimingMode 关键帧未指定 timing_mode 时使用的时间曲线
	DefaultTimingMode *keyframe.TimingMode `yaml:"default_timing_mode,omitempty"`

	// Frames 关键帧列表（至少一个）
	Frames []KeyframeDef `yaml:"keyframes"`
}

// KeyframeDef 单个关键帧的 YAML 定义
//
// 所有字段都是可选的：省略的字段继承上一个关键帧的值，
// 第一个关键帧从 keyframe.New() 的恒等状态继承。
type KeyframeDef struct {
	// Position 位置 [x, y]
	Position []float64 `yaml:"position,omitempty"`

	// Rotation 旋转角度（弧度）
	Rotation *float64 `yaml:"rotation,omitempty"`

	// Size 尺寸 [width, height]
	Size []float64 `yaml:"size,omitempty"`

	// Scale 缩放 [x, y]
	Scale []float64 `yaml:"scale,omitempty"`

	// Alpha 不透明度 0.0 ~ 1.0
	Alpha *float64 `yaml:"alpha,omitempty"`

	// Color 着色颜色："#rgb"、"#rrggbb"、"#rrggbbaa" 或 CSS 颜色名（如 "orange"）
	Color string `yaml:"color,omitempty"`

	// ColorBlendFactor 着色混合系数 0.0 ~ 1.0
	ColorBlendFactor *float64 `yaml:"color_blend_factor,omitempty"`

	// TimingMode 本关键帧的时间曲线
	TimingMode *keyframe.TimingMode `yaml:"timing_mode,omitempty"`

	// Duration 以本关键帧结尾的那段过渡的时长（秒）
	Duration *float64 `yaml:"duration,omitempty"`
}

// LoadKeyframeConfig 从 YAML 文件加载关键帧文档
//
// 参数：
//   - path: 文档路径
//
// 返回：
//   - *KeyframeConfig: 解析并验证后的文档
//   - error: 读取、解析或验证错误
func LoadKeyframeConfig(path string) (*KeyframeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}
	return ParseKeyframeConfig(data, path)
}

// ParseKeyframeConfig 解析关键帧文档内容
//
// source 仅用于错误信息（通常是文件路径）。
func ParseKeyframeConfig(data []byte, source string) (*KeyframeConfig, error) {
	var config KeyframeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("无法解析配置文件 %s: %w", source, err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("配置文件 %s 验证失败: %w", source, err)
	}

	if config.Name == "" {
		config.Name = source
	}
	return &config, nil
}

// MaxSegmentSeconds 单段过渡时长的上限（秒）
const MaxSegmentSeconds = 3600.0

// validateConfig 验证文档的完整性和取值范围
//
// 所有数值必须是有限值（拒绝 .nan / .inf）：NaN 与自身不相等，会让每一帧都被视为发生了变化。
func validateConfig(config *KeyframeConfig) error {
	if len(config.Frames) == 0 {
		return fmt.Errorf("'keyframes' 列表为空")
	}

	if config.DefaultDuration != nil {
		if err := validateDuration(*config.DefaultDuration, "default_duration"); err != nil {
			return err
		}
	}

	for i, def := range config.Frames {
		if err := validateFrame(&def); err != nil {
			return fmt.Errorf("关键帧 #%d: %w", i, err)
		}
	}

	return nil
}

// validateFrame 验证单个关键帧定义
func validateFrame(def *KeyframeDef) error {
	if err := validatePair(def.Position, "position"); err != nil {
		return err
	}
	if err := validatePair(def.Size, "size"); err != nil {
		return err
	}
	if len(def.Size) == 2 && (def.Size[0] < 0 || def.Size[1] < 0) {
		return fmt.Errorf("'size' 不能为负数")
	}
	if err := validatePair(def.Scale, "scale"); err != nil {
		return err
	}

	if def.Rotation != nil && !isFinite(*def.Rotation) {
		return fmt.Errorf("'rotation' 必须是有限数值，当前值 %g", *def.Rotation)
	}
	if def.Alpha != nil && !inUnitRange(*def.Alpha) {
		return fmt.Errorf("'alpha' 必须在 0.0 ~ 1.0 之间，当前值 %g", *def.Alpha)
	}
	if def.ColorBlendFactor != nil && !inUnitRange(*def.ColorBlendFactor) {
		return fmt.Errorf("'color_blend_factor' 必须在 0.0 ~ 1.0 之间，当前值 %g", *def.ColorBlendFactor)
	}
	if def.Duration != nil {
		if err := validateDuration(*def.Duration, "duration"); err != nil {
			return err
		}
	}

	if def.Color != "" {
		if _, err := ParseColor(def.Color); err != nil {
			return err
		}
	}
	return nil
}

// validateDuration 时长必须在 0 ~ MaxSegmentSeconds 之间
func validateDuration(seconds float64, field string) error {
	if !isFinite(seconds) || seconds < 0 || seconds > MaxSegmentSeconds {
		return fmt.Errorf("'%s' 必须在 0 ~ %g 秒之间，当前值 %g", field, MaxSegmentSeconds, seconds)
	}
	return nil
}

// validatePair 验证 [a, b] 形式的二元组（省略时合法）
func validatePair(values []float64, field string) error {
	if values == nil {
		return nil
	}
	if len(values) != 2 {
		return fmt.Errorf("'%s' 需要 2 个数值，实际 %d 个", field, len(values))
	}
	if !isFinite(values[0]) || !isFinite(values[1]) {
		return fmt.Errorf("'%s' 必须是有限数值，当前值 %v", field, values)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// inUnitRange NaN 不在任何区间内
func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}

// ApplyDefaults 用外部默认值填充文档中未声明的默认项
//
// 已在文档中声明的 default_duration / default_timing_mode 保持不变。
func (c *KeyframeConfig) ApplyDefaults(duration time.Duration, mode keyframe.TimingMode) {
	if c.DefaultDuration == nil {
		seconds := duration.Seconds()
		c.DefaultDuration = &seconds
	}
	if c.DefaultTimingMode == nil {
		c.DefaultTimingMode = &mode
	}
}

// Keyframes 按继承规则展开为完整的关键帧列表
//
// timing_mode 省略时优先使用 default_timing_mode，否则继承上一个关键帧。
func (c *KeyframeConfig) Keyframes() ([]keyframe.Keyframe, error) {
	state := keyframe.New()
	if c.DefaultTimingMode != nil {
		state.TimingMode = *c.DefaultTimingMode
	}

	result := make([]keyframe.Keyframe, 0, len(c.Frames))
	for i, def := range c.Frames {
		if len(def.Position) == 2 {
			state.Position = keyframe.Point{X: def.Position[0], Y: def.Position[1]}
		}
		if def.Rotation != nil {
			state.Rotation = *def.Rotation
		}
		if len(def.Size) == 2 {
			state.Size = keyframe.Size{Width: def.Size[0], Height: def.Size[1]}
		}
		if len(def.Scale) == 2 {
			state.Scale = keyframe.Vector{X: def.Scale[0], Y: def.Scale[1]}
		}
		if def.Alpha != nil {
			state.Alpha = *def.Alpha
		}
		if def.Color != "" {
			rgba, err := ParseColor(def.Color)
			if err != nil {
				return nil, fmt.Errorf("关键帧 #%d: %w", i, err)
			}
			state.Color = rgba
		}
		if def.ColorBlendFactor != nil {
			state.ColorBlendFactor = *def.ColorBlendFactor
		}

		switch {
		case def.TimingMode != nil:
			state.TimingMode = *def.TimingMode
		case c.DefaultTimingMode != nil:
			state.TimingMode = *c.DefaultTimingMode
		}

		result = append(result, state)
	}
	return result, nil
}

// SegmentDuration 返回以第 i 个关键帧结尾的过渡时长
//
// 关键帧未声明 duration 时使用 default_duration；两者都没有时为 0。
func (c *KeyframeConfig) SegmentDuration(i int) time.Duration {
	seconds := 0.0
	if c.DefaultDuration != nil {
		seconds = *c.DefaultDuration
	}
	if i >= 0 && i < len(c.Frames) && c.Frames[i].Duration != nil {
		seconds = *c.Frames[i].Duration
	}
	return time.Duration(seconds * float64(time.Second))
}

// ParseColor 解析颜色字符串
//
// 支持 "#rgb"、"#rrggbb"、"#rrggbbaa" 以及 CSS 颜色名（不区分大小写）。
// 省略 alpha 时为完全不透明。
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("未知的颜色名 '%s'", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("颜色 '%s' 格式无效，应为 #rgb、#rrggbb 或 #rrggbbaa", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("颜色 '%s' 格式无效: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
