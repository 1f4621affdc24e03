package config

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gonewx/spritebuddy/pkg/keyframe"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Preferences 用户级默认设置
//
// 关键帧文档没有声明的默认值从这里取得，命令行参数可以再覆盖。
type Preferences struct {
	DefaultDuration   float64 `yaml:"defaultDuration"`   // 默认分段时长（秒）
	DefaultTimingMode string  `yaml:"defaultTimingMode"` // 默认时间曲线名称
	Workers           int     `yaml:"workers"`           // 并发加载文档的数量
}

// 取值范围
const (
	minWorkers = 1
	maxWorkers = 64
)

// DefaultPreferences 返回默认设置
func DefaultPreferences() *Preferences {
	return &Preferences{
		DefaultDuration:   0.5,
		DefaultTimingMode: keyframe.TimingLinear.String(),
		Workers:           4,
	}
}

// Duration 返回默认分段时长，越界的值先被限制到 0 ~ MaxSegmentSeconds
func (p *Preferences) Duration() time.Duration {
	return time.Duration(clampDuration(p.DefaultDuration) * float64(time.Second))
}

// TimingMode 返回默认时间曲线；名称无效时回落到 linear
func (p *Preferences) TimingMode() keyframe.TimingMode {
	mode, err := keyframe.ParseTimingMode(p.DefaultTimingMode)
	if err != nil {
		return keyframe.TimingLinear
	}
	return mode
}

// SettingsManager 设置管理器
// 负责默认设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	preferences  *Preferences   // 当前设置
}

// 存储路径常量
const (
	preferencesObject   = "preferences"
	preferencesProperty = "defaults"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不影响创建，此时使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		preferences:  DefaultPreferences(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load preferences: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置。
// 已保存但越界的值会被修正到合法范围。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.preferences = DefaultPreferences()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(preferencesObject, preferencesProperty) {
		sm.preferences = DefaultPreferences()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(preferencesObject, preferencesProperty)
	if err != nil {
		sm.preferences = DefaultPreferences()
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	// 以默认值为底，缺失的字段保持默认
	loaded := DefaultPreferences()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.preferences = DefaultPreferences()
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	sm.preferences = loaded
	sm.SetDefaultDuration(loaded.DefaultDuration)
	sm.SetWorkers(loaded.Workers)
	if _, err := keyframe.ParseTimingMode(loaded.DefaultTimingMode); err != nil {
		log.Printf("[SettingsManager] Warning: %v, falling back to %s", err, keyframe.TimingLinear)
		sm.preferences.DefaultTimingMode = keyframe.TimingLinear.String()
	}

	log.Printf("[SettingsManager] Preferences loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(preferencesObject, preferencesProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	log.Printf("[SettingsManager] Preferences saved successfully")
	return nil
}

// GetPreferences 获取当前设置
func (sm *SettingsManager) GetPreferences() *Preferences {
	return sm.preferences
}

// SetDefaultDuration 设置默认分段时长（秒）
//
// 时长会被限制在 0 ~ MaxSegmentSeconds 范围内，NaN 按 0 处理。
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetDefaultDuration(seconds float64) {
	sm.preferences.DefaultDuration = clampDuration(seconds)
}

// SetDefaultTimingMode 设置默认时间曲线
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetDefaultTimingMode(mode keyframe.TimingMode) {
	sm.preferences.DefaultTimingMode = mode.String()
}

// SetWorkers 设置并发数量
//
// 数量会被限制在 1 ~ 64 范围内。
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetWorkers(n int) {
	sm.preferences.Workers = clampWorkers(n)
}

// clampDuration 将时长限制在 0 ~ MaxSegmentSeconds 范围内
func clampDuration(seconds float64) float64 {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	if seconds > MaxSegmentSeconds {
		return MaxSegmentSeconds
	}
	return seconds
}

// clampWorkers 将并发数量限制在合法范围内
func clampWorkers(n int) int {
	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}
