package utils

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/spritebuddy/pkg/action"
)

// TestEaseEndpoints 测试所有缓动曲线的端点
func TestEaseEndpoints(t *testing.T) {
	curves := []action.Curve{
		action.CurveLinear,
		action.CurveEaseIn,
		action.CurveEaseOut,
		action.CurveEaseInEaseOut,
	}

	for _, c := range curves {
		t.Run(c.String(), func(t *testing.T) {
			f := Ease(c)
			if math.Abs(f(0)) > 0.001 {
				t.Errorf("%v(0) = %v, 期望 0", c, f(0))
			}
			if math.Abs(f(1)-1) > 0.001 {
				t.Errorf("%v(1) = %v, 期望 1", c, f(1))
			}
		})
	}
}

// TestEaseMidpoints 测试曲线形状：缓入落后于线性，缓出领先于线性
func TestEaseMidpoints(t *testing.T) {
	tests := []struct {
		name     string
		curve    action.Curve
		expected float64
	}{
		{"线性", action.CurveLinear, 0.5},
		{"缓入", action.CurveEaseIn, 0.25},
		{"缓出", action.CurveEaseOut, 0.75},
		{"缓入缓出", action.CurveEaseInEaseOut, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Ease(tt.curve)(0.5)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Ease(%v)(0.5) = %v, 期望 %v", tt.curve, result, tt.expected)
			}
		})
	}

	for p := 0.1; p < 0.5; p += 0.1 {
		if EaseInOutQuad(p) >= p {
			t.Errorf("EaseInOutQuad(%v) = %v 应该小于线性值（开始慢）", p, EaseInOutQuad(p))
		}
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		t        float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestLerpColor 测试颜色插值
func TestLerpColor(t *testing.T) {
	a := color.RGBA{R: 0, G: 100, B: 255, A: 255}
	b := color.RGBA{R: 255, G: 200, B: 0, A: 55}

	if got := LerpColor(a, b, 0); got != a {
		t.Errorf("LerpColor(t=0) = %+v, 期望 %+v", got, a)
	}
	if got := LerpColor(a, b, 1); got != b {
		t.Errorf("LerpColor(t=1) = %+v, 期望 %+v", got, b)
	}

	mid := LerpColor(a, b, 0.5)
	expected := color.RGBA{R: 128, G: 150, B: 128, A: 155}
	if mid != expected {
		t.Errorf("LerpColor(t=0.5) = %+v, 期望 %+v", mid, expected)
	}
}

// TestClamp01 测试进度截断
func TestClamp01(t *testing.T) {
	tests := []struct{ in, out float64 }{
		{-0.5, 0}, {0, 0}, {0.3, 0.3}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.out {
			t.Errorf("Clamp01(%v) = %v, 期望 %v", tt.in, got, tt.out)
		}
	}
}

// TestFadeScenario 测试缓出曲线驱动的淡出（从 1.0 到 0.2）
func TestFadeScenario(t *testing.T) {
	start, end := 1.0, 0.2
	f := Ease(action.CurveEaseOut)

	prev := start
	for p := 0.0; p <= 1.0001; p += 0.1 {
		alpha := Lerp(start, end, f(Clamp01(p)))
		if alpha < end-0.001 || alpha > start+0.001 {
			t.Errorf("进度 %v 时透明度 %v 超出范围 [%v, %v]", p, alpha, end, start)
		}
		if alpha > prev+0.001 {
			t.Errorf("进度 %v 时透明度 %v 不应回升（上一值 %v）", p, alpha, prev)
		}
		prev = alpha
	}
}
