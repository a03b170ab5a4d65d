package tween

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 曲线本身由 gween/ease 提供，Ease 只是资源文件中使用的名称选择器。
// Back / Elastic 类缓动的返回值会短暂超出 [0, 1]。

// Ease 缓动曲线选择器
// 时间轴片段的 position / rotation / scale 三个通道共享同一个 Ease
type Ease int

const (
	Linear Ease = iota
	InSine
	OutSine
	InOutSine
	InQuad
	OutQuad
	InOutQuad
	InCubic
	OutCubic
	InOutCubic
	InQuart
	OutQuart
	InOutQuart
	InQuint
	OutQuint
	InOutQuint
	InExpo
	OutExpo
	InOutExpo
	InCirc
	OutCirc
	InOutCirc
	InBack
	OutBack
	InOutBack
	InElastic
	OutElastic
	InOutElastic
	InBounce
	OutBounce
	InOutBounce

	easeCount
)

var easeFuncs = [...]ease.TweenFunc{
	Linear:       ease.Linear,
	InSine:       ease.InSine,
	OutSine:      ease.OutSine,
	InOutSine:    ease.InOutSine,
	InQuad:       ease.InQuad,
	OutQuad:      ease.OutQuad,
	InOutQuad:    ease.InOutQuad,
	InCubic:      ease.InCubic,
	OutCubic:     ease.OutCubic,
	InOutCubic:   ease.InOutCubic,
	InQuart:      ease.InQuart,
	OutQuart:     ease.OutQuart,
	InOutQuart:   ease.InOutQuart,
	InQuint:      ease.InQuint,
	OutQuint:     ease.OutQuint,
	InOutQuint:   ease.InOutQuint,
	InExpo:       ease.InExpo,
	OutExpo:      ease.OutExpo,
	InOutExpo:    ease.InOutExpo,
	InCirc:       ease.InCirc,
	OutCirc:      ease.OutCirc,
	InOutCirc:    ease.InOutCirc,
	InBack:       ease.InBack,
	OutBack:      ease.OutBack,
	InOutBack:    ease.InOutBack,
	InElastic:    ease.InElastic,
	OutElastic:   ease.OutElastic,
	InOutElastic: ease.InOutElastic,
	InBounce:     ease.InBounce,
	OutBounce:    ease.OutBounce,
	InOutBounce:  ease.InOutBounce,
}

var easeNames = [...]string{
	Linear:       "Linear",
	InSine:       "InSine",
	OutSine:      "OutSine",
	InOutSine:    "InOutSine",
	InQuad:       "InQuad",
	OutQuad:      "OutQuad",
	InOutQuad:    "InOutQuad",
	InCubic:      "InCubic",
	OutCubic:     "OutCubic",
	InOutCubic:   "InOutCubic",
	InQuart:      "InQuart",
	OutQuart:     "OutQuart",
	InOutQuart:   "InOutQuart",
	InQuint:      "InQuint",
	OutQuint:     "OutQuint",
	InOutQuint:   "InOutQuint",
	InExpo:       "InExpo",
	OutExpo:      "OutExpo",
	InOutExpo:    "InOutExpo",
	InCirc:       "InCirc",
	OutCirc:      "OutCirc",
	InOutCirc:    "InOutCirc",
	InBack:       "InBack",
	OutBack:      "OutBack",
	InOutBack:    "InOutBack",
	InElastic:    "InElastic",
	OutElastic:   "OutElastic",
	InOutElastic: "InOutElastic",
	InBounce:     "InBounce",
	OutBounce:    "OutBounce",
	InOutBounce:  "InOutBounce",
}

// String 返回缓动名称（与 YAML 资源中的写法一致）
func (e Ease) String() string {
	if e < 0 || e >= easeCount {
		return fmt.Sprintf("Ease(%d)", int(e))
	}
	return easeNames[e]
}

// IsValid 检查是否为已定义的缓动
func (e Ease) IsValid() bool {
	return e >= 0 && e < easeCount
}

// ParseEase 根据名称解析缓动（大小写不敏感）
// 空字符串解析为 Linear
func ParseEase(name string) (Ease, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Linear, nil
	}
	for i, n := range easeNames {
		if strings.EqualFold(n, name) {
			return Ease(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown ease %q", name)
}

// MarshalYAML 以名称形式写出缓动
func (e Ease) MarshalYAML() (interface{}, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("invalid ease value %d", int(e))
	}
	return e.String(), nil
}

// UnmarshalYAML 从名称读取缓动
func (e *Ease) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("ease must be a name: %w", err)
	}
	parsed, err := ParseEase(name)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Func 返回对应的 gween 缓动函数
// 无效的 Ease 按 Linear 处理
func (e Ease) Func() ease.TweenFunc {
	if !e.IsValid() {
		return ease.Linear
	}
	return easeFuncs[e]
}

// Evaluate 对归一化进度 t 应用缓动
// 无效的 Ease 原样返回 t
func (e Ease) Evaluate(t float64) float64 {
	if !e.IsValid() {
		return t
	}
	return float64(easeFuncs[e](float32(t), 0, 1, 1))
}
