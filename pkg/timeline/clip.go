package timeline

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/tweentimeline/pkg/tween"
)

// Extrapolation 片段结束后的外推方式
type Extrapolation int

const (
	// ExtrapolationNone 片段结束即停止求值
	ExtrapolationNone Extrapolation = iota
	// ExtrapolationHold 片段结束后保持求值（局部时间继续增长，
	// 插值被钳制在终点），直到同轨道下一个片段开始
	ExtrapolationHold
)

// String 返回外推方式名称
func (e Extrapolation) String() string {
	switch e {
	case ExtrapolationHold:
		return "hold"
	default:
		return "none"
	}
}

// ParseExtrapolation 解析外推方式名称，空字符串视为 none
func ParseExtrapolation(name string) (Extrapolation, error) {
	switch name {
	case "", "none":
		return ExtrapolationNone, nil
	case "hold":
		return ExtrapolationHold, nil
	}
	return ExtrapolationNone, fmt.Errorf("unknown extrapolation %q", name)
}

// ClipParameters 片段的作者参数
//
// 三个通道各自独立开关；Ease 由三个通道共享。
// RetainTargetValues 为 true 时片段结束后保留目标值，否则恢复为片段开始时的值。
type ClipParameters struct {
	TweenPosition  bool
	TargetPosition mgl64.Vec3

	TweenRotation  bool
	TargetRotation mgl64.Vec3 // 欧拉角（度）

	TweenScale  bool
	TargetScale mgl64.Vec3

	Ease               tween.Ease
	RetainTargetValues bool
}

// AnyChannel 是否至少启用了一个通道
func (p ClipParameters) AnyChannel() bool {
	return p.TweenPosition || p.TweenRotation || p.TweenScale
}

// Clip 时间轴上的一个补间片段
type Clip struct {
	Name string

	// Start 片段在时间轴上的开始时间（秒）
	Start float64

	// Duration 片段时长（秒），同时也是补间时长
	Duration float64

	PostExtrapolation Extrapolation

	Parameters ClipParameters
}

// End 片段结束时间
func (c *Clip) End() float64 {
	return c.Start + c.Duration
}

// LocalTime 把时间轴时间换算为片段局部时间
func (c *Clip) LocalTime(t float64) float64 {
	return t - c.Start
}

// Validate 检查片段的时间参数
// 目标值不做任何校验（任意向量都合法）
func (c *Clip) Validate() error {
	if math.IsNaN(c.Start) || math.IsInf(c.Start, 0) {
		return fmt.Errorf("%w: clip %q has non-finite start %v", ErrInvalidClip, c.Name, c.Start)
	}
	if math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: clip %q has non-finite duration %v", ErrInvalidClip, c.Name, c.Duration)
	}
	if c.Start < 0 {
		return fmt.Errorf("%w: clip %q starts at %.3f", ErrInvalidClip, c.Name, c.Start)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: clip %q has non-positive duration %.3f", ErrInvalidClip, c.Name, c.Duration)
	}
	if !c.Parameters.Ease.IsValid() {
		return fmt.Errorf("%w: clip %q has invalid ease %d", ErrInvalidClip, c.Name, int(c.Parameters.Ease))
	}
	return nil
}

// CreateBehavior 为片段的一次放置创建运行时实例
// 作者参数原样复制到 Behavior 中，之后修改 Clip 不会影响已创建的实例
func (c *Clip) CreateBehavior() *Behavior {
	return &Behavior{
		params:   c.Parameters,
		duration: c.Duration,
		state:    StateIdle,
	}
}
