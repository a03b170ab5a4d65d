package timeline

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/tweentimeline/pkg/tween"
)

// BehaviorState 片段运行时的状态
type BehaviorState int

const (
	// StateIdle 自上次停用以来尚未处理过任何帧
	StateIdle BehaviorState = iota
	// StateActive 正在处理帧，起始值已捕获
	StateActive
)

// String 返回状态名称
func (s BehaviorState) String() string {
	if s == StateActive {
		return "Active"
	}
	return "Idle"
}

// PlayMode 宿主的运行模式
type PlayMode int

const (
	// ModePreview 编辑预览（拖动播放头），停止时需要把场景恢复到预览前的状态
	ModePreview PlayMode = iota
	// ModePlaying 实际运行，停止时保留场景状态
	ModePlaying
)

// String 返回模式名称
func (m PlayMode) String() string {
	if m == ModePlaying {
		return "playing"
	}
	return "preview"
}

// ParsePlayMode 解析运行模式名称，空字符串视为 preview
func ParsePlayMode(name string) (PlayMode, error) {
	switch name {
	case "", "preview":
		return ModePreview, nil
	case "playing":
		return ModePlaying, nil
	}
	return ModePreview, fmt.Errorf("unknown play mode %q", name)
}

// Playable 宿主调用的钩子
//
// 所有方法都不返回错误：缺失的绑定对象、不存在的插值句柄都按无操作处理。
type Playable interface {
	// OnFrame 每个被求值的帧调用一次，binding 可能为 nil
	OnFrame(localTime float64, binding Binding)
	// OnDeactivate 片段不再被求值时调用（拖过、暂停、轨道禁用）
	OnDeactivate()
	// OnGraphTeardown 所属图销毁时调用
	OnGraphTeardown()
	// OnGraphStop 宿主停止求值时调用
	OnGraphStop(mode PlayMode)
}

var _ Playable = (*Behavior)(nil)

// Behavior 片段的运行时实例（每次放置一个）
//
// 状态机：
//
//	Idle --首帧--> Active --OnDeactivate--> Idle
//
// 每帧都会丢弃上一帧的 Sequence 并重新构建，再跳转到当前局部时间，
// 因此播放头可以任意前后跳动。
type Behavior struct {
	params   ClipParameters
	duration float64
	state    BehaviorState

	// binding 最近一次 OnFrame 收到的绑定对象
	binding Binding

	// captured 本次激活周期开始时的值，每次 Idle->Active 时重新创建
	captured *TransformValues

	// reference 轨道在任何补间执行之前读取的值，仅用于预览模式停止时恢复
	reference *TransformValues

	// sequence 当前存活的插值句柄（至多一个）
	sequence *tween.Sequence
}

// Initialize 注入轨道绑定对象在播放前的值
func (b *Behavior) Initialize(reference TransformValues) {
	ref := reference
	b.reference = &ref
}

// OnFrame 处理一帧
func (b *Behavior) OnFrame(localTime float64, binding Binding) {
	b.binding = binding
	if binding == nil {
		return
	}

	// 新一轮播放 / 拖动的首帧：先记下起始值，停用时据此恢复
	if b.state == StateIdle {
		start := ReadTransform(binding)
		b.captured = &start
		b.state = StateActive
	}

	b.sequence.Kill()
	b.sequence = tween.NewSequence()

	start := *b.captured
	position, rotation, scale := start.Position, start.Rotation, start.Scale
	p := b.params
	if p.TweenPosition {
		b.sequence.Insert(0, tween.To(start.Position, p.TargetPosition, b.duration,
			func(v mgl64.Vec3) { position = v }))
	}
	if p.TweenRotation {
		b.sequence.Insert(0, tween.To(start.Rotation, p.TargetRotation, b.duration,
			func(v mgl64.Vec3) { rotation = v }))
	}
	if p.TweenScale {
		b.sequence.Insert(0, tween.To(start.Scale, p.TargetScale, b.duration,
			func(v mgl64.Vec3) { scale = v }))
	}
	b.sequence.SetEase(p.Ease)
	b.sequence.Goto(localTime)

	if p.TweenPosition {
		binding.SetPosition(position)
	}
	if p.TweenRotation {
		binding.SetEulerAngles(rotation)
	}
	if p.TweenScale {
		binding.SetLocalScale(scale)
	}
}

// OnDeactivate 片段停止求值
func (b *Behavior) OnDeactivate() {
	b.state = StateIdle

	if b.params.RetainTargetValues {
		return
	}
	if b.binding == nil || b.captured == nil {
		return
	}

	start := *b.captured
	if b.params.TweenPosition {
		b.binding.SetPosition(start.Position)
	}
	if b.params.TweenRotation {
		b.binding.SetEulerAngles(start.Rotation)
	}
	if b.params.TweenScale {
		b.binding.SetLocalScale(start.Scale)
	}
}

// OnGraphTeardown 释放插值句柄，可重复调用
func (b *Behavior) OnGraphTeardown() {
	b.sequence.Kill()
	b.sequence = nil
}

// OnGraphStop 宿主停止求值
// 运行模式下直接跳过；预览模式下把绑定对象恢复到轨道开始前的值
func (b *Behavior) OnGraphStop(mode PlayMode) {
	if mode == ModePlaying {
		return
	}
	if b.binding == nil || b.reference == nil {
		return
	}
	b.reference.ApplyTo(b.binding)
}

// State 返回当前状态
func (b *Behavior) State() BehaviorState {
	return b.state
}

// Parameters 返回复制进来的作者参数
func (b *Behavior) Parameters() ClipParameters {
	return b.params
}

// Duration 返回补间时长
func (b *Behavior) Duration() float64 {
	return b.duration
}

// Captured 返回本次激活周期捕获的起始值
func (b *Behavior) Captured() (TransformValues, bool) {
	if b.captured == nil {
		return TransformValues{}, false
	}
	return *b.captured, true
}

// Reference 返回播放前的参考值
func (b *Behavior) Reference() (TransformValues, bool) {
	if b.reference == nil {
		return TransformValues{}, false
	}
	return *b.reference, true
}

// HasLiveSequence 是否存在存活的插值句柄
func (b *Behavior) HasLiveSequence() bool {
	return b.sequence.IsAlive()
}
