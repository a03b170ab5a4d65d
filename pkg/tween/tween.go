// Package tween 提供时间轴片段使用的插值实现
//
// 缓动曲线和单值补间由 gween 提供，本包只负责：
//   - 把 Vec3 拆成三个分量，分别交给 gween.Tween 求值
//   - 提供可被终止的 Sequence 句柄，调用方通过 Goto 显式跳转到任意时间点
//
// Sequence 不会在后台运行，也不会自行推进时间，
// 因此前后拖动播放头（非单调时间）不需要记录方向或累计偏移。
package tween

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
)

// Interpolate 计算 localTime 时刻从 start 到 end 的缓动结果
//
// 超出 [0, duration] 的时间被钳制到端点；duration <= 0 时直接返回 end。
func Interpolate(start, end mgl64.Vec3, localTime, duration float64, ease Ease) mgl64.Vec3 {
	if duration <= 0 {
		return end
	}
	var out mgl64.Vec3
	for i := range out {
		value, _ := gween.New(float32(start[i]), float32(end[i]), float32(duration), ease.Func()).Set(float32(localTime))
		out[i] = float64(value)
	}
	return out
}

// Vec3Tween 单个 Vec3 通道的补间
// 每次求值都会通过 Set 回调写出结果
type Vec3Tween struct {
	From     mgl64.Vec3
	To       mgl64.Vec3
	Duration float64
	Set      func(mgl64.Vec3)
}

// To 创建一个从 from 到 to、时长为 duration 的补间
func To(from, to mgl64.Vec3, duration float64, set func(mgl64.Vec3)) *Vec3Tween {
	return &Vec3Tween{
		From:     from,
		To:       to,
		Duration: duration,
		Set:      set,
	}
}

type sequenceEntry struct {
	at    float64
	tween *Vec3Tween
}

// Sequence 补间序列（插值句柄）
//
// 生命周期：
//   - 由调用方创建，加入若干补间后通过 Goto 求值
//   - Kill 之后的序列不再写出任何值；重复 Kill 是安全的
type Sequence struct {
	entries []sequenceEntry
	ease    Ease
	killed  bool
}

// NewSequence 创建一个空序列（默认 Linear 缓动）
func NewSequence() *Sequence {
	return &Sequence{ease: Linear}
}

// Append 把补间追加到当前序列末尾
func (s *Sequence) Append(tw *Vec3Tween) *Sequence {
	return s.Insert(s.Duration(), tw)
}

// Insert 在指定时间点插入补间（允许与其它补间重叠）
func (s *Sequence) Insert(at float64, tw *Vec3Tween) *Sequence {
	if s.killed || tw == nil {
		return s
	}
	if at < 0 {
		at = 0
	}
	s.entries = append(s.entries, sequenceEntry{at: at, tween: tw})
	return s
}

// SetEase 设置序列中所有补间共用的缓动
func (s *Sequence) SetEase(ease Ease) *Sequence {
	s.ease = ease
	return s
}

// Ease 返回序列缓动
func (s *Sequence) Ease() Ease {
	return s.ease
}

// Duration 返回序列总时长（最晚结束的补间）
func (s *Sequence) Duration() float64 {
	var d float64
	for _, e := range s.entries {
		if end := e.at + e.tween.Duration; end > d {
			d = end
		}
	}
	return d
}

// Len 返回序列中的补间数量
func (s *Sequence) Len() int {
	return len(s.entries)
}

// Goto 跳转到序列时间 t 并写出每个补间的当前值
// 每个补间在自己的时间段内求值，段外钳制到起点或终点
func (s *Sequence) Goto(t float64) {
	if s.killed {
		return
	}
	for _, e := range s.entries {
		if e.tween.Set == nil {
			continue
		}
		e.tween.Set(Interpolate(e.tween.From, e.tween.To, t-e.at, e.tween.Duration, s.ease))
	}
}

// Kill 终止序列；之后的 Goto 不再生效
func (s *Sequence) Kill() {
	if s == nil {
		return
	}
	s.killed = true
	s.entries = nil
}

// IsAlive 序列是否仍可求值
func (s *Sequence) IsAlive() bool {
	return s != nil && !s.killed
}
