package components

import (
	"github.com/gonewx/tweentimeline/pkg/ecs"
	"github.com/gonewx/tweentimeline/pkg/timeline"
)

// TimelineDirectorComponent 挂在"导演"实体上，驱动一个时间轴
//
// 轨道与实体的绑定关系由 Bindings 决定（轨道名 -> 实体ID）。
// 被绑定实体需要携带 TransformComponent；实体不存在或缺少该组件时，
// 轨道视为未绑定，片段的所有钩子都按无操作处理。
type TimelineDirectorComponent struct {
	// Director 时间轴导演，由 TimelineSystem 在首次更新时创建
	Director *timeline.Director

	// Timeline 要播放的时间轴资源
	Timeline *timeline.Timeline

	// Bindings 轨道名 -> 被绑定的实体
	Bindings map[string]ecs.EntityID

	// Mode 运行模式（预览 / 运行）
	Mode timeline.PlayMode

	// AutoPlay 首次更新时自动开始播放
	AutoPlay bool

	// Speed 播放速度倍率（<= 0 时按 1 处理）
	Speed float64
}

// Bind 把轨道绑定到实体
func (c *TimelineDirectorComponent) Bind(trackName string, entity ecs.EntityID) {
	if c.Bindings == nil {
		c.Bindings = make(map[string]ecs.EntityID)
	}
	c.Bindings[trackName] = entity
}

// Unbind 解除轨道绑定
func (c *TimelineDirectorComponent) Unbind(trackName string) {
	delete(c.Bindings, trackName)
}

// BoundEntity 返回轨道绑定的实体
func (c *TimelineDirectorComponent) BoundEntity(trackName string) (ecs.EntityID, bool) {
	id, ok := c.Bindings[trackName]
	if !ok || id == ecs.InvalidEntity {
		return ecs.InvalidEntity, false
	}
	return id, true
}

// EffectiveSpeed 返回实际生效的播放速度
func (c *TimelineDirectorComponent) EffectiveSpeed() float64 {
	if c.Speed <= 0 {
		return 1
	}
	return c.Speed
}
