package systems

import (
	"log"

	"github.com/gonewx/tweentimeline/pkg/components"
	"github.com/gonewx/tweentimeline/pkg/ecs"
	"github.com/gonewx/tweentimeline/pkg/timeline"
)

// TimelineSystem 驱动所有 TimelineDirectorComponent
//
// 职责：
//   - 首次更新时为组件创建 timeline.Director（AutoPlay 时立即播放）
//   - 每帧把 deltaTime（乘以播放速度）交给导演推进
//   - 把轨道名解析为被绑定实体的 TransformComponent
//
// 绑定解析在每个被求值的帧重新进行：实体被删除或移除变换组件后，
// 对应轨道自动退化为"未绑定"。
type TimelineSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimelineSystem 创建时间轴系统
func NewTimelineSystem(em *ecs.EntityManager) *TimelineSystem {
	return &TimelineSystem{
		entityManager: em,
	}
}

// Update 推进所有时间轴
func (s *TimelineSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TimelineDirectorComponent](s.entityManager)

	for _, id := range entities {
		dc, ok := ecs.GetComponent[*components.TimelineDirectorComponent](s.entityManager, id)
		if !ok || dc.Timeline == nil {
			continue
		}

		if dc.Director == nil {
			dc.Director = timeline.NewDirector(dc.Timeline, s.resolverFor(dc), dc.Mode)
			log.Printf("[TimelineSystem] Director created for entity %d: timeline=%q tracks=%d",
				id, dc.Timeline.Name, len(dc.Timeline.Tracks))
			if dc.AutoPlay {
				dc.Director.Play()
			}
		}

		dc.Director.SetMode(dc.Mode)
		dc.Director.Update(deltaTime * dc.EffectiveSpeed())
	}
}

// Teardown 停止所有导演并销毁其图（场景退出时调用）
func (s *TimelineSystem) Teardown() {
	entities := ecs.GetEntitiesWith1[*components.TimelineDirectorComponent](s.entityManager)
	for _, id := range entities {
		dc, ok := ecs.GetComponent[*components.TimelineDirectorComponent](s.entityManager, id)
		if !ok || dc.Director == nil {
			continue
		}
		dc.Director.Stop()
	}
}

// Director 返回实体上的导演（尚未创建时返回 false）
func (s *TimelineSystem) Director(id ecs.EntityID) (*timeline.Director, bool) {
	dc, ok := ecs.GetComponent[*components.TimelineDirectorComponent](s.entityManager, id)
	if !ok || dc.Director == nil {
		return nil, false
	}
	return dc.Director, true
}

// resolverFor 为导演组件创建绑定解析器
// 注意：必须返回无类型的 nil，不能把 nil *TransformComponent 包装进接口
func (s *TimelineSystem) resolverFor(dc *components.TimelineDirectorComponent) timeline.BindingResolver {
	return func(track *timeline.Track) timeline.Binding {
		id, ok := dc.BoundEntity(track.Name)
		if !ok {
			return nil
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok || transform == nil {
			return nil
		}
		return transform
	}
}
