package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/tweentimeline/pkg/components"
	"github.com/gonewx/tweentimeline/pkg/ecs"
	"github.com/gonewx/tweentimeline/pkg/timeline"
	"github.com/gonewx/tweentimeline/pkg/tween"
)

// 插值由 gween 以 float32 计算
const epsilon = 1e-5

// newSlideTimeline 单轨道时间轴：2 秒内 position 从起点移动到 (10,0,0)
func newSlideTimeline(retain bool) *timeline.Timeline {
	return &timeline.Timeline{
		Name: "slide",
		Tracks: []*timeline.Track{
			{
				Name: "box",
				Clips: []*timeline.Clip{
					{
						Name:     "move",
						Duration: 2,
						Parameters: timeline.ClipParameters{
							TweenPosition:      true,
							TargetPosition:     mgl64.Vec3{10, 0, 0},
							Ease:               tween.Linear,
							RetainTargetValues: retain,
						},
					},
				},
			},
		},
	}
}

// setupTimelineScene 创建一个被绑定实体和一个导演实体
func setupTimelineScene(tl *timeline.Timeline, mode timeline.PlayMode) (*ecs.EntityManager, ecs.EntityID, ecs.EntityID) {
	em := ecs.NewEntityManager()

	box := em.CreateEntity()
	ecs.AddComponent(em, box, components.NewTransformComponent(0, 0))

	directorEntity := em.CreateEntity()
	dc := &components.TimelineDirectorComponent{
		Timeline: tl,
		Mode:     mode,
		AutoPlay: true,
	}
	dc.Bind("box", box)
	ecs.AddComponent(em, directorEntity, dc)

	return em, box, directorEntity
}

func TestTimelineSystemDrivesBoundEntity(t *testing.T) {
	em, box, directorEntity := setupTimelineScene(newSlideTimeline(true), timeline.ModePlaying)
	ts := NewTimelineSystem(em)

	ts.Update(0.5)
	ts.Update(0.5)

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, box)
	if !transform.Translation.ApproxEqualThreshold(mgl64.Vec3{5, 0, 0}, epsilon) {
		t.Errorf("t=1 translation = %v, want (5,0,0)", transform.Translation)
	}

	director, ok := ts.Director(directorEntity)
	if !ok {
		t.Fatal("Update 之后应已创建导演")
	}
	if director.State() != timeline.DirectorPlaying {
		t.Errorf("AutoPlay 导演状态 = %v, want Playing", director.State())
	}

	// 播放结束：保留目标值
	ts.Update(5)
	if !transform.Translation.ApproxEqualThreshold(mgl64.Vec3{10, 0, 0}, epsilon) {
		t.Errorf("播放结束后 translation = %v, want (10,0,0)", transform.Translation)
	}
}

func TestTimelineSystemSpeed(t *testing.T) {
	em, box, directorEntity := setupTimelineScene(newSlideTimeline(true), timeline.ModePlaying)
	dc, _ := ecs.GetComponent[*components.TimelineDirectorComponent](em, directorEntity)
	dc.Speed = 2

	ts := NewTimelineSystem(em)
	ts.Update(0) // 创建并开始播放
	ts.Update(0.5)

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, box)
	if !transform.Translation.ApproxEqualThreshold(mgl64.Vec3{5, 0, 0}, epsilon) {
		t.Errorf("两倍速 0.5s 后 translation = %v, want (5,0,0)", transform.Translation)
	}
}

func TestTimelineSystemMissingBinding(t *testing.T) {
	t.Run("实体缺少变换组件", func(t *testing.T) {
		em := ecs.NewEntityManager()
		bare := em.CreateEntity()
		directorEntity := em.CreateEntity()
		dc := &components.TimelineDirectorComponent{Timeline: newSlideTimeline(false), AutoPlay: true}
		dc.Bind("box", bare)
		ecs.AddComponent(em, directorEntity, dc)

		ts := NewTimelineSystem(em)
		ts.Update(0.5)
		ts.Teardown()
	})

	t.Run("绑定实体在播放中被删除", func(t *testing.T) {
		em, box, _ := setupTimelineScene(newSlideTimeline(false), timeline.ModePreview)
		ts := NewTimelineSystem(em)
		ts.Update(0.5)

		em.DestroyEntity(box)
		em.RemoveMarkedEntities()

		ts.Update(0.5)
		ts.Teardown()
	})

	t.Run("没有时间轴", func(t *testing.T) {
		em := ecs.NewEntityManager()
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.TimelineDirectorComponent{AutoPlay: true})

		ts := NewTimelineSystem(em)
		ts.Update(1)
		if _, ok := ts.Director(id); ok {
			t.Error("没有时间轴时不应创建导演")
		}
	})
}

func TestTimelineSystemTeardownRestoresPreview(t *testing.T) {
	em, box, directorEntity := setupTimelineScene(newSlideTimeline(true), timeline.ModePreview)
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, box)
	transform.Translation = mgl64.Vec3{3, 3, 0}

	ts := NewTimelineSystem(em)
	ts.Update(1)
	if transform.Translation.ApproxEqualThreshold(mgl64.Vec3{3, 3, 0}, epsilon) {
		t.Fatal("播放中 translation 应已改变")
	}

	ts.Teardown()
	if !transform.Translation.ApproxEqualThreshold(mgl64.Vec3{3, 3, 0}, epsilon) {
		t.Errorf("预览模式 Teardown 后 translation = %v, want (3,3,0)", transform.Translation)
	}

	director, _ := ts.Director(directorEntity)
	if director.State() != timeline.DirectorStopped {
		t.Errorf("Teardown 后导演状态 = %v, want Stopped", director.State())
	}
}
