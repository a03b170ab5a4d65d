package timeline

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/tweentimeline/pkg/tween"
)

// newTestDirector 一条轨道，两个首尾相接的片段：
//
//	[0,2) move: position (0,0,0) -> (10,0,0)
//	[2,3) grow: scale -> (2,2,2)
func newTestDirector(obj *fakeTransform, mode PlayMode, wrap WrapMode) *Director {
	move := positionClip()
	grow := &Clip{
		Name:     "grow",
		Start:    2,
		Duration: 1,
		Parameters: ClipParameters{
			TweenScale:  true,
			TargetScale: mgl64.Vec3{2, 2, 2},
			Ease:        tween.Linear,
		},
	}
	tl := &Timeline{
		Name: "test",
		Wrap: wrap,
		Tracks: []*Track{
			{Name: "cube", Clips: []*Clip{move, grow}},
		},
	}
	resolver := func(*Track) Binding {
		if obj == nil {
			return nil
		}
		return obj
	}
	return NewDirector(tl, resolver, mode)
}

func TestDirectorPlayback(t *testing.T) {
	obj := newFakeTransform(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	d := newTestDirector(obj, ModePlaying, WrapNone)

	d.Play()
	if d.State() != DirectorPlaying {
		t.Fatalf("State = %v, want Playing", d.State())
	}

	d.Update(1)
	if !vecEqual(obj.Position(), mgl64.Vec3{5, 0, 0}) {
		t.Errorf("t=1 position = %v, want (5,0,0)", obj.Position())
	}
	if got := d.ActiveClips(); len(got) != 1 || got[0] != "move" {
		t.Errorf("ActiveClips = %v, want [move]", got)
	}

	// 进入第二个片段：move 停用并恢复 position（未保留目标值）
	d.Update(1.5)
	if !vecEqual(obj.Position(), mgl64.Vec3{}) {
		t.Errorf("move 停用后 position 应恢复, got %v", obj.Position())
	}
	if !vecEqual(obj.LocalScale(), mgl64.Vec3{1.5, 1.5, 1.5}) {
		t.Errorf("t=2.5 scale = %v, want (1.5,1.5,1.5)", obj.LocalScale())
	}

	// 播放到末尾：末帧写出终点值后停止，运行模式下 grow 恢复 scale
	d.Update(1)
	if d.State() != DirectorStopped {
		t.Fatalf("WrapNone 播放结束后应停止, State = %v", d.State())
	}
	if !vecEqual(obj.LocalScale(), mgl64.Vec3{1, 1, 1}) {
		t.Errorf("停止后 scale = %v, want (1,1,1)", obj.LocalScale())
	}
	if d.Behaviors("cube") != nil {
		t.Error("停止后图应被销毁")
	}
}

func TestDirectorPreviewStopRestoresReference(t *testing.T) {
	obj := newFakeTransform(mgl64.Vec3{7, 7, 7}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	d := newTestDirector(obj, ModePreview, WrapNone)

	// 让 move 保留目标值，停用后对象仍处于被修改的状态
	d.Timeline().Tracks[0].Clips[0].Parameters.RetainTargetValues = true

	d.Seek(1.5)
	if d.State() != DirectorPaused {
		t.Fatalf("停止状态下 Seek 应进入 Paused, got %v", d.State())
	}
	d.Seek(2.5)
	if vecEqual(obj.Position(), mgl64.Vec3{7, 7, 7}) {
		t.Fatal("保留目标值时 position 应已被修改")
	}

	d.Stop()
	want := TransformValues{Position: mgl64.Vec3{7, 7, 7}, Scale: mgl64.Vec3{1, 1, 1}}
	if got := ReadTransform(obj); got != want {
		t.Errorf("预览停止后 = %v, want %v", got, want)
	}
}

// TestDirectorScrubbing 非单调拖动：向后拖再向前拖，结果只取决于时间
func TestDirectorScrubbing(t *testing.T) {
	obj := newFakeTransform(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	d := newTestDirector(obj, ModePreview, WrapNone)

	d.Seek(1.5)
	forward := obj.Position()
	d.Seek(0.2)
	d.Seek(1.9)
	d.Seek(1.5)
	if !vecEqual(obj.Position(), forward) {
		t.Errorf("拖回同一时间 position = %v, want %v", obj.Position(), forward)
	}

	// 拖过片段再拖回：重新捕获到恢复后的同一起始值
	d.Seek(2.9)
	d.Seek(1.5)
	if !vecEqual(obj.Position(), forward) {
		t.Errorf("重新进入片段后 position = %v, want %v", obj.Position(), forward)
	}
}

func TestDirectorPauseDeactivates(t *testing.T) {
	obj := newFakeTransform(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	d := newTestDirector(obj, ModePlaying, WrapNone)

	d.Play()
	d.Update(1)
	d.Pause()

	if len(d.ActiveClips()) != 0 {
		t.Errorf("暂停后不应有激活片段: %v", d.ActiveClips())
	}
	if !vecEqual(obj.Position(), mgl64.Vec3{}) {
		t.Errorf("暂停后 position 应恢复, got %v", obj.Position())
	}

	// 暂停时 Update 不推进时间
	d.Update(5)
	if d.Time() != 1 {
		t.Errorf("暂停时 Time = %v, want 1", d.Time())
	}

	d.Resume()
	if !vecEqual(obj.Position(), mgl64.Vec3{5, 0, 0}) {
		t.Errorf("恢复播放后 position = %v, want (5,0,0)", obj.Position())
	}
}

func TestDirectorWrapModes(t *testing.T) {
	t.Run("hold", func(t *testing.T) {
		obj := newFakeTransform(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
		d := newTestDirector(obj, ModePlaying, WrapHold)
		d.Play()
		d.Update(10)

		if d.State() != DirectorPlaying || d.Time() != 3 {
			t.Fatalf("hold: State=%v Time=%v", d.State(), d.Time())
		}
		if !vecEqual(obj.LocalScale(), mgl64.Vec3{2, 2, 2}) {
			t.Errorf("hold 末尾 scale = %v, want (2,2,2)", obj.LocalScale())
		}
	})

	t.Run("loop", func(t *testing.T) {
		obj := newFakeTransform(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
		d := newTestDirector(obj, ModePlaying, WrapLoop)
		d.Play()
		d.Update(2.5)
		d.Update(1.5) // 4.0 -> 1.0

		if d.Time() != 1 {
			t.Fatalf("loop Time = %v, want 1", d.Time())
		}
		if !vecEqual(obj.Position(), mgl64.Vec3{5, 0, 0}) {
			t.Errorf("loop position = %v, want (5,0,0)", obj.Position())
		}
		if !vecEqual(obj.LocalScale(), mgl64.Vec3{1, 1, 1}) {
			t.Errorf("loop 回到开头后 scale 应恢复, got %v", obj.LocalScale())
		}
	})
}

func TestDirectorHoldExtrapolation(t *testing.T) {
	obj := newFakeTransform(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	move := positionClip()
	move.PostExtrapolation = ExtrapolationHold
	later := positionClip()
	later.Name = "later"
	later.Start = 4
	later.Duration = 1

	tl := &Timeline{Name: "hold", Tracks: []*Track{{Name: "cube", Clips: []*Clip{move, later}}}}
	d := NewDirector(tl, func(*Track) Binding { return obj }, ModePreview)

	d.Seek(3)
	if got := d.ActiveClips(); len(got) != 1 || got[0] != "move" {
		t.Fatalf("hold 外推期间 ActiveClips = %v, want [move]", got)
	}
	if !vecEqual(obj.Position(), mgl64.Vec3{10, 0, 0}) {
		t.Errorf("hold 外推期间 position = %v, want (10,0,0)", obj.Position())
	}

	d.Seek(4.5)
	if got := d.ActiveClips(); len(got) != 1 || got[0] != "later" {
		t.Errorf("下一个片段开始后 ActiveClips = %v, want [later]", got)
	}
}

func TestDirectorUnboundAndMutedTracks(t *testing.T) {
	d := newTestDirector(nil, ModePreview, WrapNone)
	d.Seek(1)
	d.Stop()

	obj := newFakeTransform(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	muted := newTestDirector(obj, ModePlaying, WrapNone)
	muted.Timeline().Tracks[0].Muted = true
	muted.Play()
	muted.Update(1)
	if obj.positionWrites != 0 {
		t.Error("静音轨道不应写入绑定对象")
	}
	if muted.Behaviors("cube") != nil {
		t.Error("静音轨道不应进入图")
	}

	// nil resolver 视为未绑定
	nd := NewDirector(muted.Timeline(), nil, ModePreview)
	nd.Seek(1)
	nd.Stop()
}

func TestDirectorStopTearsDownSequences(t *testing.T) {
	obj := newFakeTransform(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	d := newTestDirector(obj, ModePlaying, WrapNone)
	d.Play()
	d.Update(0.5)

	behaviors := d.Behaviors("cube")
	if len(behaviors) != 2 || !behaviors[0].HasLiveSequence() {
		t.Fatal("播放中 move 应有存活句柄")
	}

	d.Stop()
	for i, b := range behaviors {
		if b.HasLiveSequence() {
			t.Errorf("Stop 之后 behavior %d 仍有存活句柄", i)
		}
	}
	// 重复 Stop 安全
	d.Stop()
	if d.Time() != 0 {
		t.Errorf("Stop 之后 Time = %v, want 0", d.Time())
	}
}
