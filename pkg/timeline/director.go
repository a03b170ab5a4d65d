package timeline

import (
	"log"
	"math"
)

// BindingResolver 返回轨道当前绑定的对象，没有绑定时返回 nil
// 每个被求值的帧都会重新解析一次，宿主可以在播放过程中更换或移除绑定
type BindingResolver func(track *Track) Binding

// DirectorState 导演的播放状态
type DirectorState int

const (
	DirectorStopped DirectorState = iota
	DirectorPlaying
	DirectorPaused
)

// String 返回状态名称
func (s DirectorState) String() string {
	switch s {
	case DirectorPlaying:
		return "Playing"
	case DirectorPaused:
		return "Paused"
	default:
		return "Stopped"
	}
}

// clipInstance 片段在图中的实例
type clipInstance struct {
	clip     *Clip
	behavior *Behavior
	next     *Clip // 同轨道下一个片段，用于计算 hold 外推的截止时间
	active   bool  // 上一次求值时是否处于激活状态
}

type trackInstance struct {
	track *Track
	clips []*clipInstance
}

// Director 最小宿主：持有一个 Timeline，按时间驱动各片段的 Behavior
//
// 钩子调用顺序：
//   - Play/Seek 首次构建图时，每个片段经 Track.Bind 创建 Behavior
//   - 每次求值：先对不再激活的片段调用 OnDeactivate，再对激活片段调用 OnFrame
//   - Stop：OnDeactivate（仍激活的片段）-> OnGraphStop -> OnGraphTeardown
type Director struct {
	timeline *Timeline
	resolve  BindingResolver
	mode     PlayMode
	state    DirectorState
	time     float64
	graph    []*trackInstance
}

// NewDirector 创建导演
// resolver 可以为 nil，此时所有轨道都视为未绑定
func NewDirector(tl *Timeline, resolver BindingResolver, mode PlayMode) *Director {
	return &Director{
		timeline: tl,
		resolve:  resolver,
		mode:     mode,
		state:    DirectorStopped,
	}
}

// Timeline 返回正在播放的时间轴
func (d *Director) Timeline() *Timeline {
	return d.timeline
}

// Mode 返回运行模式
func (d *Director) Mode() PlayMode {
	return d.mode
}

// SetMode 切换运行模式，影响下一次 Stop 时是否恢复场景
func (d *Director) SetMode(mode PlayMode) {
	d.mode = mode
}

// State 返回播放状态
func (d *Director) State() DirectorState {
	return d.state
}

// Time 返回当前播放头时间（秒）
func (d *Director) Time() float64 {
	return d.time
}

// Play 开始或继续播放
func (d *Director) Play() {
	if d.state == DirectorPlaying {
		return
	}
	if d.graph == nil {
		d.buildGraph()
	}
	d.state = DirectorPlaying
	d.evaluate()
	log.Printf("[Director] Play %q at %.3fs (mode=%s)", d.timeline.Name, d.time, d.mode)
}

// Pause 暂停播放，激活中的片段收到 OnDeactivate
func (d *Director) Pause() {
	if d.state != DirectorPlaying {
		return
	}
	d.state = DirectorPaused
	d.deactivateAll()
}

// Resume 从暂停处继续
func (d *Director) Resume() {
	if d.state != DirectorPaused {
		return
	}
	d.state = DirectorPlaying
	d.evaluate()
}

// Stop 停止播放并销毁图
func (d *Director) Stop() {
	if d.graph == nil {
		d.state = DirectorStopped
		d.time = 0
		return
	}

	d.deactivateAll()
	for _, ti := range d.graph {
		for _, ci := range ti.clips {
			ci.behavior.OnGraphStop(d.mode)
		}
	}
	for _, ti := range d.graph {
		for _, ci := range ti.clips {
			ci.behavior.OnGraphTeardown()
		}
	}

	log.Printf("[Director] Stop %q at %.3fs (mode=%s)", d.timeline.Name, d.time, d.mode)
	d.graph = nil
	d.state = DirectorStopped
	d.time = 0
}

// Seek 拖动播放头到 t 并立即求值
// 停止状态下拖动会构建图并进入暂停状态（预览）
func (d *Director) Seek(t float64) {
	if d.graph == nil {
		d.buildGraph()
	}
	if d.state == DirectorStopped {
		d.state = DirectorPaused
	}
	d.time = d.clampTime(t)
	d.evaluate()
}

// Update 推进播放头 deltaTime 秒并求值，仅在播放状态下生效
func (d *Director) Update(deltaTime float64) {
	if d.state != DirectorPlaying {
		return
	}

	duration := d.timeline.Duration()
	d.time += deltaTime
	if d.time < duration {
		d.evaluate()
		return
	}

	switch d.timeline.Wrap {
	case WrapLoop:
		if duration > 0 {
			d.time = math.Mod(d.time, duration)
		} else {
			d.time = 0
		}
		d.evaluate()
	case WrapHold:
		d.time = duration
		d.evaluate()
	default:
		// 先以末尾时间求值一次，让片段写出终点值，再停止
		d.time = duration
		d.evaluate()
		d.Stop()
	}
}

// Behaviors 返回指定轨道上各片段的 Behavior（按片段顺序），图未构建时返回 nil
func (d *Director) Behaviors(trackName string) []*Behavior {
	for _, ti := range d.graph {
		if ti.track.Name != trackName {
			continue
		}
		behaviors := make([]*Behavior, 0, len(ti.clips))
		for _, ci := range ti.clips {
			behaviors = append(behaviors, ci.behavior)
		}
		return behaviors
	}
	return nil
}

// ActiveClips 返回上一次求值时处于激活状态的片段名
func (d *Director) ActiveClips() []string {
	var names []string
	for _, ti := range d.graph {
		for _, ci := range ti.clips {
			if ci.active {
				names = append(names, ci.clip.Name)
			}
		}
	}
	return names
}

func (d *Director) clampTime(t float64) float64 {
	if t < 0 {
		return 0
	}
	if duration := d.timeline.Duration(); t > duration {
		return duration
	}
	return t
}

func (d *Director) resolveBinding(track *Track) Binding {
	if d.resolve == nil {
		return nil
	}
	return d.resolve(track)
}

// buildGraph 为每个未静音轨道的每个片段创建 Behavior
// 此时任何补间都还没有执行，Track.Bind 读到的就是播放前的值
func (d *Director) buildGraph() {
	d.graph = make([]*trackInstance, 0, len(d.timeline.Tracks))
	for _, track := range d.timeline.Tracks {
		if track.Muted {
			continue
		}
		binding := d.resolveBinding(track)
		ti := &trackInstance{track: track}
		for i, clip := range track.Clips {
			ci := &clipInstance{
				clip:     clip,
				behavior: track.Bind(clip, binding),
			}
			if i+1 < len(track.Clips) {
				ci.next = track.Clips[i+1]
			}
			ti.clips = append(ti.clips, ci)
		}
		d.graph = append(d.graph, ti)
	}
}

// isClipActive 判断片段在时间 t 是否应被求值
func (d *Director) isClipActive(ci *clipInstance, t float64) bool {
	clip := ci.clip
	if t < clip.Start {
		return false
	}
	if t < clip.End() {
		return true
	}
	// 时间轴末尾：恰好在末尾结束的片段仍然求值最后一帧
	if t == clip.End() && t >= d.timeline.Duration() {
		return true
	}
	if clip.PostExtrapolation == ExtrapolationHold {
		return ci.next == nil || t < ci.next.Start
	}
	return false
}

func (d *Director) evaluate() {
	for _, ti := range d.graph {
		binding := d.resolveBinding(ti.track)

		active := make([]bool, len(ti.clips))
		for i, ci := range ti.clips {
			active[i] = d.isClipActive(ci, d.time)
		}

		// 先停用离开的片段，恢复的值可以被新激活的片段捕获为起始值
		for i, ci := range ti.clips {
			if ci.active && !active[i] {
				ci.behavior.OnDeactivate()
				ci.active = false
			}
		}
		for i, ci := range ti.clips {
			if !active[i] {
				continue
			}
			ci.behavior.OnFrame(ci.clip.LocalTime(d.time), binding)
			ci.active = true
		}
	}
}

func (d *Director) deactivateAll() {
	for _, ti := range d.graph {
		for _, ci := range ti.clips {
			if ci.active {
				ci.behavior.OnDeactivate()
				ci.active = false
			}
		}
	}
}
