// Package app 提供时间轴预览应用的核心包装器
//
// 该包把预览器的初始化和输入处理从 main 包提取出来，main.go 只负责解析参数。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"

	"github.com/gonewx/tweentimeline/pkg/components"
	"github.com/gonewx/tweentimeline/pkg/config"
	"github.com/gonewx/tweentimeline/pkg/ecs"
	"github.com/gonewx/tweentimeline/pkg/embedded"
	"github.com/gonewx/tweentimeline/pkg/game"
	"github.com/gonewx/tweentimeline/pkg/systems"
	"github.com/gonewx/tweentimeline/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"
)

// DefaultTimeline 未指定时间轴时加载的内置示例
const DefaultTimeline = "intro"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// TimelinePath 从磁盘加载的时间轴文件，为空则使用内置示例
	TimelinePath string
	// TimelineName 内置示例名称（data/timelines/<name>.yaml），为空则使用 DefaultTimeline
	TimelineName string
	// Mode 初始运行模式
	Mode timeline.PlayMode
	// NoSave 不把加载的时间轴保存到时间轴库
	NoSave bool
}

// command 预览器支持的操作
type command int

const (
	cmdNone command = iota
	cmdTogglePlay
	cmdScrubForward
	cmdScrubBackward
	cmdStop
	cmdToggleMode
	cmdQuit
)

// trackColors 轨道精灵的配色（按轨道顺序循环使用）
var trackColors = []color.RGBA{
	{R: 231, G: 76, B: 60, A: 255},
	{R: 52, G: 152, B: 219, A: 255},
	{R: 46, G: 204, B: 113, A: 255},
	{R: 241, G: 196, B: 15, A: 255},
	{R: 155, G: 89, B: 182, A: 255},
}

// App 是预览应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	entityManager  *ecs.EntityManager
	timelineSystem *systems.TimelineSystem
	renderSystem   *systems.RenderSystem
	directorEntity ecs.EntityID
	timeline       *timeline.Timeline
}

// NewApp 创建并初始化预览应用
//
// 加载内置示例前必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tl, err := loadTimeline(cfg)
	if err != nil {
		return nil, fmt.Errorf("时间轴加载失败: %w", err)
	}

	// gdata 打开失败时进入降级模式（仅内存）
	gdataManager, err := gdata.Open(gdata.Config{AppName: "tweentimeline"})
	if err != nil {
		log.Printf("[App] Warning: Failed to open gdata: %v (library runs in memory)", err)
		gdataManager = nil
	}
	library := game.NewTimelineLibrary(gdataManager)
	if !cfg.NoSave {
		if err := library.Save(tl); err != nil {
			log.Printf("[App] Warning: Failed to save timeline to library: %v", err)
		}
	}

	a := &App{
		entityManager: ecs.NewEntityManager(),
		timeline:      tl,
	}
	a.timelineSystem = systems.NewTimelineSystem(a.entityManager)
	a.renderSystem = systems.NewRenderSystem(a.entityManager)
	a.renderSystem.ShowPivots = cfg.Verbose
	a.directorEntity = buildScene(a.entityManager, tl, cfg.Mode)

	log.Printf("[App] Previewing timeline %q (tracks=%d, duration=%.2fs, mode=%s)",
		tl.Name, len(tl.Tracks), tl.Duration(), cfg.Mode)
	return a, nil
}

// loadTimeline 按配置从磁盘或内置示例加载时间轴
func loadTimeline(cfg Config) (*timeline.Timeline, error) {
	if cfg.TimelinePath != "" {
		return config.LoadTimelineFile(cfg.TimelinePath)
	}

	name := cfg.TimelineName
	if name == "" {
		name = DefaultTimeline
	}
	data, err := embedded.ReadTimeline(name)
	if err != nil {
		names, _ := embedded.TimelineNames()
		return nil, fmt.Errorf("内置时间轴 %q 不存在（可用: %s）: %w", name, strings.Join(names, ", "), err)
	}
	return config.ParseTimeline(data)
}

// buildScene 为每条轨道创建一个精灵实体，并创建驱动时间轴的导演实体
func buildScene(em *ecs.EntityManager, tl *timeline.Timeline, mode timeline.PlayMode) ecs.EntityID {
	dc := &components.TimelineDirectorComponent{
		Timeline: tl,
		Mode:     mode,
		AutoPlay: true,
	}

	for i, track := range tl.Tracks {
		x, y := config.LanePosition(i)
		id := em.CreateEntity()
		ecs.AddComponent(em, id, components.NewTransformComponent(x, y))

		clr := trackColors[i%len(trackColors)]
		if track.Muted {
			clr.A = 96
		}
		ecs.AddComponent(em, id, components.NewSpriteComponent(config.LaneSpriteSize, config.LaneSpriteSize, clr, track.Name))
		dc.Bind(track.Name, id)
	}

	directorEntity := em.CreateEntity()
	ecs.AddComponent(em, directorEntity, dc)
	return directorEntity
}

// readCommand 把本帧的按键映射为预览器操作
func readCommand() command {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return cmdQuit
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		return cmdTogglePlay
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		return cmdStop
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		return cmdToggleMode
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		return cmdScrubForward
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		return cmdScrubBackward
	}
	return cmdNone
}

// apply 执行预览器操作
// 返回 ebiten.Termination 表示退出
func (a *App) apply(cmd command) error {
	dc, ok := ecs.GetComponent[*components.TimelineDirectorComponent](a.entityManager, a.directorEntity)
	if !ok {
		return nil
	}

	switch cmd {
	case cmdQuit:
		a.timelineSystem.Teardown()
		return ebiten.Termination
	case cmdToggleMode:
		if dc.Mode == timeline.ModePreview {
			dc.Mode = timeline.ModePlaying
		} else {
			dc.Mode = timeline.ModePreview
		}
		log.Printf("[App] Mode switched to %s", dc.Mode)
	}

	// 以下操作需要导演已创建（TimelineSystem 首次更新之后）
	director := dc.Director
	if director == nil {
		return nil
	}

	switch cmd {
	case cmdTogglePlay:
		switch director.State() {
		case timeline.DirectorPlaying:
			director.Pause()
		case timeline.DirectorPaused:
			director.Resume()
		default:
			director.Play()
		}
	case cmdStop:
		director.Stop()
	case cmdScrubForward:
		director.Seek(director.Time() + config.ScrubStep)
	case cmdScrubBackward:
		director.Seek(director.Time() - config.ScrubStep)
	}
	return nil
}

// Update 更新预览逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	if err := a.apply(readCommand()); err != nil {
		return err
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.timelineSystem.Update(deltaTime)
	return nil
}

// Draw 绘制预览画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 30, B: 36, A: 255})
	a.renderSystem.Draw(screen)
	a.drawScrubBar(screen)
	ebitenutil.DebugPrintAt(screen, a.statusText(), 8, 8)
}

// drawScrubBar 绘制底部进度条
func (a *App) drawScrubBar(screen *ebiten.Image) {
	x, y, w, h := config.ScrubBarBounds()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{R: 70, G: 70, B: 80, A: 255}, false)

	director, ok := a.timelineSystem.Director(a.directorEntity)
	duration := a.timeline.Duration()
	if !ok || duration <= 0 {
		return
	}
	progress := director.Time() / duration
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*progress), float32(h), color.RGBA{R: 236, G: 240, B: 241, A: 255}, false)
}

// statusText 左上角的状态文字
func (a *App) statusText() string {
	dc, ok := ecs.GetComponent[*components.TimelineDirectorComponent](a.entityManager, a.directorEntity)
	if !ok || dc.Director == nil {
		return fmt.Sprintf("%s  (loading)", a.timeline.Name)
	}

	d := dc.Director
	active := d.ActiveClips()
	if len(active) == 0 {
		active = []string{"-"}
	}
	return fmt.Sprintf("%s  %.2f / %.2fs  [%s]  mode=%s  wrap=%s\nactive: %s\nSpace play/pause  <- -> scrub  S stop  M mode  Q quit",
		a.timeline.Name, d.Time(), a.timeline.Duration(), d.State(), dc.Mode, a.timeline.Wrap,
		strings.Join(active, ", "))
}

// Layout 返回预览窗口的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 停止所有时间轴（窗口关闭时调用，预览模式下恢复参考值）
func (a *App) Shutdown() {
	a.timelineSystem.Teardown()
}

// IsTermination 判断 RunGame 返回的错误是否为正常退出
func IsTermination(err error) bool {
	return errors.Is(err, ebiten.Termination)
}
