package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/tweentimeline/pkg/app"
	"github.com/gonewx/tweentimeline/pkg/config"
	"github.com/gonewx/tweentimeline/pkg/embedded"
	"github.com/gonewx/tweentimeline/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "输出详细日志")
	file := flag.String("file", "", "要预览的时间轴 YAML 文件（为空则使用内置示例）")
	name := flag.String("timeline", app.DefaultTimeline, "内置示例时间轴名称")
	mode := flag.String("mode", "preview", "运行模式：preview / playing")
	noSave := flag.Bool("no-save", false, "不把时间轴保存到时间轴库")
	flag.Parse()

	embedded.Init(dataFS)

	playMode, err := timeline.ParsePlayMode(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	previewApp, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		TimelinePath: *file,
		TimelineName: *name,
		Mode:         playMode,
		NoSave:       *noSave,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Tween Timeline Preview")

	if err := ebiten.RunGame(previewApp); err != nil && !app.IsTermination(err) {
		log.Fatal(err)
	}
	previewApp.Shutdown()
}
