// bake_timeline 把时间轴 YAML 离线采样为逐帧变换数据
//
// 用法：
//
//	go run ./cmd/bake_timeline -fps 60 -out baked data/timelines/*.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/gonewx/tweentimeline/pkg/bake"
)

func main() {
	fps := flag.Int("fps", bake.DefaultFPS, "采样帧率")
	workers := flag.Int("workers", runtime.NumCPU(), "并发处理的文件数")
	outDir := flag.String("out", ".", "输出目录")
	verbose := flag.Bool("verbose", false, "输出详细日志")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] timeline.yaml...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "❌ 无法创建输出目录: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := bake.SampleFiles(ctx, paths, *fps, *workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 采样失败: %v\n", err)
		os.Exit(1)
	}

	for _, result := range results {
		path, err := bake.WriteResult(*outDir, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ %s -> %s (%d frames @ %d fps)\n", result.Source, path, len(result.Frames), result.FPS)
	}
}
