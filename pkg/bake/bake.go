// Package bake 把时间轴离线采样为逐帧的变换数据
//
// 采样使用与运行时相同的 Director / Behavior，每一帧都通过 Seek 独立求值，
// 因此结果与实际播放时拖动到同一时间点看到的值一致。
package bake

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonewx/tweentimeline/pkg/components"
	"github.com/gonewx/tweentimeline/pkg/config"
	"github.com/gonewx/tweentimeline/pkg/timeline"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// DefaultFPS 默认采样帧率
const DefaultFPS = 30

// Result 一个时间轴的采样结果
type Result struct {
	Timeline string  `yaml:"timeline"`
	Source   string  `yaml:"source,omitempty"`
	FPS      int     `yaml:"fps"`
	Duration float64 `yaml:"duration"`
	Frames   []Frame `yaml:"frames"`
}

// Frame 单帧采样
type Frame struct {
	Index  int           `yaml:"index"`
	Time   float64       `yaml:"time"`
	Tracks []TrackSample `yaml:"tracks"`
}

// TrackSample 单条轨道在某一帧的变换
type TrackSample struct {
	Track    string     `yaml:"track"`
	Position [3]float64 `yaml:"position,flow"`
	Rotation [3]float64 `yaml:"rotation,flow"`
	Scale    [3]float64 `yaml:"scale,flow"`
}

// Sample 以 fps 采样时间轴
//
// 每条轨道绑定一个初始变换为原点（缩放为 1）的 TransformComponent。
// 帧数为 ceil(duration*fps)+1，最后一帧落在时间轴末尾。
func Sample(tl *timeline.Timeline, fps int) (*Result, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}

	if err := tl.Validate(); err != nil {
		return nil, fmt.Errorf("timeline %q: %w", tl.Name, err)
	}

	transforms := make(map[string]*components.TransformComponent, len(tl.Tracks))
	for _, track := range tl.Tracks {
		transforms[track.Name] = components.NewTransformComponent(0, 0)
	}
	resolver := func(track *timeline.Track) timeline.Binding {
		if t, ok := transforms[track.Name]; ok {
			return t
		}
		return nil
	}

	duration := tl.Duration()
	frameCount := int(math.Ceil(duration*float64(fps))) + 1

	result := &Result{
		Timeline: tl.Name,
		FPS:      fps,
		Duration: duration,
		Frames:   make([]Frame, 0, frameCount),
	}

	director := timeline.NewDirector(tl, resolver, timeline.ModePlaying)
	for i := 0; i < frameCount; i++ {
		t := math.Min(float64(i)/float64(fps), duration)
		director.Seek(t)

		frame := Frame{
			Index:  i,
			Time:   t,
			Tracks: make([]TrackSample, 0, len(tl.Tracks)),
		}
		for _, track := range tl.Tracks {
			tr := transforms[track.Name]
			frame.Tracks = append(frame.Tracks, TrackSample{
				Track:    track.Name,
				Position: [3]float64(tr.Translation),
				Rotation: [3]float64(tr.Rotation),
				Scale:    [3]float64(tr.Scale),
			})
		}
		result.Frames = append(result.Frames, frame)
	}
	director.Stop()

	return result, nil
}

// SampleFiles 并发加载并采样多个时间轴文件
//
// workers <= 0 时不限制并发数。任一文件失败会取消其余任务，
// 返回的结果与 paths 一一对应。
// 输出文件名取自源文件名，两个输入会写到同一个输出文件时直接报错。
func SampleFiles(ctx context.Context, paths []string, fps, workers int) ([]*Result, error) {
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		name := outputName(path, "")
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s%s", prev, path, name, outputSuffix)
		}
		seen[name] = path
	}

	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tl, err := config.LoadTimelineFile(path)
			if err != nil {
				return err
			}
			result, err := Sample(tl, fps)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			result.Source = path
			results[i] = result

			log.Printf("[Bake] Sampled %q from %s (%d frames)", tl.Name, path, len(result.Frames))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// outputSuffix 采样结果文件的后缀
const outputSuffix = ".baked.yaml"

// WriteResult 把采样结果写入 dir，返回写入的路径
//
// 文件名为源文件名（去掉扩展名）加 .baked.yaml；没有源文件时使用时间轴名称。
// 名称中的路径分隔符等字符会被替换，结果总是位于 dir 之内。
func WriteResult(dir string, result *Result) (string, error) {
	data, err := yaml.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal bake result %q: %w", result.Timeline, err)
	}

	path := filepath.Join(dir, outputName(result.Source, result.Timeline)+outputSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write bake result %s: %w", path, err)
	}
	return path, nil
}

// outputName 根据源文件路径（优先）或时间轴名称生成安全的文件名
func outputName(source, timelineName string) string {
	name := timelineName
	if source != "" {
		base := filepath.Base(source)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	safe := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-', c == '.':
			safe = append(safe, c)
		default:
			safe = append(safe, '_')
		}
	}

	name = strings.Trim(string(safe), ".")
	if name == "" {
		return "timeline"
	}
	return name
}
