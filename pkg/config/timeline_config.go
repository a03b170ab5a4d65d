package config

import (
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/tweentimeline/pkg/timeline"
	"github.com/gonewx/tweentimeline/pkg/tween"
	"gopkg.in/yaml.v3"
)

// TimelineFormatVersion 当前写出的时间轴资源版本
const TimelineFormatVersion = "1.0"

// TimelineFile 时间轴资源文件结构
//
// 示例：
//
//	version: "1.0"
//	name: intro
//	wrap: loop
//	tracks:
//	  - name: box
//	    clips:
//	      - name: slide
//	        start: 0
//	        duration: 2
//	        tween_position: true
//	        target_position: [10, 0, 0]
//	        ease: OutQuad
type TimelineFile struct {
	Version string        `yaml:"version"`
	Name    string        `yaml:"name"`
	Wrap    string        `yaml:"wrap,omitempty"` // none / hold / loop
	Tracks  []TrackConfig `yaml:"tracks"`
}

// TrackConfig 单条轨道的配置
type TrackConfig struct {
	Name  string       `yaml:"name"`
	Muted bool         `yaml:"muted,omitempty"`
	Clips []ClipConfig `yaml:"clips"`
}

// ClipConfig 单个片段的配置
type ClipConfig struct {
	Name          string  `yaml:"name"`
	Start         float64 `yaml:"start"`
	Duration      float64 `yaml:"duration"`
	Extrapolation string  `yaml:"extrapolation,omitempty"` // none / hold

	TweenPosition  bool       `yaml:"tween_position,omitempty"`
	TargetPosition [3]float64 `yaml:"target_position,flow"`

	TweenRotation  bool       `yaml:"tween_rotation,omitempty"`
	TargetRotation [3]float64 `yaml:"target_rotation,flow"` // 欧拉角（度）

	TweenScale  bool        `yaml:"tween_scale,omitempty"`
	TargetScale *[3]float64 `yaml:"target_scale,flow,omitempty"` // nil 表示 [1, 1, 1]

	Ease               tween.Ease `yaml:"ease"`
	RetainTargetValues bool       `yaml:"retain_target_values,omitempty"`
}

// ParseTimeline 解析 YAML 时间轴资源并转换为运行时结构
func ParseTimeline(data []byte) (*timeline.Timeline, error) {
	var file TimelineFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse timeline: %w", err)
	}

	if file.Version == "" {
		log.Printf("[TimelineConfig] Warning: timeline %q has no version field", file.Name)
	}

	tl, err := file.ToTimeline()
	if err != nil {
		return nil, err
	}

	if len(tl.Tracks) == 0 {
		log.Printf("[TimelineConfig] Warning: timeline %q has no tracks", tl.Name)
	}
	return tl, nil
}

// LoadTimelineFile 从磁盘加载时间轴资源
func LoadTimelineFile(path string) (*timeline.Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline file %s: %w", path, err)
	}

	tl, err := ParseTimeline(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("[TimelineConfig] Loaded timeline %q from %s (tracks=%d, duration=%.2fs)",
		tl.Name, path, len(tl.Tracks), tl.Duration())
	return tl, nil
}

// MarshalTimeline 把运行时时间轴序列化为 YAML
func MarshalTimeline(tl *timeline.Timeline) ([]byte, error) {
	file := FromTimeline(tl)
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timeline %q: %w", tl.Name, err)
	}
	return data, nil
}

// SaveTimelineFile 把时间轴写入磁盘
func SaveTimelineFile(path string, tl *timeline.Timeline) error {
	data, err := MarshalTimeline(tl)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write timeline file %s: %w", path, err)
	}
	log.Printf("[TimelineConfig] Saved timeline %q to %s", tl.Name, path)
	return nil
}

// ToTimeline 把文件结构转换为运行时结构并校验
func (f *TimelineFile) ToTimeline() (*timeline.Timeline, error) {
	wrap, err := timeline.ParseWrapMode(f.Wrap)
	if err != nil {
		return nil, fmt.Errorf("timeline %q: %w", f.Name, err)
	}

	tl := &timeline.Timeline{
		Name:    f.Name,
		Version: f.Version,
		Wrap:    wrap,
		Tracks:  make([]*timeline.Track, 0, len(f.Tracks)),
	}

	seen := make(map[string]bool, len(f.Tracks))
	for i, tc := range f.Tracks {
		if tc.Name == "" {
			return nil, fmt.Errorf("track #%d is missing 'name'", i)
		}
		if seen[tc.Name] {
			return nil, fmt.Errorf("duplicate track name %q", tc.Name)
		}
		seen[tc.Name] = true

		track := &timeline.Track{
			Name:  tc.Name,
			Muted: tc.Muted,
			Clips: make([]*timeline.Clip, 0, len(tc.Clips)),
		}
		for j, cc := range tc.Clips {
			clip, err := cc.toClip()
			if err != nil {
				return nil, fmt.Errorf("track %q clip #%d: %w", tc.Name, j, err)
			}
			if !clip.Parameters.AnyChannel() {
				log.Printf("[TimelineConfig] Warning: clip %q on track %q tweens no channel", clip.Name, tc.Name)
			}
			track.Clips = append(track.Clips, clip)
		}
		tl.Tracks = append(tl.Tracks, track)
	}

	if err := tl.Validate(); err != nil {
		return nil, fmt.Errorf("timeline %q: %w", f.Name, err)
	}
	return tl, nil
}

func (c ClipConfig) toClip() (*timeline.Clip, error) {
	extrapolation, err := timeline.ParseExtrapolation(c.Extrapolation)
	if err != nil {
		return nil, err
	}

	scale := mgl64.Vec3{1, 1, 1}
	if c.TargetScale != nil {
		scale = mgl64.Vec3(*c.TargetScale)
	}

	return &timeline.Clip{
		Name:              c.Name,
		Start:             c.Start,
		Duration:          c.Duration,
		PostExtrapolation: extrapolation,
		Parameters: timeline.ClipParameters{
			TweenPosition:      c.TweenPosition,
			TargetPosition:     mgl64.Vec3(c.TargetPosition),
			TweenRotation:      c.TweenRotation,
			TargetRotation:     mgl64.Vec3(c.TargetRotation),
			TweenScale:         c.TweenScale,
			TargetScale:        scale,
			Ease:               c.Ease,
			RetainTargetValues: c.RetainTargetValues,
		},
	}, nil
}

// FromTimeline 把运行时结构转换为文件结构
func FromTimeline(tl *timeline.Timeline) *TimelineFile {
	version := tl.Version
	if version == "" {
		version = TimelineFormatVersion
	}

	file := &TimelineFile{
		Version: version,
		Name:    tl.Name,
		Tracks:  make([]TrackConfig, 0, len(tl.Tracks)),
	}
	if tl.Wrap != timeline.WrapNone {
		file.Wrap = tl.Wrap.String()
	}

	for _, track := range tl.Tracks {
		tc := TrackConfig{
			Name:  track.Name,
			Muted: track.Muted,
			Clips: make([]ClipConfig, 0, len(track.Clips)),
		}
		for _, clip := range track.Clips {
			p := clip.Parameters
			scale := [3]float64(p.TargetScale)
			cc := ClipConfig{
				Name:               clip.Name,
				Start:              clip.Start,
				Duration:           clip.Duration,
				TweenPosition:      p.TweenPosition,
				TargetPosition:     [3]float64(p.TargetPosition),
				TweenRotation:      p.TweenRotation,
				TargetRotation:     [3]float64(p.TargetRotation),
				TweenScale:         p.TweenScale,
				TargetScale:        &scale,
				Ease:               p.Ease,
				RetainTargetValues: p.RetainTargetValues,
			}
			if clip.PostExtrapolation != timeline.ExtrapolationNone {
				cc.Extrapolation = clip.PostExtrapolation.String()
			}
			tc.Clips = append(tc.Clips, cc)
		}
		file.Tracks = append(file.Tracks, tc)
	}
	return file
}
