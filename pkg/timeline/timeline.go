// Package timeline 时间轴补间插件
//
// 一个 Timeline 由若干 Track 组成，每条 Track 绑定一个场景对象，
// Track 上的每个 Clip 描述一次 position / rotation / scale 补间。
//
// 运行时结构：
//   - Clip.CreateBehavior 复制作者参数，生成片段运行时实例 Behavior
//   - Track.Bind 在播放开始前读取绑定对象的参考值并注入 Behavior
//   - Director 作为最小宿主，按时间调用 Behavior 的钩子
package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidClip 片段时间参数非法
	ErrInvalidClip = errors.New("invalid clip")
	// ErrTimelineNotFound 时间轴不存在
	ErrTimelineNotFound = errors.New("timeline not found")
)

// WrapMode 时间轴播放到末尾后的处理方式
type WrapMode int

const (
	// WrapNone 播放到末尾后停止
	WrapNone WrapMode = iota
	// WrapHold 停在末尾并持续求值
	WrapHold
	// WrapLoop 回到开头循环
	WrapLoop
)

// String 返回名称
func (w WrapMode) String() string {
	switch w {
	case WrapHold:
		return "hold"
	case WrapLoop:
		return "loop"
	default:
		return "none"
	}
}

// ParseWrapMode 解析循环方式名称，空字符串视为 none
func ParseWrapMode(name string) (WrapMode, error) {
	switch name {
	case "", "none":
		return WrapNone, nil
	case "hold":
		return WrapHold, nil
	case "loop":
		return WrapLoop, nil
	}
	return WrapNone, fmt.Errorf("unknown wrap mode %q", name)
}

// Timeline 时间轴资源
type Timeline struct {
	Name    string
	Version string
	Wrap    WrapMode
	Tracks  []*Track
}

// Duration 时间轴总时长（所有片段中最晚的结束时间）
func (tl *Timeline) Duration() float64 {
	var d float64
	for _, tr := range tl.Tracks {
		if td := tr.Duration(); td > d {
			d = td
		}
	}
	return d
}

// Track 按名称查找轨道
func (tl *Timeline) Track(name string) (*Track, bool) {
	for _, tr := range tl.Tracks {
		if tr.Name == name {
			return tr, true
		}
	}
	return nil, false
}

// Validate 校验所有片段，并把每条轨道的片段按开始时间排序
func (tl *Timeline) Validate() error {
	for _, tr := range tl.Tracks {
		for _, clip := range tr.Clips {
			if err := clip.Validate(); err != nil {
				return err
			}
		}
		tr.SortClips()
	}
	return nil
}
