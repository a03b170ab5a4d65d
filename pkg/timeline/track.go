package timeline

import "sort"

// Track 轨道：把一个场景对象绑定到一组补间片段
type Track struct {
	Name  string
	Muted bool
	Clips []*Clip
}

// Bind 为片段创建 Behavior 并注入播放前参考值
//
// binding 为 nil 时返回只带默认值的 Behavior（预览停止时不做恢复），
// 否则在任何补间执行之前读取绑定对象的位置、旋转和缩放。
func (tr *Track) Bind(clip *Clip, binding Binding) *Behavior {
	behavior := clip.CreateBehavior()
	if binding == nil {
		return behavior
	}
	behavior.Initialize(ReadTransform(binding))
	return behavior
}

// BindAll 按片段顺序为每个片段创建 Behavior
func (tr *Track) BindAll(binding Binding) []*Behavior {
	behaviors := make([]*Behavior, 0, len(tr.Clips))
	for _, clip := range tr.Clips {
		behaviors = append(behaviors, tr.Bind(clip, binding))
	}
	return behaviors
}

// SortClips 按开始时间排序片段（开始时间相同时保持原顺序）
func (tr *Track) SortClips() {
	sort.SliceStable(tr.Clips, func(i, j int) bool {
		return tr.Clips[i].Start < tr.Clips[j].Start
	})
}

// Duration 返回轨道上最晚结束的片段的结束时间
func (tr *Track) Duration() float64 {
	var d float64
	for _, clip := range tr.Clips {
		if end := clip.End(); end > d {
			d = end
		}
	}
	return d
}
