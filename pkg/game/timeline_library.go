package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/gonewx/tweentimeline/pkg/config"
	"github.com/gonewx/tweentimeline/pkg/timeline"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	timelineObject     = "timelines"
	timelineIndexProp  = "index"
	timelinePropPrefix = "tl_"
)

// timelineIndex 已保存时间轴的名称索引
type timelineIndex struct {
	Names []string `yaml:"names"`
}

// TimelineLibrary 时间轴库
// 负责把编辑好的时间轴以 YAML 形式持久化到 gdata
//
// gdataManager 为 nil 时进入降级模式：时间轴只保存在内存中，所有操作都不会失败。
type TimelineLibrary struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	memory       map[string][]byte
	names        map[string]bool
}

// NewTimelineLibrary 创建时间轴库
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
func NewTimelineLibrary(gdataManager *gdata.Manager) *TimelineLibrary {
	lib := &TimelineLibrary{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
		names:        make(map[string]bool),
	}

	if err := lib.loadIndex(); err != nil {
		// 索引损坏不是致命错误，从空库开始
		log.Printf("[TimelineLibrary] Warning: Failed to load index: %v (starting empty)", err)
	}
	return lib
}

// Save 保存时间轴（同名覆盖）
func (lib *TimelineLibrary) Save(tl *timeline.Timeline) error {
	if tl.Name == "" {
		return fmt.Errorf("cannot save timeline without a name")
	}

	data, err := config.MarshalTimeline(tl)
	if err != nil {
		return err
	}

	if lib.gdataManager == nil {
		lib.memory[tl.Name] = data
		lib.names[tl.Name] = true
		return nil
	}

	if err := lib.gdataManager.SaveObjectProp(timelineObject, propKey(tl.Name), data); err != nil {
		return fmt.Errorf("failed to save timeline %q: %w", tl.Name, err)
	}
	lib.names[tl.Name] = true
	if err := lib.saveIndex(); err != nil {
		return err
	}

	log.Printf("[TimelineLibrary] Timeline %q saved (%d bytes)", tl.Name, len(data))
	return nil
}

// Load 按名称加载时间轴
// 不存在时返回 timeline.ErrTimelineNotFound
func (lib *TimelineLibrary) Load(name string) (*timeline.Timeline, error) {
	if !lib.Exists(name) {
		return nil, fmt.Errorf("%w: %q", timeline.ErrTimelineNotFound, name)
	}

	var data []byte
	if lib.gdataManager == nil {
		data = lib.memory[name]
	} else {
		loaded, err := lib.gdataManager.LoadObjectProp(timelineObject, propKey(name))
		if err != nil {
			return nil, fmt.Errorf("failed to load timeline %q: %w", name, err)
		}
		data = loaded
	}

	tl, err := config.ParseTimeline(data)
	if err != nil {
		return nil, fmt.Errorf("stored timeline %q: %w", name, err)
	}
	return tl, nil
}

// Exists 检查时间轴是否已保存
func (lib *TimelineLibrary) Exists(name string) bool {
	if !lib.names[name] {
		return false
	}
	if lib.gdataManager == nil {
		return true
	}
	return lib.gdataManager.ObjectPropExists(timelineObject, propKey(name))
}

// Delete 删除时间轴，不存在时返回 timeline.ErrTimelineNotFound
func (lib *TimelineLibrary) Delete(name string) error {
	if !lib.names[name] {
		return fmt.Errorf("%w: %q", timeline.ErrTimelineNotFound, name)
	}

	delete(lib.names, name)
	if lib.gdataManager == nil {
		delete(lib.memory, name)
		return nil
	}

	if lib.gdataManager.ObjectPropExists(timelineObject, propKey(name)) {
		if err := lib.gdataManager.DeleteObjectProp(timelineObject, propKey(name)); err != nil {
			return fmt.Errorf("failed to delete timeline %q: %w", name, err)
		}
	}
	if err := lib.saveIndex(); err != nil {
		return err
	}

	log.Printf("[TimelineLibrary] Timeline %q deleted", name)
	return nil
}

// Names 返回所有已保存的时间轴名称（按字母序）
func (lib *TimelineLibrary) Names() []string {
	names := make([]string, 0, len(lib.names))
	for name := range lib.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (lib *TimelineLibrary) loadIndex() error {
	if lib.gdataManager == nil {
		return nil
	}
	if !lib.gdataManager.ObjectPropExists(timelineObject, timelineIndexProp) {
		return nil
	}

	data, err := lib.gdataManager.LoadObjectProp(timelineObject, timelineIndexProp)
	if err != nil {
		return fmt.Errorf("failed to load timeline index: %w", err)
	}

	var index timelineIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return fmt.Errorf("failed to unmarshal timeline index: %w", err)
	}
	for _, name := range index.Names {
		lib.names[name] = true
	}

	log.Printf("[TimelineLibrary] Index loaded (%d timelines)", len(lib.names))
	return nil
}

func (lib *TimelineLibrary) saveIndex() error {
	data, err := yaml.Marshal(timelineIndex{Names: lib.Names()})
	if err != nil {
		return fmt.Errorf("failed to marshal timeline index: %w", err)
	}
	if err := lib.gdataManager.SaveObjectProp(timelineObject, timelineIndexProp, data); err != nil {
		return fmt.Errorf("failed to save timeline index: %w", err)
	}
	return nil
}

// propKey 时间轴名称对应的属性键
// 名称中非字母数字的字符被替换，保证在各平台都是合法的文件名
func propKey(name string) string {
	key := make([]byte, 0, len(timelinePropPrefix)+len(name))
	key = append(key, timelinePropPrefix...)
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			key = append(key, c)
		default:
			key = append(key, fmt.Sprintf("%%%02x", c)...)
		}
	}
	return string(key)
}
