package embedded

import (
	"testing"
	"testing/fstest"
)

func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"data/timelines/intro.yaml":  {Data: []byte("name: intro\n")},
		"data/timelines/bounce.yaml": {Data: []byte("name: bounce\n")},
		"data/timelines/notes.txt":   {Data: []byte("ignored")},
	}
}

// TestNotInitialized 测试未初始化时的所有入口
func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := Open("data/x"); err == nil {
		t.Error("Expected error when calling Open() before Init()")
	}
	if _, err := ReadFile("data/x"); err == nil {
		t.Error("Expected error when calling ReadFile() before Init()")
	}
	if _, err := Glob("data/*"); err == nil {
		t.Error("Expected error when calling Glob() before Init()")
	}
	if Exists("data/timelines/intro.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestInvalidPrefix 测试无效路径前缀
func TestInvalidPrefix(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	_, err := ReadFile("assets/test.png")
	if err == nil {
		t.Fatal("Expected error for invalid path prefix")
	}
	if err.Error() != "unknown resource path prefix: assets/test.png (must start with 'data/')" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestReadFile 测试读取与路径规范化
func TestReadFile(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	for _, p := range []string{"data/timelines/intro.yaml", "./data/timelines/intro.yaml"} {
		data, err := ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile(%q) error = %v", p, err)
		}
		if string(data) != "name: intro\n" {
			t.Errorf("ReadFile(%q) = %q", p, data)
		}
	}

	if !Exists("data/timelines/bounce.yaml") {
		t.Error("Exists() 应返回 true")
	}
	if Exists("data/timelines/missing.yaml") {
		t.Error("Exists() 对不存在的文件应返回 false")
	}
}

// TestTimelineNames 测试内置时间轴列表
func TestTimelineNames(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	names, err := TimelineNames()
	if err != nil {
		t.Fatalf("TimelineNames() error = %v", err)
	}
	if len(names) != 2 || names[0] != "bounce" || names[1] != "intro" {
		t.Errorf("TimelineNames() = %v, want [bounce intro]", names)
	}

	data, err := ReadTimeline("bounce")
	if err != nil || string(data) != "name: bounce\n" {
		t.Errorf("ReadTimeline(bounce) = %q, %v", data, err)
	}
}
