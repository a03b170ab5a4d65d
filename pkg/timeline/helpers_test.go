package timeline

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/tweentimeline/pkg/tween"
)

// 插值由 gween 以 float32 计算
const testEpsilon = 1e-5

// fakeTransform 测试用的绑定对象，记录每个通道被写入的次数
type fakeTransform struct {
	position, rotation, scale                   mgl64.Vec3
	positionWrites, rotationWrites, scaleWrites int
}

func newFakeTransform(pos, rot, scale mgl64.Vec3) *fakeTransform {
	return &fakeTransform{position: pos, rotation: rot, scale: scale}
}

func (f *fakeTransform) Position() mgl64.Vec3    { return f.position }
func (f *fakeTransform) EulerAngles() mgl64.Vec3 { return f.rotation }
func (f *fakeTransform) LocalScale() mgl64.Vec3  { return f.scale }

func (f *fakeTransform) SetPosition(v mgl64.Vec3) {
	f.position = v
	f.positionWrites++
}

func (f *fakeTransform) SetEulerAngles(v mgl64.Vec3) {
	f.rotation = v
	f.rotationWrites++
}

func (f *fakeTransform) SetLocalScale(v mgl64.Vec3) {
	f.scale = v
	f.scaleWrites++
}

func vecEqual(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, testEpsilon)
}

// positionClip (0,0,0) -> (10,0,0)，时长 2 秒，线性，仅 position 通道
func positionClip() *Clip {
	return &Clip{
		Name:     "move",
		Start:    0,
		Duration: 2,
		Parameters: ClipParameters{
			TweenPosition:  true,
			TargetPosition: mgl64.Vec3{10, 0, 0},
			Ease:           tween.Linear,
		},
	}
}

func allChannelsClip(retain bool) *Clip {
	return &Clip{
		Name:     "all",
		Start:    0,
		Duration: 1,
		Parameters: ClipParameters{
			TweenPosition:      true,
			TargetPosition:     mgl64.Vec3{4, 4, 4},
			TweenRotation:      true,
			TargetRotation:     mgl64.Vec3{0, 0, 90},
			TweenScale:         true,
			TargetScale:        mgl64.Vec3{2, 2, 2},
			Ease:               tween.InOutQuad,
			RetainTargetValues: retain,
		},
	}
}
