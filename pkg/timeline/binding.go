package timeline

import "github.com/go-gl/mathgl/mgl64"

// Binding 轨道绑定的场景对象
//
// 旋转以欧拉角（度）表示，与时间轴资源中 target_rotation 的写法一致。
// nil Binding 表示"当前没有绑定对象"，所有钩子遇到 nil 都静默跳过。
type Binding interface {
	Position() mgl64.Vec3
	SetPosition(mgl64.Vec3)
	EulerAngles() mgl64.Vec3
	SetEulerAngles(mgl64.Vec3)
	LocalScale() mgl64.Vec3
	SetLocalScale(mgl64.Vec3)
}

// TransformValues 位置 / 旋转 / 缩放的快照
type TransformValues struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// ReadTransform 读取绑定对象当前的三个通道
func ReadTransform(b Binding) TransformValues {
	return TransformValues{
		Position: b.Position(),
		Rotation: b.EulerAngles(),
		Scale:    b.LocalScale(),
	}
}

// ApplyTo 把三个通道全部写回绑定对象
func (v TransformValues) ApplyTo(b Binding) {
	b.SetPosition(v.Position)
	b.SetEulerAngles(v.Rotation)
	b.SetLocalScale(v.Scale)
}
