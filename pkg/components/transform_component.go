package components

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent 实体的位置 / 旋转 / 缩放
//
// 坐标约定（2D 预览）：
//   - Position.X / Position.Y 为屏幕坐标（像素），Z 仅用于排序
//   - Rotation 为欧拉角（度），渲染时只使用 Z 分量
//   - Scale.X / Scale.Y 为缩放因子（1.0 = 原始大小）
//
// 实现了 timeline.Binding，可以直接作为轨道的绑定对象
type TransformComponent struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Vec3
	Scale       mgl64.Vec3
}

// NewTransformComponent 创建位于 (x, y) 的单位变换
func NewTransformComponent(x, y float64) *TransformComponent {
	return &TransformComponent{
		Translation: mgl64.Vec3{x, y, 0},
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

func (t *TransformComponent) Position() mgl64.Vec3        { return t.Translation }
func (t *TransformComponent) SetPosition(v mgl64.Vec3)    { t.Translation = v }
func (t *TransformComponent) EulerAngles() mgl64.Vec3     { return t.Rotation }
func (t *TransformComponent) SetEulerAngles(v mgl64.Vec3) { t.Rotation = v }
func (t *TransformComponent) LocalScale() mgl64.Vec3      { return t.Scale }
func (t *TransformComponent) SetLocalScale(v mgl64.Vec3)  { t.Scale = v }
