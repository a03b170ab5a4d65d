package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/gonewx/tweentimeline/pkg/components"
	"github.com/gonewx/tweentimeline/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 绘制所有拥有 TransformComponent + SpriteComponent 的实体
//
// 渲染顺序：Translation.Z 从小到大，Z 相同时按实体ID
// 变换顺序：锚点平移 -> 缩放 -> 绕 Z 轴旋转 -> 平移到 Translation
type RenderSystem struct {
	entityManager *ecs.EntityManager
	whitePixel    *ebiten.Image // 无图片精灵使用的 1x1 白色纹理（延迟创建）
	ShowPivots    bool
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
	}
}

// Draw 绘制所有精灵实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, d := range s.drawables() {
		s.drawSprite(screen, d.transform, d.sprite)
	}
}

type drawable struct {
	id        ecs.EntityID
	transform *components.TransformComponent
	sprite    *components.SpriteComponent
}

// drawables 按渲染顺序返回所有精灵实体，组件只查询一次
func (s *RenderSystem) drawables() []drawable {
	entities := ecs.GetEntitiesWith2[*components.TransformComponent, *components.SpriteComponent](s.entityManager)

	list := make([]drawable, 0, len(entities))
	for _, id := range entities {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		list = append(list, drawable{id: id, transform: transform, sprite: sprite})
	}

	// entities 已按 ID 排序，稳定排序保证 Z 相同时按 ID
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].transform.Translation.Z() < list[j].transform.Translation.Z()
	})
	return list
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, transform *components.TransformComponent, sprite *components.SpriteComponent) {
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear

	img := sprite.Image
	if img == nil {
		if s.whitePixel == nil {
			s.whitePixel = ebiten.NewImage(1, 1)
			s.whitePixel.Fill(color.White)
		}
		img = s.whitePixel
		// 把 1x1 纹理拉伸为精灵尺寸，再交给统一的变换
		op.GeoM.Scale(sprite.Width, sprite.Height)
		op.ColorScale.ScaleWithColor(sprite.Color)
	}
	op.GeoM.Concat(BuildGeoM(transform, sprite))
	screen.DrawImage(img, op)

	x, y := transform.Translation.X(), transform.Translation.Y()
	if s.ShowPivots {
		const arm = 4
		pivot := color.RGBA{R: 255, G: 60, B: 60, A: 255}
		vector.StrokeLine(screen, float32(x-arm), float32(y), float32(x+arm), float32(y), 1, pivot, true)
		vector.StrokeLine(screen, float32(x), float32(y-arm), float32(x), float32(y+arm), 1, pivot, true)
	}
	if sprite.Label != "" {
		_, h := sprite.Size()
		ebitenutil.DebugPrintAt(screen, sprite.Label, int(x), int(y+h*transform.Scale.Y()/2)+4)
	}
}

// BuildGeoM 根据变换组件和精灵计算几何矩阵
//
// 输入坐标为精灵自身像素坐标（左上角为原点），输出为屏幕坐标。
// 旋转只使用欧拉角的 Z 分量（度）。
func BuildGeoM(transform *components.TransformComponent, sprite *components.SpriteComponent) ebiten.GeoM {
	var m ebiten.GeoM

	w, h := sprite.Size()
	m.Translate(-sprite.AnchorX*w, -sprite.AnchorY*h)
	m.Scale(transform.Scale.X(), transform.Scale.Y())
	m.Rotate(transform.Rotation.Z() * math.Pi / 180)
	m.Translate(transform.Translation.X(), transform.Translation.Y())
	return m
}
