package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 预览渲染用的精灵
//
// Image 为 nil 时渲染系统按 Width x Height 绘制纯色矩形
type SpriteComponent struct {
	Image *ebiten.Image

	Width  float64
	Height float64
	Color  color.RGBA

	// AnchorX / AnchorY 旋转和缩放的锚点（0~1，相对于精灵尺寸）
	// 零值为左上角；NewSpriteComponent 使用中心 0.5 / 0.5
	AnchorX float64
	AnchorY float64

	// Label 绘制在精灵旁的文字（通常是轨道名）
	Label string
}

// NewSpriteComponent 创建以中心为锚点的纯色矩形精灵
func NewSpriteComponent(width, height float64, clr color.RGBA, label string) *SpriteComponent {
	return &SpriteComponent{
		Width:   width,
		Height:  height,
		Color:   clr,
		AnchorX: 0.5,
		AnchorY: 0.5,
		Label:   label,
	}
}

// Size 返回精灵的原始尺寸（有图片时以图片尺寸为准）
func (s *SpriteComponent) Size() (float64, float64) {
	if s.Image != nil {
		b := s.Image.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	}
	return s.Width, s.Height
}
