package config

// 布局配置常量
// 本文件定义了预览窗口中的布局参数：窗口尺寸、轨道实体的初始位置、进度条位置

// Preview Window Configuration (预览窗口配置)
const (
	// GameWindowWidth 是预览窗口的逻辑宽度
	GameWindowWidth = 960

	// GameWindowHeight 是预览窗口的逻辑高度
	GameWindowHeight = 540
)

// Track Lane Configuration (轨道实体布局)
// 每条轨道生成一个精灵实体，按轨道顺序自上而下排列
const (
	// LaneStartX 是第一条轨道实体的初始X坐标
	LaneStartX = 120.0

	// LaneStartY 是第一条轨道实体的初始Y坐标
	LaneStartY = 120.0

	// LaneSpacing 是相邻轨道实体之间的纵向间距
	LaneSpacing = 90.0

	// LaneSpriteSize 是轨道实体精灵的边长（像素）
	LaneSpriteSize = 48.0
)

// Scrub Bar Configuration (进度条配置)
const (
	// ScrubBarMargin 是进度条距窗口左右及底部的边距
	ScrubBarMargin = 24.0

	// ScrubBarHeight 是进度条高度
	ScrubBarHeight = 8.0

	// ScrubStep 是左右方向键每次拖动的时间（秒）
	ScrubStep = 0.1
)

// LanePosition 返回第 index 条轨道实体的初始位置
func LanePosition(index int) (float64, float64) {
	return LaneStartX, LaneStartY + float64(index)*LaneSpacing
}

// ScrubBarBounds 返回进度条的矩形：x, y, width, height
func ScrubBarBounds() (float64, float64, float64, float64) {
	x := ScrubBarMargin
	y := float64(GameWindowHeight) - ScrubBarMargin - ScrubBarHeight
	width := float64(GameWindowWidth) - 2*ScrubBarMargin
	return x, y, width, ScrubBarHeight
}
