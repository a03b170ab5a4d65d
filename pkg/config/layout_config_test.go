package config

import "testing"

func TestLanePosition(t *testing.T) {
	tests := []struct {
		name  string
		index int
		wantX float64
		wantY float64
	}{
		{"第一条轨道", 0, LaneStartX, LaneStartY},
		{"第二条轨道", 1, LaneStartX, LaneStartY + LaneSpacing},
		{"第四条轨道", 3, LaneStartX, LaneStartY + 3*LaneSpacing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := LanePosition(tt.index)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("LanePosition(%d) = (%v, %v), want (%v, %v)", tt.index, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestScrubBarBounds(t *testing.T) {
	x, y, w, h := ScrubBarBounds()

	if x != ScrubBarMargin {
		t.Errorf("x = %v, want %v", x, ScrubBarMargin)
	}
	if x+w != float64(GameWindowWidth)-ScrubBarMargin {
		t.Errorf("右边界 = %v, want %v", x+w, float64(GameWindowWidth)-ScrubBarMargin)
	}
	if y+h != float64(GameWindowHeight)-ScrubBarMargin {
		t.Errorf("下边界 = %v, want %v", y+h, float64(GameWindowHeight)-ScrubBarMargin)
	}
}
