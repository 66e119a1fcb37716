package utils

import (
	"testing"

	"github.com/decker502/paddleball/pkg/types"
)

var testPaddle = types.Rect{X: 0, Y: 500, Width: 100, Height: 10}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name   string
		a, b   types.Vec2
		wantOK bool
		wantT0 float32
		wantT1 float32
	}{
		{
			name:   "向下穿过上边",
			a:      types.Vec2{X: 50, Y: 495},
			b:      types.Vec2{X: 50, Y: 503},
			wantOK: true,
			wantT0: 0.625,
			wantT1: 1,
		},
		{
			name:   "完全穿过挡板",
			a:      types.Vec2{X: 50, Y: 490},
			b:      types.Vec2{X: 50, Y: 520},
			wantOK: true,
			wantT0: 10.0 / 30.0,
			wantT1: 20.0 / 30.0,
		},
		{
			name:   "完全在上方",
			a:      types.Vec2{X: 50, Y: 480},
			b:      types.Vec2{X: 50, Y: 490},
			wantOK: false,
		},
		{
			name:   "平行且在外侧",
			a:      types.Vec2{X: -10, Y: 490},
			b:      types.Vec2{X: 200, Y: 490},
			wantOK: false,
		},
		{
			name:   "起点在内部",
			a:      types.Vec2{X: 50, Y: 505},
			b:      types.Vec2{X: 60, Y: 505},
			wantOK: true,
			wantT0: 0,
			wantT1: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t0, t1, ok := ClipSegment(testPaddle, tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if abs32(t0-tt.wantT0) > 1e-5 || abs32(t1-tt.wantT1) > 1e-5 {
				t.Errorf("t = [%f, %f], want [%f, %f]", t0, t1, tt.wantT0, tt.wantT1)
			}
		})
	}
}

func TestFirstContact(t *testing.T) {
	tests := []struct {
		name   string
		a, b   types.Vec2
		wantOK bool
		want   types.Vec2
	}{
		{
			name:   "上边接触点",
			a:      types.Vec2{X: 50, Y: 495},
			b:      types.Vec2{X: 50, Y: 503},
			wantOK: true,
			want:   types.Vec2{X: 50, Y: 500},
		},
		{
			name:   "穿透时返回靠近起点的进入点",
			a:      types.Vec2{X: 50, Y: 520},
			b:      types.Vec2{X: 50, Y: 490},
			wantOK: true,
			want:   types.Vec2{X: 50, Y: 510},
		},
		{
			name:   "从左侧进入",
			a:      types.Vec2{X: -6, Y: 505},
			b:      types.Vec2{X: 2, Y: 505},
			wantOK: true,
			want:   types.Vec2{X: 0, Y: 505},
		},
		{
			name:   "恰好经过角点",
			a:      types.Vec2{X: -4, Y: 496},
			b:      types.Vec2{X: 4, Y: 504},
			wantOK: true,
			want:   types.Vec2{X: 0, Y: 500},
		},
		{
			name:   "只擦过角点",
			a:      types.Vec2{X: -4, Y: 504},
			b:      types.Vec2{X: 4, Y: 496},
			wantOK: false,
		},
		{
			name:   "起点在内部不算进入",
			a:      types.Vec2{X: 50, Y: 505},
			b:      types.Vec2{X: 50, Y: 495},
			wantOK: false,
		},
		{
			name:   "起点在边上并向外离开",
			a:      types.Vec2{X: 50, Y: 500},
			b:      types.Vec2{X: 50, Y: 492},
			wantOK: false,
		},
		{
			name:   "起点在边上并向内",
			a:      types.Vec2{X: 50, Y: 500},
			b:      types.Vec2{X: 50, Y: 508},
			wantOK: true,
			want:   types.Vec2{X: 50, Y: 500},
		},
		{
			name:   "没有移动",
			a:      types.Vec2{X: 50, Y: 480},
			b:      types.Vec2{X: 50, Y: 480},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstContact(testPaddle, tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (abs32(got.X-tt.want.X) > 1e-4 || abs32(got.Y-tt.want.Y) > 1e-4) {
				t.Errorf("contact = %v, want %v", got, tt.want)
			}
		})
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
