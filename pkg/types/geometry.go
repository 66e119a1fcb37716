package types

import "fmt"

// Vec2 二维向量，用于位置、速度和位移
type Vec2 struct {
	X, Y float32
}

// Add 返回 v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 返回 v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 返回 v * s
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// Rect 轴对齐矩形，(X, Y) 为左上角
// 屏幕坐标系：Y 轴向下，Top 对应较小的 Y 值
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Left 返回左边界 X 坐标
func (r Rect) Left() float32 { return r.X }

// Right 返回右边界 X 坐标
func (r Rect) Right() float32 { return r.X + r.Width }

// Top 返回上边界 Y 坐标
func (r Rect) Top() float32 { return r.Y }

// Bottom 返回下边界 Y 坐标
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// Origin 返回左上角坐标
func (r Rect) Origin() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

// Translate 返回平移 d 之后的矩形，尺寸不变
func (r Rect) Translate(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, Width: r.Width, Height: r.Height}
}

// ContainsStrict 检查点是否严格位于矩形内部（边界上的点不算）
func (r Rect) ContainsStrict(p Vec2) bool {
	return p.X > r.Left() && p.X < r.Right() && p.Y > r.Top() && p.Y < r.Bottom()
}

// RectAround 返回以 center 为中心、半宽为 half 的正方形
func RectAround(center Vec2, half float32) Rect {
	return Rect{
		X:      center.X - half,
		Y:      center.Y - half,
		Width:  half * 2,
		Height: half * 2,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("{x=%.3f y=%.3f w=%.3f h=%.3f}", r.X, r.Y, r.Width, r.Height)
}
