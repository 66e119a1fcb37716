package types

import "strings"

// Edge 矩形边的位掩码，可以同时包含多条边（角碰撞）
type Edge uint8

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom

	// EdgeNone 没有任何边
	EdgeNone Edge = 0
)

// Has 检查是否包含指定边中的任意一条
func (e Edge) Has(mask Edge) bool {
	return e&mask != 0
}

// Horizontal 是否包含左边或右边（影响 X 轴速度）
func (e Edge) Horizontal() bool {
	return e.Has(EdgeLeft | EdgeRight)
}

// Vertical 是否包含上边或下边（影响 Y 轴速度）
func (e Edge) Vertical() bool {
	return e.Has(EdgeTop | EdgeBottom)
}

// Opposite 返回镜像边
// 球撞到挡板的上边时，球自己被撞到的是下边
func (e Edge) Opposite() Edge {
	var out Edge
	if e.Has(EdgeLeft) {
		out |= EdgeRight
	}
	if e.Has(EdgeRight) {
		out |= EdgeLeft
	}
	if e.Has(EdgeTop) {
		out |= EdgeBottom
	}
	if e.Has(EdgeBottom) {
		out |= EdgeTop
	}
	return out
}

// String 返回可读形式，如 "left|top"
func (e Edge) String() string {
	if e == EdgeNone {
		return "none"
	}
	parts := make([]string, 0, 4)
	if e.Has(EdgeLeft) {
		parts = append(parts, "left")
	}
	if e.Has(EdgeRight) {
		parts = append(parts, "right")
	}
	if e.Has(EdgeTop) {
		parts = append(parts, "top")
	}
	if e.Has(EdgeBottom) {
		parts = append(parts, "bottom")
	}
	return strings.Join(parts, "|")
}
