// Package utils 提供模拟中常用的工具函数
//
// segment_clip.go 实现线段与轴对齐矩形的裁剪（Liang–Barsky 算法），
// 是扫掠碰撞检测的几何基础。
//
// # 参数化表示
//
// 线段 a→b 写成 P(t) = a + t·(b-a)，t ∈ [0, 1]。
// 对矩形的四个半平面逐一裁剪，得到线段位于矩形内的参数区间 [t0, t1]：
//
//	t0 = 进入矩形的参数（最大的"进入"参数）
//	t1 = 离开矩形的参数（最小的"离开"参数）
//
// t0 越小表示离起点越近，FirstContact 总是返回 t0 处的点，
// 保证反射使用的是真实的首次接触点，而不是矩形另一侧的离开点。
package utils

import "github.com/decker502/paddleball/pkg/types"

// ClipSegment 将线段 a→b 裁剪到矩形 r 内
//
// 参数:
//   - r: 目标矩形（含边界）
//   - a: 线段起点
//   - b: 线段终点
//
// 返回:
//   - t0, t1: 线段位于矩形内的参数区间，0 <= t0 <= t1 <= 1
//   - ok: 线段与矩形（含边界）没有公共点时返回 false
func ClipSegment(r types.Rect, a, b types.Vec2) (t0, t1 float32, ok bool) {
	d := b.Sub(a)
	t0, t1 = 0, 1

	// p: 方向在边法线上的分量（负值表示朝内）
	// q: 起点到该边的有符号距离（负值表示起点在该边外侧）
	planes := [4]struct{ p, q float32 }{
		{-d.X, a.X - r.Left()},
		{d.X, r.Right() - a.X},
		{-d.Y, a.Y - r.Top()},
		{d.Y, r.Bottom() - a.Y},
	}

	for _, pl := range planes {
		if pl.p == 0 {
			// 与该边平行：起点在外侧则永不相交
			if pl.q < 0 {
				return 0, 0, false
			}
			continue
		}

		t := pl.q / pl.p
		if pl.p < 0 {
			// 进入
			if t > t1 {
				return 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			// 离开
			if t < t0 {
				return 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	return t0, t1, true
}

// FirstContact 返回线段 a→b 首次从外部进入矩形 r 的接触点
//
// 以下情况不算接触：
//   - 起点严格位于矩形内部（没有"进入"这一过程）
//   - 线段只擦过矩形边界或角点，没有进入内部（t0 == t1）
//
// 返回:
//   - types.Vec2: 接触点，位于矩形边界上
//   - bool: 是否存在接触
func FirstContact(r types.Rect, a, b types.Vec2) (types.Vec2, bool) {
	if r.ContainsStrict(a) {
		return types.Vec2{}, false
	}

	t0, t1, ok := ClipSegment(r, a, b)
	if !ok || t1 <= t0 {
		return types.Vec2{}, false
	}

	return a.Add(b.Sub(a).Scale(t0)), true
}
