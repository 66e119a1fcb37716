package components

import "github.com/decker502/paddleball/pkg/types"

// BodyComponent 存储一个运动球体的状态
// 用于所有的球实体
//
// NextPosition 只在同一帧的 ProposeMove 与 CommitMove 之间有意义，
// 这段窗口之外它总是等于 Position。
type BodyComponent struct {
	Position     types.Vec2 // 中心点，本帧已结算的位置
	NextPosition types.Vec2 // 本帧预计移动到的位置（碰撞系统可以修正）
	Radius       float32    // 包围正方形的半宽，碰撞与绘制共用，生命周期内不变
	Velocity     types.Vec2 // 每帧位移，反弹时对应分量取反
}

// ProposeMove 计算本帧的预计位置: NextPosition = Position + Velocity
func (b *BodyComponent) ProposeMove() {
	b.NextPosition = b.Position.Add(b.Velocity)
}

// CommitMove 将预计位置写回已结算位置
// 连续调用两次（中间没有 ProposeMove）不会产生任何变化
func (b *BodyComponent) CommitMove() {
	b.Position = b.NextPosition
}

// Bounds 返回用于绘制的包围正方形 position ± radius
func (b *BodyComponent) Bounds() types.Rect {
	return types.RectAround(b.Position, b.Radius)
}
