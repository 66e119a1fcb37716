package components

import "github.com/decker502/paddleball/pkg/types"

// ObstacleComponent 存储挡板这类可移动矩形障碍物的状态
// 挡板不会改变尺寸，NextRect 只有 X/Y 会变化
type ObstacleComponent struct {
	Rect     types.Rect // 本帧已结算的矩形
	NextRect types.Rect // 本帧预计的矩形，球体碰撞检测使用它
	Velocity types.Vec2 // 每帧由输入设置，通常为 (±speed, 0)
}

// ProposeMove 计算本帧的预计矩形: NextRect.origin = Rect.origin + Velocity
func (o *ObstacleComponent) ProposeMove() {
	o.NextRect = o.Rect.Translate(o.Velocity)
}

// CommitMove 将预计矩形写回已结算矩形
func (o *ObstacleComponent) CommitMove() {
	o.Rect = o.NextRect
}
