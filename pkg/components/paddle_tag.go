package components

// PaddleComponent 标记实体为玩家控制的挡板
// Speed 为按键时每帧的水平位移
type PaddleComponent struct {
	Speed float32
}
