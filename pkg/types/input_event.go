// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// InputEvent 定义一帧内由外部输入层产生的离散事件
type InputEvent int

const (
	// InputUnknown 未知事件（会被忽略）
	InputUnknown InputEvent = iota
	// InputMoveLeft 挡板向左移动
	InputMoveLeft
	// InputMoveRight 挡板向右移动
	InputMoveRight
	// InputQuit 退出模拟
	InputQuit
)

// String 返回输入事件的字符串表示
func (e InputEvent) String() string {
	switch e {
	case InputMoveLeft:
		return "MoveLeft"
	case InputMoveRight:
		return "MoveRight"
	case InputQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
