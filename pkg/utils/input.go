package utils

import (
	"github.com/decker502/paddleball/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的原始输入状态
// 用于统一处理键盘和触摸输入
type InputState struct {
	// 向左/向右方向键（或 A/D）是否按住
	LeftHeld, RightHeld bool
	// Escape/Q 是否刚刚按下
	QuitPressed bool
	// 是否有活动的触摸，以及第一个触点的 X 坐标
	IsTouching bool
	TouchX     int
}

// GetInputState 读取当前帧的输入状态
// 方向键按住期间每一帧都会产生移动事件，松开后挡板立即停止
func GetInputState() InputState {
	state := InputState{
		LeftHeld:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		RightHeld:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		QuitPressed: inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}

	// 触摸输入（移动设备）：按住屏幕左半边/右半边移动挡板
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.IsTouching = true
		state.TouchX, _ = ebiten.TouchPosition(touchIDs[0])
	}

	return state
}

// EventsFromState 将原始输入状态转换为离散输入事件
//
// 参数:
//   - state: 本帧输入状态
//   - screenWidth: 逻辑屏幕宽度，用于判断触点在左半边还是右半边
//
// 返回:
//   - []types.InputEvent: 本帧事件，Quit 总是排在最前
func EventsFromState(state InputState, screenWidth int) []types.InputEvent {
	events := make([]types.InputEvent, 0, 3)

	if state.QuitPressed {
		events = append(events, types.InputQuit)
	}

	left, right := state.LeftHeld, state.RightHeld
	if state.IsTouching {
		if state.TouchX < screenWidth/2 {
			left = true
		} else {
			right = true
		}
	}

	if left {
		events = append(events, types.InputMoveLeft)
	}
	if right {
		events = append(events, types.InputMoveRight)
	}

	return events
}

// PollInputEvents 读取 ebiten 输入并返回本帧的事件列表
func PollInputEvents(screenWidth int) []types.InputEvent {
	return EventsFromState(GetInputState(), screenWidth)
}
