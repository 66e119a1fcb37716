package game

import (
	"github.com/decker502/paddleball/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可更新、可绘制的场景
type Scene interface {
	// Update 推进一帧
	// events 是本帧归一化后的输入事件；返回非 nil 错误时主循环退出
	Update(events []types.InputEvent) error

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}
