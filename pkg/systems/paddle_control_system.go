package systems

import (
	"log"

	"github.com/decker502/paddleball/pkg/components"
	"github.com/decker502/paddleball/pkg/ecs"
	"github.com/decker502/paddleball/pkg/types"
)

// PaddleControlSystem 根据本帧输入设置挡板速度
//
// 输入不会跨帧保持：没有方向事件的帧速度归零，
// 按住方向键时输入层每帧都会重新产生事件。
type PaddleControlSystem struct {
	entityManager *ecs.EntityManager
}

// NewPaddleControlSystem 创建挡板控制系统
func NewPaddleControlSystem(em *ecs.EntityManager) *PaddleControlSystem {
	return &PaddleControlSystem{
		entityManager: em,
	}
}

// Apply 消费本帧的输入事件
//
// MoveLeft 贡献 -speed，MoveRight 贡献 +speed，同时按下时互相抵消；
// 无法识别的事件直接丢弃。
//
// 参数:
//   - events: 本帧事件列表
//
// 返回:
//   - bool: 是否收到 Quit
func (s *PaddleControlSystem) Apply(events []types.InputEvent) bool {
	quit := false
	left, right := false, false

	for _, ev := range events {
		switch ev {
		case types.InputMoveLeft:
			left = true
		case types.InputMoveRight:
			right = true
		case types.InputQuit:
			quit = true
		default:
			log.Printf("[PaddleControlSystem] 忽略未知输入事件: %d", int(ev))
		}
	}

	var dir float32
	if left {
		dir--
	}
	if right {
		dir++
	}

	paddles := ecs.GetEntitiesWith2[*components.PaddleComponent, *components.ObstacleComponent](s.entityManager)
	for _, id := range paddles {
		paddle, _ := ecs.GetComponent[*components.PaddleComponent](s.entityManager, id)
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		obstacle.Velocity = types.Vec2{X: dir * paddle.Speed, Y: 0}
	}

	return quit
}
