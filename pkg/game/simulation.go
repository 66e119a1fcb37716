package game

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/decker502/paddleball/pkg/components"
	"github.com/decker502/paddleball/pkg/config"
	"github.com/decker502/paddleball/pkg/ecs"
	"github.com/decker502/paddleball/pkg/entities"
	"github.com/decker502/paddleball/pkg/systems"
	"github.com/decker502/paddleball/pkg/types"
)

// Simulation 单步模拟控制器
//
// 每次外部 tick 调用一次 Update，帧内顺序固定：
//
//  1. 输入 → 挡板速度
//  2. 场地边界检查（基于已结算位置）
//  3. 预计移动：先挡板，再球体
//  4. 扫掠碰撞解算（基于挡板的预计矩形）
//  5. 提交移动
//
// 打乱这个顺序会导致穿透。整个 tick 在调用方的单个 goroutine 内完成。
type Simulation struct {
	cfg           config.SimulationConfig
	entityManager *ecs.EntityManager
	paddleID      ecs.EntityID

	paddleControl *systems.PaddleControlSystem
	containment   *systems.ArenaContainmentSystem
	motion        *systems.MotionSystem
	collision     *systems.CollisionSystem

	state SimulationState
}

// NewSimulation 按配置创建模拟，随机生成球体
//
// 参数:
//   - cfg: 不可变配置（按值复制，之后的修改不影响模拟）
//
// 返回:
//   - *Simulation: 处于 Running 阶段的模拟
//   - error: 配置无效或实体创建失败时返回错误
func NewSimulation(cfg config.SimulationConfig) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	em := ecs.NewEntityManager()
	paddleID, err := entities.NewPaddleEntity(em, cfg.Paddle)
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle: %w", err)
	}

	seed := cfg.Balls.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	ballIDs, err := entities.SpawnBalls(em, cfg.Balls, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn balls: %w", err)
	}

	log.Printf("[Simulation] 创建模拟: 场地 %.0fx%.0f, %d 个球, 策略 %s, 种子 %d",
		cfg.Arena.Width, cfg.Arena.Height, len(ballIDs), cfg.BoundaryPolicy, seed)

	return &Simulation{
		cfg:           cfg,
		entityManager: em,
		paddleID:      paddleID,
		paddleControl: systems.NewPaddleControlSystem(em),
		containment:   systems.NewArenaContainmentSystem(em, cfg.Arena, cfg.BoundaryPolicy),
		motion:        systems.NewMotionSystem(em, cfg.Arena.Width, cfg.Paddle.ClampToArena),
		collision:     systems.NewCollisionSystem(em, cfg.ContactEpsilon, cfg.Collision.Workers),
		state:         SimulationState{Phase: PhaseRunning},
	}, nil
}

// AddBall 在第一帧之前加入一个指定位置和速度的球
// 用于测试和脚本化场景；模拟开始后球的数量固定
func (s *Simulation) AddBall(position, velocity types.Vec2) (ecs.EntityID, error) {
	if s.state.Tick > 0 || !s.state.IsRunning() {
		return 0, fmt.Errorf("cannot add balls after the simulation has started")
	}
	return entities.NewBallEntity(s.entityManager, position, velocity, s.cfg.Balls.Radius)
}

// Update 推进一帧
//
// 参数:
//   - events: 本帧的输入事件
//
// 返回:
//   - error: 碰撞不变量被破坏时返回 *systems.CollisionInvariantError，
//     此时模拟已进入 Terminated；调用方应当终止进程。
//     正常结束（Quit 或丢球）不是错误，通过 State() 查询。
func (s *Simulation) Update(events []types.InputEvent) error {
	if !s.state.IsRunning() {
		return nil
	}

	// 1. 输入
	if quit := s.paddleControl.Apply(events); quit {
		s.terminate(ReasonQuit)
		return nil
	}

	// 2. 场地边界
	if id, lost := s.containment.Update(); lost {
		log.Printf("[Simulation] 球 %d 丢失", id)
		s.terminate(ReasonBallLost)
		return nil
	}

	// 3. 预计移动（挡板在前）
	s.motion.Propose()

	// 4. 碰撞解算
	hits, err := s.collision.Update()
	if err != nil {
		s.terminate(ReasonInvariant)
		return err
	}

	// 5. 提交
	s.motion.Commit()

	s.state.Tick++
	s.state.LastHits = hits
	s.state.TotalHits += uint64(hits)
	return nil
}

func (s *Simulation) terminate(reason TerminationReason) {
	if s.state.terminate(reason) {
		log.Printf("[Simulation] 模拟结束: %s (tick %d)", reason, s.state.Tick)
	}
}

// Shapes 返回当前帧的可绘制形状
// 球在前（按实体顺序），挡板在最后
func (s *Simulation) Shapes() []types.Shape {
	ballIDs := ecs.GetEntitiesWith1[*components.BodyComponent](s.entityManager)
	shapes := make([]types.Shape, 0, len(ballIDs)+1)

	for _, id := range ballIDs {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		shapes = append(shapes, types.Shape{
			Kind:    types.ShapeBall,
			Rect:    body.Bounds(),
			Contact: s.contactOf(id),
		})
	}

	if obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, s.paddleID); ok {
		shapes = append(shapes, types.Shape{
			Kind:    types.ShapePaddle,
			Rect:    obstacle.Rect,
			Contact: s.contactOf(s.paddleID),
		})
	}

	return shapes
}

func (s *Simulation) contactOf(id ecs.EntityID) types.Edge {
	if contact, ok := ecs.GetComponent[*components.ContactComponent](s.entityManager, id); ok {
		return contact.Edges
	}
	return types.EdgeNone
}

// State 返回当前状态的副本
func (s *Simulation) State() SimulationState {
	return s.state
}

// Config 返回模拟使用的配置
func (s *Simulation) Config() config.SimulationConfig {
	return s.cfg
}

// Bodies 返回所有球体状态的副本，按实体顺序
func (s *Simulation) Bodies() []components.BodyComponent {
	ids := ecs.GetEntitiesWith1[*components.BodyComponent](s.entityManager)
	out := make([]components.BodyComponent, 0, len(ids))
	for _, id := range ids {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		out = append(out, *body)
	}
	return out
}

// Paddle 返回挡板状态的副本
func (s *Simulation) Paddle() components.ObstacleComponent {
	obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, s.paddleID)
	return *obstacle
}
