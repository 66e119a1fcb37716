package systems

import (
	"github.com/decker502/paddleball/pkg/components"
	"github.com/decker502/paddleball/pkg/ecs"
)

// MotionSystem 负责每帧的"预计移动"和"提交移动"两个阶段
//
// 顺序约束：
//
//	Propose: 先障碍物，再球体（碰撞检测读取障碍物的 NextRect）
//	Commit:  所有碰撞修正完成之后，每帧恰好一次
type MotionSystem struct {
	entityManager *ecs.EntityManager
	arenaWidth    float32
	clampObstacle bool
}

// NewMotionSystem 创建移动系统
//
// 参数:
//   - em: 实体管理器
//   - arenaWidth: 场地宽度，用于限制挡板
//   - clampObstacle: 是否把障碍物的预计矩形限制在 [0, arenaWidth] 内
func NewMotionSystem(em *ecs.EntityManager, arenaWidth float32, clampObstacle bool) *MotionSystem {
	return &MotionSystem{
		entityManager: em,
		arenaWidth:    arenaWidth,
		clampObstacle: clampObstacle,
	}
}

// Propose 计算所有障碍物和球体的预计位置
func (s *MotionSystem) Propose() {
	for _, id := range ecs.GetEntitiesWith1[*components.ObstacleComponent](s.entityManager) {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		obstacle.ProposeMove()
		if s.clampObstacle {
			obstacle.NextRect.X = clampRange(obstacle.NextRect.X, 0, s.arenaWidth-obstacle.NextRect.Width)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.BodyComponent](s.entityManager) {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		body.ProposeMove()
	}
}

// Commit 把所有预计位置写回已结算位置
func (s *MotionSystem) Commit() {
	for _, id := range ecs.GetEntitiesWith1[*components.BodyComponent](s.entityManager) {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		body.CommitMove()
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ObstacleComponent](s.entityManager) {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		obstacle.CommitMove()
	}
}

// clampRange 把 v 限制在 [lo, hi]，hi < lo 时返回 lo
func clampRange(v, lo, hi float32) float32 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
