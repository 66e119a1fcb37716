package systems

import (
	"log"

	"github.com/decker502/paddleball/pkg/components"
	"github.com/decker502/paddleball/pkg/config"
	"github.com/decker502/paddleball/pkg/ecs"
)

// ArenaContainmentSystem 把球体限制在场地内
//
// 检查的是球体已结算的 Position（不是预计位置），必须在 ProposeMove 之前运行。
// 这是一个廉价的预检查，不做扫掠：球在场地边缘允许有一帧的越界。
type ArenaContainmentSystem struct {
	entityManager *ecs.EntityManager
	arena         config.ArenaConfig
	policy        config.BoundaryPolicy
}

// NewArenaContainmentSystem 创建场地边界系统
//
// 参数:
//   - em: 实体管理器
//   - arena: 场地尺寸
//   - policy: 边界策略（reflect 或 lose-bottom），由调用方显式选择
func NewArenaContainmentSystem(em *ecs.EntityManager, arena config.ArenaConfig, policy config.BoundaryPolicy) *ArenaContainmentSystem {
	return &ArenaContainmentSystem{
		entityManager: em,
		arena:         arena,
		policy:        policy,
	}
}

// Update 对越界的球体反射速度
//
// 每个轴独立处理：位于 [0, width] 之外且仍在向外运动时，该轴速度取反。
// 已经在往回走的球不再翻转，避免在边界外来回抖动。
//
// 返回:
//   - ecs.EntityID: lose-bottom 策略下越过下边的球（否则为 0）
//   - bool: 是否有球丢失
func (s *ArenaContainmentSystem) Update() (ecs.EntityID, bool) {
	entities := ecs.GetEntitiesWith1[*components.BodyComponent](s.entityManager)

	for _, id := range entities {
		body, ok := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if s.policy == config.PolicyLoseBottom && body.Position.Y > s.arena.Height {
			log.Printf("[ArenaContainmentSystem] 球 %d 越过下边界 (y=%.2f > %.2f)", id, body.Position.Y, s.arena.Height)
			return id, true
		}

		body.Velocity.X = reflectOutward(body.Position.X, body.Velocity.X, s.arena.Width)
		body.Velocity.Y = reflectOutward(body.Position.Y, body.Velocity.Y, s.arena.Height)
	}

	return 0, false
}

// reflectOutward 单轴边界反射
// pos 位于 [0, limit] 之外并且 vel 指向外侧时返回 -vel。
// 界外但 vel 已经指向界内时不翻转，这比“界外即翻转”的规则更窄。
func reflectOutward(pos, vel, limit float32) float32 {
	if (pos < 0 && vel < 0) || (pos > limit && vel > 0) {
		return -vel
	}
	return vel
}
