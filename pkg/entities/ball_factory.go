package entities

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/decker502/paddleball/pkg/components"
	"github.com/decker502/paddleball/pkg/config"
	"github.com/decker502/paddleball/pkg/ecs"
	"github.com/decker502/paddleball/pkg/types"
)

// NewBallEntity 创建球实体
//
// 参数:
//   - em: 实体管理器
//   - position: 初始中心点
//   - velocity: 初始每帧位移
//   - radius: 包围正方形半宽
//
// 返回:
//   - ecs.EntityID: 创建的球实体ID
//   - error: 参数无效时返回错误
func NewBallEntity(em *ecs.EntityManager, position, velocity types.Vec2, radius float32) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if radius <= 0 {
		return 0, fmt.Errorf("invalid ball radius %.2f, must be positive", radius)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.BodyComponent{
		Position:     position,
		NextPosition: position,
		Radius:       radius,
		Velocity:     velocity,
	})
	em.AddComponent(entityID, &components.ContactComponent{})

	return entityID, nil
}

// SpawnBalls 按配置随机生成所有球
//
// 每个球的位置在 spawnX × spawnY 内均匀分布，方向为 [0, 2π) 内的均匀随机角度，
// 速率在 speed 区间内均匀分布；速度 = 方向 × 速率。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 球体配置
//   - rng: 随机数源（由调用方按种子创建，便于复现）
//
// 返回:
//   - []ecs.EntityID: 创建的球实体ID，按创建顺序
//   - error: 创建失败时返回错误
func SpawnBalls(em *ecs.EntityManager, cfg config.BallsConfig, rng *rand.Rand) ([]ecs.EntityID, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	ids := make([]ecs.EntityID, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		position := types.Vec2{
			X: randRange(rng, cfg.SpawnX),
			Y: randRange(rng, cfg.SpawnY),
		}
		speed := randRange(rng, cfg.Speed)
		angle := rng.Float64() * 2 * math.Pi
		sin, cos := math.Sincos(angle)
		velocity := types.Vec2{X: float32(sin) * speed, Y: float32(cos) * speed}

		id, err := NewBallEntity(em, position, velocity, cfg.Radius)
		if err != nil {
			return nil, fmt.Errorf("failed to spawn ball %d: %w", i, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// randRange 在 [r.Min, r.Max] 内均匀取值
func randRange(rng *rand.Rand, r config.FloatRange) float32 {
	return r.Min + rng.Float32()*(r.Max-r.Min)
}
