package entities

import (
	"fmt"

	"github.com/decker502/paddleball/pkg/components"
	"github.com/decker502/paddleball/pkg/config"
	"github.com/decker502/paddleball/pkg/ecs"
	"github.com/decker502/paddleball/pkg/types"
)

// NewPaddleEntity 创建挡板实体
// 挡板在固定的起始位置创建，初始速度为零
//
// 参数:
//   - em: 实体管理器
//   - cfg: 挡板配置（位置、尺寸、速度）
//
// 返回:
//   - ecs.EntityID: 创建的挡板实体ID
//   - error: 如果创建失败返回错误信息
func NewPaddleEntity(em *ecs.EntityManager, cfg config.PaddleConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, fmt.Errorf("invalid paddle size %.1fx%.1f", cfg.Width, cfg.Height)
	}

	rect := types.Rect{X: cfg.X, Y: cfg.Y, Width: cfg.Width, Height: cfg.Height}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.ObstacleComponent{
		Rect:     rect,
		NextRect: rect,
	})
	em.AddComponent(entityID, &components.PaddleComponent{Speed: cfg.Speed})
	em.AddComponent(entityID, &components.ContactComponent{})

	return entityID, nil
}
