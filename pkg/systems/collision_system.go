package systems

import (
	"fmt"
	"log"

	"github.com/decker502/paddleball/pkg/components"
	"github.com/decker502/paddleball/pkg/ecs"
	"github.com/decker502/paddleball/pkg/types"
	"github.com/decker502/paddleball/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// CollisionInvariantError 碰撞解算遇到了几何上不应出现的状态
//
// 两种情况：扫掠得到的接触点不靠近矩形的任何一条边；
// 或者球体本帧之前就已经在障碍物内部。
// 出现时模拟无法保持物理一致（球会穿过挡板），属于致命错误，不重试。
type CollisionInvariantError struct {
	Reason       string
	Rect         types.Rect // 障碍物的预计矩形
	Position     types.Vec2 // 球体当前位置
	NextPosition types.Vec2 // 球体预计位置
	Contact      types.Vec2 // 裁剪得到的接触点（没有接触点时为当前位置）
}

func (e *CollisionInvariantError) Error() string {
	return fmt.Sprintf("collision invariant violated: %s (rect %v, position %v, proposed %v, contact %v)",
		e.Reason, e.Rect, e.Position, e.NextPosition, e.Contact)
}

// ClassifyContact 判断接触点位于矩形的哪些边上
//
// 每条边独立比较，容差为 epsilon；擦过角点时会同时命中两条边。
//
// 参数:
//   - r: 障碍物矩形
//   - p: 接触点
//   - epsilon: 容差（通常为 config.ContactEpsilon）
//
// 返回:
//   - types.Edge: 命中的边（位掩码），可能为 EdgeNone
func ClassifyContact(r types.Rect, p types.Vec2, epsilon float32) types.Edge {
	var edges types.Edge
	if abs32(p.X-r.Left()) < epsilon {
		edges |= types.EdgeLeft
	}
	if abs32(p.X-r.Right()) < epsilon {
		edges |= types.EdgeRight
	}
	if abs32(p.Y-r.Top()) < epsilon {
		edges |= types.EdgeTop
	}
	if abs32(p.Y-r.Bottom()) < epsilon {
		edges |= types.EdgeBottom
	}
	return edges
}

// ResolveSweptCollision 对单个球体与障碍物的预计矩形做扫掠碰撞解算
//
// 取线段 Position→NextPosition 首次进入矩形的点 first：
//   - 命中左/右边: Velocity.X 取反，NextPosition.X -= 2*(NextPosition.X - first.X)
//   - 命中上/下边: 对 Y 轴做同样的处理
//
// 越过接触点的距离被折回，球在同一帧内就落在矩形外侧。
// 没有接触时球体不变。
//
// 参数:
//   - body: 已执行 ProposeMove 的球体
//   - rect: 障碍物的预计矩形（NextRect）
//   - epsilon: 边判定容差
//
// 返回:
//   - types.Edge: 障碍物被撞击的边
//   - error: 接触点无法归类时返回 *CollisionInvariantError
func ResolveSweptCollision(body *components.BodyComponent, rect types.Rect, epsilon float32) (types.Edge, error) {
	first, ok := utils.FirstContact(rect, body.Position, body.NextPosition)
	if !ok {
		return types.EdgeNone, nil
	}
	return applyContact(body, rect, first, epsilon)
}

// applyContact 在已知接触点的情况下执行反射修正
func applyContact(body *components.BodyComponent, rect types.Rect, first types.Vec2, epsilon float32) (types.Edge, error) {
	edges := ClassifyContact(rect, first, epsilon)
	if edges == types.EdgeNone {
		return types.EdgeNone, &CollisionInvariantError{
			Reason:       "contact matches no edge",
			Rect:         rect,
			Position:     body.Position,
			NextPosition: body.NextPosition,
			Contact:      first,
		}
	}

	if edges.Horizontal() {
		body.Velocity.X = -body.Velocity.X
		body.NextPosition.X -= 2 * (body.NextPosition.X - first.X)
	}
	if edges.Vertical() {
		body.Velocity.Y = -body.Velocity.Y
		body.NextPosition.Y -= 2 * (body.NextPosition.Y - first.Y)
	}

	return edges, nil
}

// ResolveObstacleCollision 球体与一个移动障碍物的碰撞解算
//
// 球体起点在预计矩形外时就是普通的扫掠解算（ResolveSweptCollision）。
//
// 起点严格位于预计矩形内说明是障碍物本帧移动到了球上。此时换到障碍物的参照系：
// 起点加上障碍物本帧的实际位移（NextRect - Rect），再对预计矩形做扫掠，
// 得到球被推出的边。球的预计位置贴到这条边上，对应速度分量改为背离这条边，
// 已经背离的分量保持不变。
//
// 参数:
//   - body: 已执行 ProposeMove 的球体
//   - obstacle: 已执行 ProposeMove（以及截断）的障碍物
//   - epsilon: 边判定容差
//
// 返回:
//   - types.Edge: 障碍物被撞击（或推动球）的边
//   - error: 球在障碍物移动前就已在其内部，或接触点无法归类时返回 *CollisionInvariantError
func ResolveObstacleCollision(body *components.BodyComponent, obstacle *components.ObstacleComponent, epsilon float32) (types.Edge, error) {
	rect := obstacle.NextRect
	if !rect.ContainsStrict(body.Position) {
		return ResolveSweptCollision(body, rect, epsilon)
	}

	carry := rect.Origin().Sub(obstacle.Rect.Origin())
	first, ok := utils.FirstContact(rect, body.Position.Add(carry), body.NextPosition)
	if !ok {
		if !rect.ContainsStrict(body.NextPosition) {
			// 球本帧自己离开了矩形
			return types.EdgeNone, nil
		}
		return types.EdgeNone, &CollisionInvariantError{
			Reason:       "body inside obstacle",
			Rect:         rect,
			Position:     body.Position,
			NextPosition: body.NextPosition,
			Contact:      body.Position,
		}
	}

	edges := ClassifyContact(rect, first, epsilon)
	if edges == types.EdgeNone {
		return types.EdgeNone, &CollisionInvariantError{
			Reason:       "pushed contact matches no edge",
			Rect:         rect,
			Position:     body.Position,
			NextPosition: body.NextPosition,
			Contact:      first,
		}
	}

	// 坐标直接取边的值，保证下一帧起点不在矩形内部
	if edges.Has(types.EdgeLeft) {
		body.Velocity.X = -abs32(body.Velocity.X)
		body.NextPosition.X = rect.Left()
	}
	if edges.Has(types.EdgeRight) {
		body.Velocity.X = abs32(body.Velocity.X)
		body.NextPosition.X = rect.Right()
	}
	if edges.Has(types.EdgeTop) {
		body.Velocity.Y = -abs32(body.Velocity.Y)
		body.NextPosition.Y = rect.Top()
	}
	if edges.Has(types.EdgeBottom) {
		body.Velocity.Y = abs32(body.Velocity.Y)
		body.NextPosition.Y = rect.Bottom()
	}

	return edges, nil
}

// CollisionSystem 每帧把所有球体与所有障碍物的预计矩形做扫掠碰撞
//
// 必须在 MotionSystem.Propose 之后、Commit 之前运行。
// 每个球体的解算只读障碍物，球体之间相互独立，因此 workers > 1 时可以并行。
type CollisionSystem struct {
	entityManager *ecs.EntityManager
	epsilon       float32
	workers       int
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - em: 实体管理器
//   - epsilon: 边判定容差
//   - workers: 并行协程数，<= 1 表示串行
func NewCollisionSystem(em *ecs.EntityManager, epsilon float32, workers int) *CollisionSystem {
	return &CollisionSystem{
		entityManager: em,
		epsilon:       epsilon,
		workers:       workers,
	}
}

type obstacleRef struct {
	id       ecs.EntityID
	obstacle *components.ObstacleComponent
}

// Update 解算本帧的所有碰撞，并刷新 ContactComponent
//
// 返回:
//   - int: 本帧撞到障碍物的球体数量
//   - error: 出现不可归类的接触点时返回 *CollisionInvariantError
func (s *CollisionSystem) Update() (int, error) {
	// 清除上一帧的碰撞高亮
	for _, id := range ecs.GetEntitiesWith1[*components.ContactComponent](s.entityManager) {
		contact, _ := ecs.GetComponent[*components.ContactComponent](s.entityManager, id)
		contact.Reset()
	}

	obstacleIDs := ecs.GetEntitiesWith1[*components.ObstacleComponent](s.entityManager)
	if len(obstacleIDs) == 0 {
		return 0, nil
	}
	obstacles := make([]obstacleRef, 0, len(obstacleIDs))
	for _, id := range obstacleIDs {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		obstacles = append(obstacles, obstacleRef{id: id, obstacle: obstacle})
	}

	bodyIDs := ecs.GetEntitiesWith1[*components.BodyComponent](s.entityManager)
	bodies := make([]*components.BodyComponent, len(bodyIDs))
	for i, id := range bodyIDs {
		bodies[i], _ = ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
	}

	// hits[i][j]: 球体 i 撞到障碍物 j 的哪些边
	hits := make([][]types.Edge, len(bodies))
	resolve := func(i int) error {
		hits[i] = make([]types.Edge, len(obstacles))
		for j, ref := range obstacles {
			edges, err := ResolveObstacleCollision(bodies[i], ref.obstacle, s.epsilon)
			if err != nil {
				return fmt.Errorf("body %d vs obstacle %d: %w", bodyIDs[i], ref.id, err)
			}
			hits[i][j] = edges
		}
		return nil
	}

	if s.workers > 1 {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for i := range bodies {
			g.Go(func() error { return resolve(i) })
		}
		if err := g.Wait(); err != nil {
			log.Printf("[CollisionSystem] invariant violation: %v", err)
			return 0, err
		}
	} else {
		for i := range bodies {
			if err := resolve(i); err != nil {
				log.Printf("[CollisionSystem] invariant violation: %v", err)
				return 0, err
			}
		}
	}

	// 汇总碰撞高亮（串行，避免多个球同时写障碍物的组件）
	hitCount := 0
	for i, id := range bodyIDs {
		var bodyEdges types.Edge
		for j, ref := range obstacles {
			edges := hits[i][j]
			if edges == types.EdgeNone {
				continue
			}
			bodyEdges |= edges.Opposite()
			if contact, ok := ecs.GetComponent[*components.ContactComponent](s.entityManager, ref.id); ok {
				contact.Edges |= edges
			}
		}
		if bodyEdges == types.EdgeNone {
			continue
		}
		hitCount++
		if contact, ok := ecs.GetComponent[*components.ContactComponent](s.entityManager, id); ok {
			contact.Edges |= bodyEdges
		}
	}

	return hitCount, nil
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
