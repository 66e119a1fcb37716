package systems

import (
	"errors"
	"strings"
	"testing"

	"github.com/decker502/paddleball/pkg/components"
	"github.com/decker502/paddleball/pkg/config"
	"github.com/decker502/paddleball/pkg/ecs"
	"github.com/decker502/paddleball/pkg/types"
)

var testPaddleRect = types.Rect{X: 0, Y: 500, Width: 100, Height: 10}

func proposedBody(pos, vel types.Vec2) *components.BodyComponent {
	b := &components.BodyComponent{Position: pos, NextPosition: pos, Radius: 10, Velocity: vel}
	b.ProposeMove()
	return b
}

// TestResolveSweptCollision_TopEdge 球从上方撞到挡板上边
func TestResolveSweptCollision_TopEdge(t *testing.T) {
	body := proposedBody(types.Vec2{X: 50, Y: 495}, types.Vec2{X: 0, Y: 8})

	edges, err := ResolveSweptCollision(body, testPaddleRect, config.ContactEpsilon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edges != types.EdgeTop {
		t.Errorf("expected top edge, got %v", edges)
	}
	if body.Velocity.Y != -8 || body.Velocity.X != 0 {
		t.Errorf("expected velocity (0, -8), got %v", body.Velocity)
	}
	if body.NextPosition.Y != 497 || body.NextPosition.X != 50 {
		t.Errorf("expected corrected position (50, 497), got %v", body.NextPosition)
	}
	// 修正后的位置在挡板外侧
	if body.NextPosition.Y >= testPaddleRect.Top() {
		t.Errorf("corrected position %v penetrates the paddle", body.NextPosition)
	}
}

// TestResolveSweptCollision_ReflectionSymmetry 速度只取反，不缩放
func TestResolveSweptCollision_ReflectionSymmetry(t *testing.T) {
	tests := []struct {
		name string
		pos  types.Vec2
		vel  types.Vec2
	}{
		{"垂直下落", types.Vec2{X: 30, Y: 490}, types.Vec2{X: 0, Y: 15}},
		{"斜向下落", types.Vec2{X: 30, Y: 494}, types.Vec2{X: 3, Y: 7}},
		{"向左斜落", types.Vec2{X: 80, Y: 499}, types.Vec2{X: -2.5, Y: 4.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := proposedBody(tt.pos, tt.vel)
			edges, err := ResolveSweptCollision(body, testPaddleRect, config.ContactEpsilon)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !edges.Has(types.EdgeTop) {
				t.Fatalf("expected top edge hit, got %v", edges)
			}
			if body.Velocity.Y != -tt.vel.Y {
				t.Errorf("velocity.y = %f, want %f", body.Velocity.Y, -tt.vel.Y)
			}
			if body.Velocity.X != tt.vel.X {
				t.Errorf("velocity.x changed: %f -> %f", tt.vel.X, body.Velocity.X)
			}
			if body.NextPosition.Y > testPaddleRect.Top() {
				t.Errorf("corrected y %f below paddle top %f", body.NextPosition.Y, testPaddleRect.Top())
			}
		})
	}
}

// TestResolveSweptCollision_Corner 恰好经过角点时两个分量都取反
func TestResolveSweptCollision_Corner(t *testing.T) {
	body := proposedBody(types.Vec2{X: -4, Y: 496}, types.Vec2{X: 8, Y: 8})

	edges, err := ResolveSweptCollision(body, testPaddleRect, config.ContactEpsilon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edges != types.EdgeLeft|types.EdgeTop {
		t.Errorf("expected left|top, got %v", edges)
	}
	if body.Velocity != (types.Vec2{X: -8, Y: -8}) {
		t.Errorf("expected both components flipped, got %v", body.Velocity)
	}
	if body.NextPosition != (types.Vec2{X: -4, Y: 496}) {
		t.Errorf("expected position folded back to (-4, 496), got %v", body.NextPosition)
	}
}

// TestResolveSweptCollision_SideEdges 左右边只影响 X 轴
func TestResolveSweptCollision_SideEdges(t *testing.T) {
	tests := []struct {
		name     string
		pos, vel types.Vec2
		want     types.Edge
		wantNext types.Vec2
	}{
		{
			name:     "从左侧撞入",
			pos:      types.Vec2{X: -3, Y: 505},
			vel:      types.Vec2{X: 5, Y: 0},
			want:     types.EdgeLeft,
			wantNext: types.Vec2{X: -2, Y: 505},
		},
		{
			name:     "从右侧撞入",
			pos:      types.Vec2{X: 104, Y: 505},
			vel:      types.Vec2{X: -6, Y: 0},
			want:     types.EdgeRight,
			wantNext: types.Vec2{X: 102, Y: 505},
		},
		{
			name:     "从下方撞到下边",
			pos:      types.Vec2{X: 50, Y: 515},
			vel:      types.Vec2{X: 0, Y: -10},
			want:     types.EdgeBottom,
			wantNext: types.Vec2{X: 50, Y: 515},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := proposedBody(tt.pos, tt.vel)
			edges, err := ResolveSweptCollision(body, testPaddleRect, config.ContactEpsilon)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if edges != tt.want {
				t.Errorf("edges = %v, want %v", edges, tt.want)
			}
			if !approxVec(body.NextPosition, tt.wantNext) {
				t.Errorf("next = %v, want %v", body.NextPosition, tt.wantNext)
			}
			if body.Velocity != tt.vel.Scale(-1) {
				t.Errorf("velocity = %v, want %v", body.Velocity, tt.vel.Scale(-1))
			}
		})
	}
}

// TestResolveSweptCollision_NoIntersection 线段没有进入矩形时球体不变
func TestResolveSweptCollision_NoIntersection(t *testing.T) {
	tests := []struct {
		name     string
		pos, vel types.Vec2
	}{
		{"上方平移", types.Vec2{X: 50, Y: 480}, types.Vec2{X: 5, Y: 0}},
		{"向上远离", types.Vec2{X: 50, Y: 495}, types.Vec2{X: 0, Y: -8}},
		{"从右侧经过", types.Vec2{X: 150, Y: 495}, types.Vec2{X: 0, Y: 20}},
		{"停在边上方", types.Vec2{X: 50, Y: 492}, types.Vec2{X: 0, Y: 7.5}},
		{"起点在内部", types.Vec2{X: 50, Y: 505}, types.Vec2{X: 0, Y: -8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := proposedBody(tt.pos, tt.vel)
			before := *body

			edges, err := ResolveSweptCollision(body, testPaddleRect, config.ContactEpsilon)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if edges != types.EdgeNone {
				t.Errorf("expected no contact, got %v", edges)
			}
			if *body != before {
				t.Errorf("body changed without contact: %+v -> %+v", before, *body)
			}
		})
	}
}

// TestResolveSweptCollision_NoTunneling 单帧位移远大于挡板厚度时也不会穿透
func TestResolveSweptCollision_NoTunneling(t *testing.T) {
	body := proposedBody(types.Vec2{X: 50, Y: 490}, types.Vec2{X: 0, Y: 40})

	edges, err := ResolveSweptCollision(body, testPaddleRect, config.ContactEpsilon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edges != types.EdgeTop {
		t.Errorf("expected top edge, got %v", edges)
	}
	if body.NextPosition.Y != 470 {
		t.Errorf("expected folded position y=470, got %f", body.NextPosition.Y)
	}
}

// TestApplyContact_Degenerate 接触点不在任何边附近时返回致命错误
func TestApplyContact_Degenerate(t *testing.T) {
	body := proposedBody(types.Vec2{X: 50, Y: 495}, types.Vec2{X: 0, Y: 8})
	before := *body

	_, err := applyContact(body, testPaddleRect, types.Vec2{X: 50, Y: 505}, config.ContactEpsilon)
	if err == nil {
		t.Fatal("expected invariant error")
	}

	var invErr *CollisionInvariantError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected *CollisionInvariantError, got %T", err)
	}
	if invErr.Rect != testPaddleRect || invErr.Position != before.Position || invErr.NextPosition != before.NextPosition {
		t.Errorf("diagnostic payload mismatch: %+v", invErr)
	}
	for _, want := range []string{"rect", "position", "proposed"} {
		if !strings.Contains(invErr.Error(), want) {
			t.Errorf("error message %q should mention %q", invErr.Error(), want)
		}
	}
	if *body != before {
		t.Error("body should be untouched on invariant violation")
	}
}

func approxVec(a, b types.Vec2) bool {
	return abs32(a.X-b.X) < 1e-4 && abs32(a.Y-b.Y) < 1e-4
}

func TestClassifyContact(t *testing.T) {
	tests := []struct {
		name string
		p    types.Vec2
		want types.Edge
	}{
		{"top", types.Vec2{X: 50, Y: 500.4}, types.EdgeTop},
		{"bottom", types.Vec2{X: 50, Y: 509.5}, types.EdgeBottom},
		{"left", types.Vec2{X: 0.2, Y: 505}, types.EdgeLeft},
		{"right", types.Vec2{X: 99.9, Y: 505}, types.EdgeRight},
		{"corner", types.Vec2{X: 100, Y: 510}, types.EdgeRight | types.EdgeBottom},
		{"interior", types.Vec2{X: 50, Y: 505}, types.EdgeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyContact(testPaddleRect, tt.p, config.ContactEpsilon); got != tt.want {
				t.Errorf("ClassifyContact(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func newCollisionWorld(t *testing.T) (*ecs.EntityManager, ecs.EntityID) {
	t.Helper()
	em := ecs.NewEntityManager()
	paddle := em.CreateEntity()
	em.AddComponent(paddle, &components.ObstacleComponent{Rect: testPaddleRect, NextRect: testPaddleRect})
	em.AddComponent(paddle, &components.ContactComponent{})
	return em, paddle
}

func addTestBall(em *ecs.EntityManager, pos, vel types.Vec2) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, proposedBody(pos, vel))
	em.AddComponent(id, &components.ContactComponent{})
	return id
}

func TestCollisionSystemUpdate(t *testing.T) {
	for _, workers := range []int{1, 4} {
		em, paddle := newCollisionWorld(t)
		hitTop := addTestBall(em, types.Vec2{X: 50, Y: 495}, types.Vec2{X: 0, Y: 8})
		hitLeft := addTestBall(em, types.Vec2{X: -3, Y: 505}, types.Vec2{X: 5, Y: 0})
		miss := addTestBall(em, types.Vec2{X: 300, Y: 100}, types.Vec2{X: 1, Y: 1})

		// 上一帧遗留的高亮应被清除
		stale, _ := ecs.GetComponent[*components.ContactComponent](em, miss)
		stale.Edges = types.EdgeTop

		cs := NewCollisionSystem(em, config.ContactEpsilon, workers)
		hits, err := cs.Update()
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if hits != 2 {
			t.Errorf("workers=%d: expected 2 hits, got %d", workers, hits)
		}

		check := func(id ecs.EntityID, want types.Edge) {
			t.Helper()
			contact, _ := ecs.GetComponent[*components.ContactComponent](em, id)
			if contact.Edges != want {
				t.Errorf("workers=%d: entity %d contact = %v, want %v", workers, id, contact.Edges, want)
			}
		}
		check(hitTop, types.EdgeBottom)
		check(hitLeft, types.EdgeRight)
		check(miss, types.EdgeNone)
		check(paddle, types.EdgeTop|types.EdgeLeft)

		body, _ := ecs.GetComponent[*components.BodyComponent](em, hitTop)
		if body.NextPosition.Y != 497 || body.Velocity.Y != -8 {
			t.Errorf("workers=%d: unexpected resolved body %+v", workers, body)
		}
	}
}

func TestCollisionSystemWithoutObstacle(t *testing.T) {
	em := ecs.NewEntityManager()
	addTestBall(em, types.Vec2{X: 50, Y: 495}, types.Vec2{X: 0, Y: 8})

	hits, err := NewCollisionSystem(em, config.ContactEpsilon, 1).Update()
	if err != nil || hits != 0 {
		t.Errorf("expected no hits and no error, got %d, %v", hits, err)
	}
}

func movingObstacle(rect, next types.Rect) *components.ObstacleComponent {
	return &components.ObstacleComponent{Rect: rect, NextRect: next, Velocity: next.Origin().Sub(rect.Origin())}
}

// TestResolveObstacleCollision_UsesProposedRect 碰撞检测使用挡板本帧的预计矩形，而不是已结算矩形
func TestResolveObstacleCollision_UsesProposedRect(t *testing.T) {
	tests := []struct {
		name      string
		next      types.Rect
		pos       types.Vec2
		wantEdges types.Edge
		wantVel   types.Vec2
		wantNext  types.Vec2
	}{
		{
			name:      "只有挡板移动后的位置会被撞到",
			next:      types.Rect{X: 50, Y: 500, Width: 100, Height: 10},
			pos:       types.Vec2{X: 120, Y: 495},
			wantEdges: types.EdgeTop,
			wantVel:   types.Vec2{X: 0, Y: -8},
			wantNext:  types.Vec2{X: 120, Y: 497},
		},
		{
			name:      "挡板移开后原位置不再阻挡",
			next:      types.Rect{X: -50, Y: 500, Width: 100, Height: 10},
			pos:       types.Vec2{X: 80, Y: 495},
			wantEdges: types.EdgeNone,
			wantVel:   types.Vec2{X: 0, Y: 8},
			wantNext:  types.Vec2{X: 80, Y: 503},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obstacle := movingObstacle(testPaddleRect, tt.next)
			body := proposedBody(tt.pos, types.Vec2{X: 0, Y: 8})

			edges, err := ResolveObstacleCollision(body, obstacle, config.ContactEpsilon)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if edges != tt.wantEdges {
				t.Errorf("edges = %v, want %v", edges, tt.wantEdges)
			}
			if body.Velocity != tt.wantVel {
				t.Errorf("velocity = %v, want %v", body.Velocity, tt.wantVel)
			}
			if body.NextPosition != tt.wantNext {
				t.Errorf("next = %v, want %v", body.NextPosition, tt.wantNext)
			}
		})
	}
}

// TestResolveObstacleCollision_PaddleMovesOntoBall 挡板移动到球上时把球推出去，球不会留在挡板内部
func TestResolveObstacleCollision_PaddleMovesOntoBall(t *testing.T) {
	obstacle := &components.ObstacleComponent{Rect: testPaddleRect, NextRect: testPaddleRect, Velocity: types.Vec2{X: 10, Y: 0}}
	body := &components.BodyComponent{Position: types.Vec2{X: 105, Y: 505}, Radius: 10, Velocity: types.Vec2{X: -1, Y: 0}}
	body.NextPosition = body.Position

	for tick := 1; tick <= 5; tick++ {
		obstacle.ProposeMove()
		body.ProposeMove()

		edges, err := ResolveObstacleCollision(body, obstacle, config.ContactEpsilon)
		if err != nil {
			t.Fatalf("tick %d: unexpected error: %v", tick, err)
		}
		if edges != types.EdgeRight {
			t.Errorf("tick %d: edges = %v, want right", tick, edges)
		}

		body.CommitMove()
		obstacle.CommitMove()

		if obstacle.Rect.ContainsStrict(body.Position) {
			t.Fatalf("tick %d: ball %v inside paddle %v", tick, body.Position, obstacle.Rect)
		}
		if body.Position.X != obstacle.Rect.Right() || body.Position.Y != 505 {
			t.Errorf("tick %d: ball at %v, want on paddle right edge x=%f", tick, body.Position, obstacle.Rect.Right())
		}
		if body.Velocity != (types.Vec2{X: 1, Y: 0}) {
			t.Errorf("tick %d: velocity = %v, want (1, 0)", tick, body.Velocity)
		}
	}
}

// TestResolveObstacleCollision_BallLeavesOnItsOwn 球起点在预计矩形内，但本帧自己跑出了矩形
func TestResolveObstacleCollision_BallLeavesOnItsOwn(t *testing.T) {
	obstacle := movingObstacle(testPaddleRect, types.Rect{X: 10, Y: 500, Width: 100, Height: 10})
	body := proposedBody(types.Vec2{X: 105, Y: 505}, types.Vec2{X: 20, Y: 0})
	before := *body

	edges, err := ResolveObstacleCollision(body, obstacle, config.ContactEpsilon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edges != types.EdgeNone || *body != before {
		t.Errorf("ball outrunning the paddle should be untouched, edges=%v body=%+v", edges, *body)
	}
}

// TestResolveObstacleCollision_BodyAlreadyInside 球在挡板移动之前就已在其内部时返回致命错误
func TestResolveObstacleCollision_BodyAlreadyInside(t *testing.T) {
	tests := []struct {
		name string
		next types.Rect
	}{
		{"挡板静止", testPaddleRect},
		{"挡板移动", types.Rect{X: 10, Y: 500, Width: 100, Height: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obstacle := movingObstacle(testPaddleRect, tt.next)
			body := proposedBody(types.Vec2{X: 50, Y: 505}, types.Vec2{X: 1, Y: 0})
			before := *body

			_, err := ResolveObstacleCollision(body, obstacle, config.ContactEpsilon)
			var invErr *CollisionInvariantError
			if !errors.As(err, &invErr) {
				t.Fatalf("expected *CollisionInvariantError, got %v", err)
			}
			if invErr.Rect != tt.next || invErr.Position != before.Position || invErr.NextPosition != before.NextPosition {
				t.Errorf("diagnostic payload mismatch: %+v", invErr)
			}
			if !strings.Contains(invErr.Error(), "inside") {
				t.Errorf("error message %q should say the body is inside", invErr.Error())
			}
			if *body != before {
				t.Error("body should be untouched on invariant violation")
			}
		})
	}
}
