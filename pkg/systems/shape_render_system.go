package systems

import (
	"image/color"

	"github.com/decker502/paddleball/pkg/config"
	"github.com/decker502/paddleball/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// contactLineWidth 接触边高亮线宽
const contactLineWidth = float32(1.0)

// ShapeRenderSystem 把模拟输出的矩形绘制到屏幕
//
// 球和挡板都画成实心矩形，本帧发生接触的边额外用 Contact 颜色描一条线。
type ShapeRenderSystem struct {
	background color.Color
	ball       color.Color
	paddle     color.Color
	contact    color.Color
}

// NewShapeRenderSystem 创建形状渲染系统
func NewShapeRenderSystem(colors config.ColorsConfig) *ShapeRenderSystem {
	return &ShapeRenderSystem{
		background: colors.Background,
		ball:       colors.Ball,
		paddle:     colors.Paddle,
		contact:    colors.Contact,
	}
}

// Draw 清屏并绘制所有形状
func (s *ShapeRenderSystem) Draw(screen *ebiten.Image, shapes []types.Shape) {
	screen.Fill(s.background)

	for _, shape := range shapes {
		fill := s.ball
		if shape.Kind == types.ShapePaddle {
			fill = s.paddle
		}

		r := shape.Rect
		vector.FillRect(screen, r.X, r.Y, r.Width, r.Height, fill, false)

		for _, seg := range contactSegments(r, shape.Contact) {
			vector.StrokeLine(screen, seg[0].X, seg[0].Y, seg[1].X, seg[1].Y, contactLineWidth, s.contact, false)
		}
	}
}

// contactSegments 返回矩形上被标记的每条边的端点
// 顺序固定为 上、下、左、右
func contactSegments(r types.Rect, edges types.Edge) [][2]types.Vec2 {
	if edges == types.EdgeNone {
		return nil
	}

	tl := types.Vec2{X: r.Left(), Y: r.Top()}
	tr := types.Vec2{X: r.Right(), Y: r.Top()}
	bl := types.Vec2{X: r.Left(), Y: r.Bottom()}
	br := types.Vec2{X: r.Right(), Y: r.Bottom()}

	segs := make([][2]types.Vec2, 0, 2)
	if edges.Has(types.EdgeTop) {
		segs = append(segs, [2]types.Vec2{tl, tr})
	}
	if edges.Has(types.EdgeBottom) {
		segs = append(segs, [2]types.Vec2{bl, br})
	}
	if edges.Has(types.EdgeLeft) {
		segs = append(segs, [2]types.Vec2{tl, bl})
	}
	if edges.Has(types.EdgeRight) {
		segs = append(segs, [2]types.Vec2{tr, br})
	}
	return segs
}
