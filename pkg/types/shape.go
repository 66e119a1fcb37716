package types

// ShapeKind 可绘制形状的类别
type ShapeKind int

const (
	ShapeBall ShapeKind = iota
	ShapePaddle
)

// Shape 交给渲染层的轴对齐矩形
// Contact 为本帧被撞击的自身边，用于绘制高亮
type Shape struct {
	Kind    ShapeKind
	Rect    Rect
	Contact Edge
}
