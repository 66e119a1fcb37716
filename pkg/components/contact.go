package components

import "github.com/decker502/paddleball/pkg/types"

// ContactComponent 记录本帧被撞击的自身边
// 球和挡板都有这个组件，渲染系统据此绘制红色高亮
type ContactComponent struct {
	Edges types.Edge
}

// Reset 清除上一帧的碰撞记录
func (c *ContactComponent) Reset() {
	c.Edges = types.EdgeNone
}
