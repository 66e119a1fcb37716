package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ColorsConfig 渲染颜色配置
type ColorsConfig struct {
	Background Color `yaml:"background"`
	Ball       Color `yaml:"ball"`
	Paddle     Color `yaml:"paddle"`
	// Contact 碰撞边高亮颜色
	Contact Color `yaml:"contact"`
}

// Color 可以从 YAML 解析的颜色
// 支持 SVG 颜色名（"white", "tomato"）和十六进制（"#ff0000", "#ff000080"）
type Color color.RGBA

// RGBA 实现 color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA(c).RGBA()
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// ParseColor 解析颜色字符串
//
// 参数:
//   - s: 颜色名或 #rrggbb / #rrggbbaa
//
// 返回:
//   - Color: 解析结果
//   - error: 无法识别时返回错误
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		if len(hex) == 6 {
			hex += "ff"
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return Color{
			R: uint8(v >> 24),
			G: uint8(v >> 16),
			B: uint8(v >> 8),
			A: uint8(v),
		}, nil
	}

	if rgba, ok := colornames.Map[s]; ok {
		return Color(rgba), nil
	}
	return Color{}, fmt.Errorf("unknown color name %q", s)
}

// MustParseColor 用于默认值等编译期已知的颜色
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
