package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/decker502/paddleball/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 内嵌默认配置文件路径
const DefaultConfigPath = "data/simulation.yaml"

// ContactEpsilon 判定接触点位于哪条边时使用的容差（像素）
//
// 线段裁剪得到的接触点受浮点误差和离散步长影响，不会精确落在边上；
// 球擦过角点时接触点可能同时满足两条边的判定，此时两个轴都会反射。
const ContactEpsilon float32 = 1.0

// BoundaryPolicy 场地边界策略
type BoundaryPolicy string

const (
	// PolicyReflect 四条边都按轴独立反射（默认）
	PolicyReflect BoundaryPolicy = "reflect"
	// PolicyLoseBottom 左、右、上三边反射，球越过下边时模拟结束
	PolicyLoseBottom BoundaryPolicy = "lose-bottom"
)

// SimulationConfig 模拟的不可变配置
//
// 在构造 Simulation 时按值传入，运行期间不再修改。
// 配置文件位置: data/simulation.yaml
type SimulationConfig struct {
	Window         WindowConfig    `yaml:"window"`
	Arena          ArenaConfig     `yaml:"arena"`
	BoundaryPolicy BoundaryPolicy  `yaml:"boundaryPolicy"`
	Paddle         PaddleConfig    `yaml:"paddle"`
	Balls          BallsConfig     `yaml:"balls"`
	Colors         ColorsConfig    `yaml:"colors"`
	ContactEpsilon float32         `yaml:"contactEpsilon"`
	Collision      CollisionConfig `yaml:"collision"`
	Sound          SoundConfig     `yaml:"sound"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title string `yaml:"title"`
	// TPS 每秒模拟帧数（外部 tick 频率）
	TPS int `yaml:"tps"`
}

// ArenaConfig 场地尺寸，同时也是逻辑屏幕尺寸
type ArenaConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// PaddleConfig 挡板配置
type PaddleConfig struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	// Speed 按键时每帧的水平位移
	Speed float32 `yaml:"speed"`
	// ClampToArena 是否把挡板限制在场地宽度内
	ClampToArena bool `yaml:"clampToArena"`
}

// BallsConfig 球体生成配置
type BallsConfig struct {
	Count  int        `yaml:"count"`
	Radius float32    `yaml:"radius"`
	SpawnX FloatRange `yaml:"spawnX"`
	SpawnY FloatRange `yaml:"spawnY"`
	Speed  FloatRange `yaml:"speed"`
	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `yaml:"seed"`
}

// FloatRange 闭区间 [Min, Max]，在区间内均匀随机取值
type FloatRange struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// CollisionConfig 碰撞系统配置
type CollisionConfig struct {
	// Workers 并行解算球体碰撞的协程数，0 或 1 表示串行
	Workers int `yaml:"workers"`
}

// SoundConfig 碰撞音效配置
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// DefaultSimulationConfig 返回默认配置
// 配置文件只需要写出想覆盖的字段
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Window: WindowConfig{
			Title: "Paddle Ball",
			TPS:   30,
		},
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		BoundaryPolicy: PolicyReflect,
		Paddle: PaddleConfig{
			X:            0,
			Y:            500,
			Width:        200,
			Height:       10,
			Speed:        10,
			ClampToArena: true,
		},
		Balls: BallsConfig{
			Count:  49,
			Radius: 10,
			SpawnX: FloatRange{Min: 50, Max: 750},
			SpawnY: FloatRange{Min: 0, Max: 300},
			Speed:  FloatRange{Min: 0.5, Max: 20},
		},
		Colors: ColorsConfig{
			Background: MustParseColor("black"),
			Ball:       MustParseColor("white"),
			Paddle:     MustParseColor("white"),
			Contact:    MustParseColor("red"),
		},
		ContactEpsilon: ContactEpsilon,
		Collision: CollisionConfig{
			Workers: 1,
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.3,
		},
	}
}

// ParseSimulationConfig 从 YAML 内容解析配置
//
// 解析结果以默认配置为底，YAML 中出现的字段覆盖默认值。
//
// 参数:
//   - data: YAML 文件内容
//
// 返回:
//   - *SimulationConfig: 解析并验证通过的配置
//   - error: 解析失败或验证失败时返回错误
func ParseSimulationConfig(data []byte) (*SimulationConfig, error) {
	cfg := DefaultSimulationConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	return &cfg, nil
}

// LoadSimulationConfig 加载模拟配置
//
// 以 "data/" 开头的路径优先从内嵌资源读取，其它路径从文件系统读取。
//
// 参数:
//   - path: 配置文件路径（如 "data/simulation.yaml" 或 "./my.yaml"）
//
// 返回:
//   - *SimulationConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation config %s: %w", path, err)
	}

	cfg, err := ParseSimulationConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if strings.HasPrefix(path, "data/") && embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// Validate 验证配置有效性
//
// 检查配置值是否在合理范围内：
//   - 场地尺寸、TPS 必须为正
//   - 挡板宽高必须大于 2*contactEpsilon，否则一次接触会同时命中相对的两条边
//   - 所有区间的 Min 应小于等于 Max
//   - 边界策略必须是已知值
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *SimulationConfig) Validate() error {
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS)
	}
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena size must be positive, got %.1fx%.1f", c.Arena.Width, c.Arena.Height)
	}

	switch c.BoundaryPolicy {
	case PolicyReflect, PolicyLoseBottom:
	default:
		return fmt.Errorf("unknown boundaryPolicy %q (want %q or %q)", c.BoundaryPolicy, PolicyReflect, PolicyLoseBottom)
	}

	if c.ContactEpsilon <= 0 {
		return fmt.Errorf("contactEpsilon must be positive, got %f", c.ContactEpsilon)
	}
	if c.Paddle.Width <= 2*c.ContactEpsilon || c.Paddle.Height <= 2*c.ContactEpsilon {
		return fmt.Errorf("paddle %.1fx%.1f too small for contactEpsilon %.2f",
			c.Paddle.Width, c.Paddle.Height, c.ContactEpsilon)
	}
	if c.Paddle.Speed < 0 {
		return fmt.Errorf("paddle.speed cannot be negative, got %.1f", c.Paddle.Speed)
	}

	if c.Balls.Count < 0 {
		return fmt.Errorf("balls.count cannot be negative, got %d", c.Balls.Count)
	}
	if c.Balls.Radius <= 0 {
		return fmt.Errorf("balls.radius must be positive, got %.1f", c.Balls.Radius)
	}
	ranges := []struct {
		name string
		r    FloatRange
	}{
		{"balls.spawnX", c.Balls.SpawnX},
		{"balls.spawnY", c.Balls.SpawnY},
		{"balls.speed", c.Balls.Speed},
	}
	for _, rg := range ranges {
		if rg.r.Min > rg.r.Max {
			return fmt.Errorf("%s range invalid: min(%.1f) > max(%.1f)", rg.name, rg.r.Min, rg.r.Max)
		}
	}
	if c.Balls.Speed.Min < 0 {
		return fmt.Errorf("balls.speed.min cannot be negative, got %.1f", c.Balls.Speed.Min)
	}

	if c.Collision.Workers < 0 {
		return fmt.Errorf("collision.workers cannot be negative, got %d", c.Collision.Workers)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("sound.volume must be in [0, 1], got %.2f", c.Sound.Volume)
	}

	return nil
}

// MaxDisplacement 返回球体单帧可能的最大位移
// 场地边界的越界容差以此为上限
func (c *SimulationConfig) MaxDisplacement() float32 {
	return c.Balls.Speed.Max
}
