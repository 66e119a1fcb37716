// headless 在没有窗口的情况下运行弹球模拟，用于检查长时间运行下的边界和碰撞不变量
//
// 用法:
//
//	go run ./cmd/headless -ticks 10000 -input random
//	go run ./cmd/headless -config data/simulation.yaml -seed 42 -verbose
//
// 输出运行的帧数、结束状态和观察到的最大越界距离。
// 碰撞不变量被破坏时退出码为 1，越界超出单帧最大位移时退出码为 2。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	"github.com/decker502/paddleball/pkg/config"
	"github.com/decker502/paddleball/pkg/game"
	"github.com/decker502/paddleball/pkg/types"
)

var (
	ticks      = flag.Int("ticks", 3000, "运行的帧数")
	configPath = flag.String("config", "", "模拟配置文件路径（为空时使用内置默认值）")
	seed       = flag.Int64("seed", 1, "随机种子（球体生成和随机输入）")
	inputMode  = flag.String("input", "random", "输入模式: random|none|left|right")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
)

// Report 一次无头运行的结果
type Report struct {
	Ticks        uint64
	Phase        game.Phase
	Reason       game.TerminationReason
	TotalHits    uint64
	MaxOvershoot float32
	Err          error
}

// inputSource 每帧生成输入事件
type inputSource func(tick int) []types.InputEvent

func newInputSource(mode string, rng *rand.Rand) (inputSource, error) {
	switch mode {
	case "none":
		return func(int) []types.InputEvent { return nil }, nil
	case "left":
		return func(int) []types.InputEvent { return []types.InputEvent{types.InputMoveLeft} }, nil
	case "right":
		return func(int) []types.InputEvent { return []types.InputEvent{types.InputMoveRight} }, nil
	case "random":
		choices := [][]types.InputEvent{
			nil,
			{types.InputMoveLeft},
			{types.InputMoveRight},
			{types.InputMoveLeft, types.InputMoveRight},
		}
		return func(int) []types.InputEvent { return choices[rng.IntN(len(choices))] }, nil
	default:
		return nil, fmt.Errorf("unknown input mode %q (want random|none|left|right)", mode)
	}
}

// run 运行模拟最多 n 帧
func run(cfg config.SimulationConfig, n int, input inputSource) (Report, error) {
	sim, err := game.NewSimulation(cfg)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for i := 0; i < n && sim.State().IsRunning(); i++ {
		if err := sim.Update(input(i)); err != nil {
			report.Err = err
			break
		}
		for _, b := range sim.Bodies() {
			if o := overshoot(b.Position, cfg.Arena); o > report.MaxOvershoot {
				report.MaxOvershoot = o
			}
		}
	}

	st := sim.State()
	report.Ticks = st.Tick
	report.Phase = st.Phase
	report.Reason = st.Reason
	report.TotalHits = st.TotalHits
	return report, nil
}

// overshoot 返回点在场地外的最大距离，场地内为 0
func overshoot(p types.Vec2, arena config.ArenaConfig) float32 {
	return max(0, -p.X, p.X-arena.Width, -p.Y, p.Y-arena.Height)
}

func loadConfig(path string) (config.SimulationConfig, error) {
	if path == "" {
		return config.DefaultSimulationConfig(), nil
	}
	cfg, err := config.LoadSimulationConfig(path)
	if err != nil {
		return config.SimulationConfig{}, err
	}
	return *cfg, nil
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	cfg.Balls.Seed = *seed

	input, err := newInputSource(*inputMode, rand.New(rand.NewPCG(uint64(*seed), 0)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	report, err := run(cfg, *ticks, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建模拟失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ticks:         %d\n", report.Ticks)
	fmt.Printf("phase:         %s\n", report.Phase)
	if report.Reason != game.ReasonNone {
		fmt.Printf("reason:        %s\n", report.Reason)
	}
	fmt.Printf("paddle hits:   %d\n", report.TotalHits)
	fmt.Printf("max overshoot: %.3f (limit %.3f)\n", report.MaxOvershoot, cfg.MaxDisplacement())

	if report.Err != nil {
		fmt.Fprintf(os.Stderr, "不变量被破坏: %v\n", report.Err)
		os.Exit(1)
	}
	if report.MaxOvershoot > cfg.MaxDisplacement() {
		fmt.Fprintln(os.Stderr, "越界超出单帧最大位移")
		os.Exit(2)
	}
}
