package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/paddleball/pkg/game"
	"github.com/decker502/paddleball/pkg/systems"
	"github.com/decker502/paddleball/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// SimulationScene 运行弹球模拟的场景
//
// 每个 tick：把输入交给 Simulation 推进一帧；有球撞到挡板时播放音效；
// 模拟结束后返回 ebiten.Termination 让主循环正常退出。
type SimulationScene struct {
	sim      *game.Simulation
	renderer *systems.ShapeRenderSystem
	audio    *game.AudioManager
	debug    bool
}

// NewSimulationScene 创建模拟场景
//
// 参数:
//   - sim: 已构建的模拟
//   - audio: 音频管理器，可为 nil
//   - debug: 是否绘制调试信息
func NewSimulationScene(sim *game.Simulation, audio *game.AudioManager, debug bool) *SimulationScene {
	return &SimulationScene{
		sim:      sim,
		renderer: systems.NewShapeRenderSystem(sim.Config().Colors),
		audio:    audio,
		debug:    debug,
	}
}

// Update 推进一帧
func (s *SimulationScene) Update(events []types.InputEvent) error {
	if err := s.sim.Update(events); err != nil {
		log.Printf("[SimulationScene] 模拟异常终止: %v", err)
		return err
	}

	state := s.sim.State()
	if !state.IsRunning() {
		log.Printf("[SimulationScene] 模拟已结束 (%s)，退出", state.Reason)
		return ebiten.Termination
	}

	if state.LastHits > 0 {
		s.audio.PlayBounce()
	}
	return nil
}

// Draw 绘制本帧
func (s *SimulationScene) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen, s.sim.Shapes())

	if s.debug {
		for i, line := range s.debugLines(ebiten.ActualTPS()) {
			ebitenutil.DebugPrintAt(screen, line, 10, 10+i*16)
		}
	}
}

// SetDebug 开关调试信息
func (s *SimulationScene) SetDebug(debug bool) {
	s.debug = debug
}

// ToggleDebug 切换调试信息
func (s *SimulationScene) ToggleDebug() {
	s.debug = !s.debug
}

// Simulation 返回场景持有的模拟
func (s *SimulationScene) Simulation() *game.Simulation {
	return s.sim
}

func (s *SimulationScene) debugLines(tps float64) []string {
	state := s.sim.State()
	paddle := s.sim.Paddle()
	cfg := s.sim.Config()

	return []string{
		fmt.Sprintf("TPS: %.1f  Tick: %d", tps, state.Tick),
		fmt.Sprintf("Balls: %d  Hits: %d (total %d)", len(s.sim.Bodies()), state.LastHits, state.TotalHits),
		fmt.Sprintf("Paddle: %s v=%s", paddle.Rect, paddle.Velocity),
		fmt.Sprintf("Policy: %s  Workers: %d", cfg.BoundaryPolicy, cfg.Collision.Workers),
	}
}
