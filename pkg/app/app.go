// Package app 提供弹球模拟的应用包装器
//
// 该包把窗口、输入、音频和场景组装成一个 ebiten.Game，main 包只负责解析参数和启动主循环。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/paddleball/pkg/config"
	"github.com/decker502/paddleball/pkg/game"
	"github.com/decker502/paddleball/pkg/scenes"
	"github.com/decker502/paddleball/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 启动时显示调试信息（F3 切换）
	Debug bool
	// Mute 关闭碰撞音效
	Mute bool
	// Simulation 模拟配置
	Simulation config.SimulationConfig
}

// App 实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.SimulationScene
	verbose      bool

	screenWidth  int
	screenHeight int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 如果模拟配置使用了 data/ 下的资源，调用前需先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sim, err := game.NewSimulation(cfg.Simulation)
	if err != nil {
		return nil, fmt.Errorf("模拟初始化失败: %w", err)
	}

	var audioManager *game.AudioManager
	soundEnabled := cfg.Simulation.Sound.Enabled && !cfg.Mute
	if soundEnabled {
		audioContext := audio.NewContext(game.SampleRate)
		audioManager = game.NewAudioManager(audioContext, true, cfg.Simulation.Sound.Volume)
	}
	log.Printf("[App] 音效: %v", soundEnabled)

	scene := scenes.NewSimulationScene(sim, audioManager, cfg.Debug)
	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		scene:        scene,
		verbose:      cfg.Verbose,
		screenWidth:  int(cfg.Simulation.Arena.Width),
		screenHeight: int(cfg.Simulation.Arena.Height),
	}, nil
}

// Update 每个 tick 调用一次
// 主循环的 TPS 就是模拟的帧率
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.screenWidth, a.screenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// F3 切换调试信息
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.scene.ToggleDebug()
	}

	return a.sceneManager.Update(utils.PollInputEvents(a.screenWidth))
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时 letterbox 区域填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，即场地尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenWidth, a.screenHeight
}

// Simulation 返回正在运行的模拟
func (a *App) Simulation() *game.Simulation {
	return a.scene.Simulation()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
