package main

import (
	"errors"
	"flag"
	"log"

	"github.com/decker502/paddleball/pkg/app"
	"github.com/decker502/paddleball/pkg/config"
	"github.com/decker502/paddleball/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configPath = flag.String("config", config.DefaultConfigPath, "模拟配置文件路径（data/ 开头的路径读取内嵌文件）")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	debug      = flag.Bool("debug", false, "显示调试信息（运行时 F3 切换）")
	mute       = flag.Bool("mute", false, "关闭碰撞音效")
	seed       = flag.Int64("seed", 0, "随机种子，非 0 时覆盖配置文件")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	cfg, err := config.LoadSimulationConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *seed != 0 {
		cfg.Balls.Seed = *seed
	}

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Debug:      *debug,
		Mute:       *mute,
		Simulation: *cfg,
	})
	if err != nil {
		log.Fatalf("启动失败: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.Arena.Width), int(cfg.Arena.Height))
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("模拟异常退出: %v", err)
	}
}
