package main

import (
	"flag"
	"log"

	"github.com/decker502/emberquest/pkg/app"
	"github.com/decker502/emberquest/pkg/config"
	"github.com/decker502/emberquest/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	dev := flag.Bool("dev", false, "enable dev mode (theme hot reload from disk)")
	scene := flag.String("scene", "", "start scene: menu or battle (default menu)")
	flag.Parse()

	// 初始化嵌入资源（必须在任何资源加载之前）
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Dev:     *dev,
		Scene:   *scene,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Ember Quest")

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
