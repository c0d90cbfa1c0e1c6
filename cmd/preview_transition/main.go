// preview_transition 窗口化预览过场叠加层
//
// 按空格依次播放 FULL → ENTER → EXIT 三种模式，
// 按 F 切换闪光抑制，按 H 切换高对比度调色板。
//
// 用法：
//
//	go run ./cmd/preview_transition [-verbose]
package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/decker502/emberquest/pkg/config"
	"github.com/decker502/emberquest/pkg/modules"
	"github.com/decker502/emberquest/pkg/transition"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
)

// previewGame 预览程序：循环播放三种过场模式
type previewGame struct {
	module *modules.BattleTransitionModule

	modes     []transition.Mode
	modeIndex int

	suppressFlashes bool
	highContrast    bool
}

func newPreviewGame() *previewGame {
	g := &previewGame{
		modes: []transition.Mode{transition.ModeFull, transition.ModeEnter, transition.ModeExit},
	}

	g.module = modules.NewBattleTransitionModule(
		config.GameWindowWidth, config.GameWindowHeight, nil,
		modules.BattleTransitionCallbacks{
			OnFinished: func() {
				log.Printf("[Preview] Transition finished: %s", g.modes[g.modeIndex])
			},
		},
	)
	return g
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.modeIndex = (g.modeIndex + 1) % len(g.modes)
		g.module.Show(g.modes[g.modeIndex])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.suppressFlashes = !g.suppressFlashes
		log.Printf("[Preview] suppressFlashes=%v", g.suppressFlashes)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.highContrast = !g.highContrast
		log.Printf("[Preview] highContrast=%v", g.highContrast)
	}

	g.module.SetAccessibility(g.suppressFlashes, g.highContrast)
	g.module.Update(1.0 / 60.0)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x0E, G: 0x14, B: 0x1C, A: 0xFF})
	g.module.Draw(screen)

	ebitenutil.DebugPrint(screen,
		"SPACE: next mode  F: toggle flashes  H: toggle high contrast")
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetFlags(0)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Transition Preview")

	if err := ebiten.RunGame(newPreviewGame()); err != nil {
		log.Fatal(err)
	}
}
