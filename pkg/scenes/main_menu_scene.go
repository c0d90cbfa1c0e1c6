// Package scenes 实现游戏的各个场景
package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/emberquest/pkg/game"
	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// MainMenuScene 主菜单场景
// 提供开始游戏入口和无障碍设置开关，设置修改立即持久化
type MainMenuScene struct {
	sceneManager *game.SceneManager
	ui           *ebitenui.UI

	flashesButton  *widget.Button
	contrastButton *widget.Button
}

// NewMainMenuScene 创建主菜单场景
func NewMainMenuScene(sceneManager *game.SceneManager) *MainMenuScene {
	s := &MainMenuScene{
		sceneManager: sceneManager,
	}
	s.ui = s.buildUI()

	log.Printf("[MainMenuScene] Initialized")
	return s
}

// buildUI 构建菜单控件树：标题 + 纵向按钮列，整体居中
func (s *MainMenuScene) buildUI() *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x0C, B: 0x14, A: 0xD0})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x2B, B: 0x3D, A: 0xFF})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}}

	title := widget.NewText(
		widget.TextOpts.Text("EMBER QUEST", &face, color.NRGBA{R: 0xFF, G: 0x2E, B: 0x92, A: 0xFF}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	startBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Start Battle", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.sceneManager.LoadScene("battle")
		}),
	)

	settings := game.GetGameState().GetSettingsManager()

	s.flashesButton = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(flashesLabel(settings.GetSettings().SuppressFlashes), &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			sm := game.GetGameState().GetSettingsManager()
			sm.SetSuppressFlashes(!sm.GetSettings().SuppressFlashes)
			if err := sm.Save(); err != nil {
				log.Printf("[MainMenuScene] Failed to save settings: %v", err)
			}
			if text := s.flashesButton.Text(); text != nil {
				text.Label = flashesLabel(sm.GetSettings().SuppressFlashes)
			}
		}),
	)

	s.contrastButton = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(contrastLabel(settings.GetSettings().HighContrastMode), &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			sm := game.GetGameState().GetSettingsManager()
			sm.SetHighContrastMode(!sm.GetSettings().HighContrastMode)
			if err := sm.Save(); err != nil {
				log.Printf("[MainMenuScene] Failed to save settings: %v", err)
			}
			if text := s.contrastButton.Text(); text != nil {
				text.Label = contrastLabel(sm.GetSettings().HighContrastMode)
			}
		}),
	)

	fullscreenBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Toggle Fullscreen", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			sm := game.GetGameState().GetSettingsManager()
			enabled := !sm.GetSettings().Fullscreen
			sm.SetFullscreen(enabled)
			if err := sm.Save(); err != nil {
				log.Printf("[MainMenuScene] Failed to save settings: %v", err)
			}
			ebiten.SetFullscreen(enabled)
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 36, Right: 36}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(startBtn)
	panel.AddChild(s.flashesButton)
	panel.AddChild(s.contrastButton)
	panel.AddChild(fullscreenBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func flashesLabel(suppressed bool) string {
	if suppressed {
		return "Flash Effects: OFF"
	}
	return "Flash Effects: ON"
}

func contrastLabel(enabled bool) string {
	if enabled {
		return "High Contrast: ON"
	}
	return "High Contrast: OFF"
}

// Update 更新菜单
func (s *MainMenuScene) Update(deltaTime float64) {
	s.ui.Update()
}

// Draw 渲染菜单
func (s *MainMenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x10, G: 0x0C, B: 0x14, A: 0xFF})
	s.ui.Draw(screen)
}
