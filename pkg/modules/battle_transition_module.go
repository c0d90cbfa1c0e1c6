// Package modules 封装可复用的 UI 模块
package modules

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/emberquest/pkg/config"
	"github.com/decker502/emberquest/pkg/transition"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// BattleTransitionModule 战斗过场叠加层模块
// 封装所有与战斗过场相关的功能，包括：
//   - 过场动画的激活生命周期（按 (visible, mode) 键控）
//   - 进度驱动与一次性完成回调的衔接
//   - 渲染计划的绘制（旋转矩形组 + 双层文字横幅）
//   - 停驻进度下的全视口覆盖兜底（ENTER 完成后 / EXIT 起步帧）
//
// 输入契约：可见期间底层场景不得处理指针输入。
// Ebiten 的输入是轮询式的，模块无法代为消费事件，
// 宿主必须以 IsVisible 为门禁跳过底层系统的输入处理。
//
// 设计原则：
//   - 动画状态由显式持有的 ProgressAnimator 承载，不依赖隐式的帧副作用
//   - 时间→进度映射与完成事件相互独立，可脱离渲染循环测试
//
// 使用场景：
//   - BattleScene: 进入战斗（FULL）、剧情遭遇（ENTER 后接 EXIT）
type BattleTransitionModule struct {
	// 核心引擎
	animator   *transition.ProgressAnimator
	compositor *transition.Compositor

	// 屏幕尺寸（用于渲染）
	windowWidth  int
	windowHeight int

	// 调色板（普通 / 高对比度）
	palette             transition.Palette
	highContrastPalette transition.Palette

	// 无障碍开关（由宿主按设置同步）
	suppressFlashes  bool
	highContrastMode bool

	// 状态
	visible bool
	mode    transition.Mode

	// 完成信号：动画器在到达终点的那一帧置位，
	// 模块在下一帧处理（保证终点帧先被绘制一次）
	finishPending bool

	// 回调函数（由外部场景提供）
	onFinished func()

	// 渲染资源
	fillImage *ebiten.Image // 1x1 白色底图，经变换后绘制任意矩形
	face      text.Face
}

// BattleTransitionCallbacks 过场模块回调函数集合
type BattleTransitionCallbacks struct {
	// OnFinished 每次 Show 激活恰好触发一次；Hide 之后不再触发
	OnFinished func()
}

// NewBattleTransitionModule 创建战斗过场模块
//
// 参数：
//   - windowWidth/windowHeight: 逻辑屏幕尺寸
//   - theme: 主题配置（可为 nil，使用回退色）
//   - callbacks: 回调集合
func NewBattleTransitionModule(windowWidth, windowHeight int, theme *config.ThemeConfig, callbacks BattleTransitionCallbacks) *BattleTransitionModule {
	fillImage := ebiten.NewImage(1, 1)
	fillImage.Fill(color.White)

	m := &BattleTransitionModule{
		compositor:   transition.NewCompositor(nil),
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
		onFinished:   callbacks.OnFinished,
		fillImage:    fillImage,
		face:         text.NewGoXFace(basicfont.Face7x13),
	}
	m.SetTheme(theme)

	log.Printf("[BattleTransition] Initialized (%dx%d)", windowWidth, windowHeight)
	return m
}

// SetTheme 更新调色板（支持开发模式主题热重载）
// theme 为 nil 时使用过场引擎的回退色
func (m *BattleTransitionModule) SetTheme(theme *config.ThemeConfig) {
	if theme == nil {
		m.palette = transition.DefaultPalette()
		m.highContrastPalette = transition.DefaultPalette()
		return
	}
	m.palette = theme.Palette(false)
	m.highContrastPalette = theme.Palette(true)
}

// SetAccessibility 同步无障碍开关
// suppressFlashes 抑制揭幕闪光带；highContrast 切换高对比度调色板
func (m *BattleTransitionModule) SetAccessibility(suppressFlashes, highContrast bool) {
	m.suppressFlashes = suppressFlashes
	m.highContrastMode = highContrast
}

// Show 以指定模式显示过场叠加层
// 已在显示中时原子地替换运行状态：旧动画器被废弃，
// 其残留 tick 和完成信号不会泄漏到新激活。
func (m *BattleTransitionModule) Show(mode transition.Mode) {
	if m.animator != nil {
		m.animator.Dispose()
	}

	m.visible = true
	m.mode = mode
	m.finishPending = false

	m.animator = transition.NewProgressAnimator()
	m.animator.SetOnCompleted(func() {
		m.finishPending = true
	})
	m.animator.Activate(mode)

	log.Printf("[BattleTransition] Show: mode=%s", mode)
}

// Hide 立即隐藏叠加层
// 动画器被废弃：后续不再有 tick，OnFinished 保证不触发。
func (m *BattleTransitionModule) Hide() {
	if !m.visible {
		return
	}

	m.visible = false
	m.finishPending = false
	if m.animator != nil {
		m.animator.Dispose()
		m.animator = nil
	}

	log.Printf("[BattleTransition] Hidden")
}

// IsVisible 返回叠加层是否可见
// 可见期间宿主不得向底层场景分发指针输入
func (m *BattleTransitionModule) IsVisible() bool {
	return m.visible
}

// CurrentProgress 返回当前进度（纯读取，测试和调试用）
func (m *BattleTransitionModule) CurrentProgress() float64 {
	if m.animator == nil {
		return 0
	}
	return m.animator.CurrentValue()
}

// Update 每帧推进过场动画
// 完成信号在终点帧的下一帧处理：先触发 OnFinished，
// FULL/EXIT 模式随后自动隐藏，ENTER 模式保持覆盖等待宿主播放 EXIT。
func (m *BattleTransitionModule) Update(dt float64) {
	if !m.visible {
		return
	}

	if m.finishPending {
		m.finishPending = false

		// 回调内可能调用 Show 重新激活（如 ENTER 完成后接 EXIT），
		// 动画器被替换时跳过自动隐藏
		finishedMode := m.mode
		finishedAnimator := m.animator
		if m.onFinished != nil {
			m.onFinished()
		}

		if m.animator == finishedAnimator && finishedMode != transition.ModeEnter {
			m.Hide()
		}
		return
	}

	if m.animator != nil {
		m.animator.Update(dt)
	}
}

// Draw 渲染当前帧的过场画面
func (m *BattleTransitionModule) Draw(screen *ebiten.Image) {
	if !m.visible || m.animator == nil {
		return
	}

	palette := m.palette
	if m.highContrastMode {
		palette = m.highContrastPalette
	}

	plan := m.compositor.Compose(
		m.animator.CurrentValue(),
		m.mode,
		palette,
		float64(m.windowWidth),
		float64(m.windowHeight),
		transition.ComposeOptions{SuppressFlashes: m.suppressFlashes},
	)

	// 停驻进度下合成器不产出矩形，兜底矩形垫在最底层
	if cover, ok := m.holdCoverRect(palette); ok {
		plan.Rects = append([]transition.RectOp{cover}, plan.Rects...)
	}

	m.drawRects(screen, plan)
	m.drawBanner(screen, plan.Text)
}

// holdCoverRect 返回停驻进度下的全视口兜底矩形
//
// 保持相位与揭幕相位在 EnterHoldProgress 处均为开边界，
// 进度恰好停在该值时合成器不产出任何覆盖矩形。两种情况会停驻：
// ENTER 到达终点后（等待宿主播放 EXIT 的整个期间），以及
// EXIT 激活后第一次 tick 之前的起步帧。覆盖契约要求这些帧
// 底层画面不可见，由模块补一块底色矩形。
//
// 矩形尺寸放大到视口的两倍：绘制时整组矩形绕视口中心旋转，
// 放大保证旋转后四角仍被覆盖。
func (m *BattleTransitionModule) holdCoverRect(pal transition.Palette) (transition.RectOp, bool) {
	if m.animator == nil || m.mode == transition.ModeFull {
		return transition.RectOp{}, false
	}
	if m.animator.CurrentValue() != transition.EnterHoldProgress {
		return transition.RectOp{}, false
	}

	bg := pal.Background
	if bg.A == 0 {
		bg = transition.DefaultPalette().Background
	}

	w := float64(m.windowWidth)
	h := float64(m.windowHeight)
	return transition.RectOp{
		X:       -w / 2,
		Y:       -h / 2,
		W:       w * 2,
		H:       h * 2,
		Color:   bg,
		Opacity: 1.0,
	}, true
}

// drawRects 绘制矩形组：所有矩形围绕视口中心做统一旋转
func (m *BattleTransitionModule) drawRects(screen *ebiten.Image, plan transition.PhasePlan) {
	theta := plan.RotationDeg * math.Pi / 180
	cx := float64(m.windowWidth) / 2
	cy := float64(m.windowHeight) / 2

	for _, r := range plan.Rects {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(r.W, r.H)
		op.GeoM.Translate(r.X, r.Y)
		// 围绕视口中心旋转
		op.GeoM.Translate(-cx, -cy)
		op.GeoM.Rotate(theta)
		op.GeoM.Translate(cx, cy)
		op.ColorScale.ScaleWithColor(r.Color)
		op.ColorScale.ScaleAlpha(float32(r.Opacity))
		screen.DrawImage(m.fillImage, op)
	}
}

// drawBanner 绘制文字横幅：两行文字，各一层偏移重影加一层实体
func (m *BattleTransitionModule) drawBanner(screen *ebiten.Image, t transition.TextOp) {
	if !t.Visible || t.Opacity <= 0 {
		return
	}

	cy := float64(m.windowHeight) / 2
	lines := []string{config.TransitionBannerLine1, config.TransitionBannerLine2}

	for i, line := range lines {
		baseY := cy - 30 + float64(i)*34

		// 重影层先绘制
		m.drawBannerLine(screen, line, t, baseY+config.TransitionGhostOffset,
			config.TransitionGhostOffset, t.Opacity*config.TransitionGhostOpacity)
		m.drawBannerLine(screen, line, t, baseY, 0, t.Opacity)
	}
}

// drawBannerLine 绘制单行横幅文字（带缩放与抖动偏移）
func (m *BattleTransitionModule) drawBannerLine(screen *ebiten.Image, line string, t transition.TextOp, y, extraX, opacity float64) {
	width, _ := text.Measure(line, m.face, 16)

	op := &text.DrawOptions{}
	op.GeoM.Scale(t.Scale*2, t.Scale*2) // 基础字号放大一档，再乘动画缩放
	op.GeoM.Translate(
		(float64(m.windowWidth)-width*t.Scale*2)/2+t.OffsetX+extraX,
		y+t.OffsetY,
	)
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(float32(opacity))
	text.Draw(screen, line, m.face, op)
}
