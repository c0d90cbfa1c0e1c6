package transition

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/decker502/emberquest/pkg/utils"
)

// 相位阈值常量
// 三个相位由固定的进度阈值划分，与模式无关：
// 模式只决定一次激活会实际遍历哪个进度子区间。
//
// 注意区间开闭：保持相位 (0.25, 0.85) 与揭幕相位 (0.85, 1.0] 均不含 0.85，
// 这是对缝处的原始语义，改动会造成单帧缺口或重复绘制。
const (
	wipePhaseEnd     = 0.30 // 切入相位：p ∈ [0, 0.30]
	holdPhaseStart   = 0.25 // 保持相位起点（开区间，与切入尾部重叠形成无缝切换）
	holdPhaseEnd     = 0.85 // 保持相位终点（开区间）
	revealPhaseStart = 0.85 // 揭幕相位起点（开区间）

	textVisibleStart = 0.25 // 文字可见区间起点（开区间）
	textVisibleEnd   = 0.95 // 文字可见区间终点（开区间）
	textEnterSpan    = 0.10 // 文字入场归一化跨度
	textExitSpan     = 0.10 // 文字退场归一化跨度
)

// 几何常量
const (
	// RotationDegrees 整组几何围绕视口中心的固定旋转角
	// 渲染计划输出旋转前的几何加此角度，由宿主的渲染层实现旋转变换
	RotationDegrees = -15.0

	accentEdgeThickness = 12.0 // 色块前缘的强调色条厚度
	flashMaxThickness   = 40.0 // 揭幕闪光带最大厚度
	speedLineHeight     = 6.0  // 速度线厚度
	textJitterRange     = 5.0  // 文字抖动幅度（每轴 ±5）
)

// Palette 过场动画的三色调色板
// Alpha 为 0 的颜色视为未解析，合成时替换为文档化的回退色。
type Palette struct {
	Accent     color.RGBA // 强调色（前缘、速度线）
	Background color.RGBA // 底色（色块、全屏填充）
	Border     color.RGBA // 中性色（次要速度线）
}

// 回退色：调色板缺失时使用，保证合成永不失败
var (
	fallbackAccent     = color.RGBA{R: 0xFF, G: 0x2E, B: 0x92, A: 0xFF} // 饱和品红
	fallbackBackground = color.RGBA{R: 0x10, G: 0x0C, B: 0x14, A: 0xFF} // 近黑
	fallbackBorder     = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // 中性灰
	flashColor         = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF} // 高对比闪光
)

// DefaultPalette 返回全回退色调色板
func DefaultPalette() Palette {
	return Palette{
		Accent:     fallbackAccent,
		Background: fallbackBackground,
		Border:     fallbackBorder,
	}
}

// RectOp 单个矩形绘制指令（旋转前坐标）
type RectOp struct {
	X, Y    float64
	W, H    float64
	Color   color.RGBA
	Opacity float64 // 0.0 ~ 1.0
}

// TextOp 文字横幅描述符
// 抖动偏移为纯装饰，每帧重新采样，不参与任何命中测试
type TextOp struct {
	Visible bool
	Scale   float64
	Opacity float64
	OffsetX float64 // 抖动偏移 X
	OffsetY float64 // 抖动偏移 Y
}

// PhasePlan 单帧渲染计划
// 每帧重新计算的纯输出值，消费方绘制后即丢弃，不跨帧持有。
type PhasePlan struct {
	RotationDeg float64  // 整组矩形围绕视口中心的旋转角
	Rects       []RectOp // 有序绘制指令（先画前面的）
	Text        TextOp
}

// ComposeOptions 合成选项（无障碍开关）
type ComposeOptions struct {
	// SuppressFlashes 为 true 时不输出揭幕相位的闪光带
	SuppressFlashes bool
}

// Compositor 相位合成器
// (进度, 模式, 调色板, 视口尺寸) → 渲染计划 的纯函数。
// 唯一的非确定项是文字抖动，随机源在构造时注入，测试可用固定种子复现。
type Compositor struct {
	rng *rand.Rand
}

// NewCompositor 创建合成器
//
// 参数：
//   - rng: 文字抖动的随机源，传 nil 则使用时间种子
func NewCompositor(rng *rand.Rand) *Compositor {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Compositor{rng: rng}
}

// Compose 计算当前瞬间的渲染计划
// 对相同输入（抖动项除外）输出恒定，无副作用，可并发用于预览和测试。
// progress 越界时饱和到 [0, 1]，退化为饱和视觉状态而非报错。
func (c *Compositor) Compose(progress float64, mode Mode, palette Palette, viewportW, viewportH float64, opts ComposeOptions) PhasePlan {
	p := utils.Clamp01(progress)
	pal := resolvePalette(palette)

	plan := PhasePlan{RotationDeg: RotationDegrees}

	// 保持相位先入计划：全屏填充作为底层，切入色块叠于其上实现无缝切换
	c.composeHold(&plan, p, pal, viewportW, viewportH)
	c.composeWipe(&plan, p, pal, viewportW, viewportH)
	c.composeReveal(&plan, p, pal, viewportW, viewportH, opts)
	c.composeText(&plan, p)

	return plan
}

// barGeometry 返回色块的公共几何：横向超出视口以覆盖旋转后的角落
func barGeometry(w, h float64) (barX, barW, barH float64) {
	barW = w * 2.0
	barX = (w - barW) / 2
	barH = h/2 + h*0.25
	return barX, barW, barH
}

// composeWipe 切入相位：p ∈ [0, 0.30]
// 上下两个超尺寸色块从屏幕外插值到覆盖中心的位置，
// 各带一条固定厚度的强调色前缘。
func (c *Compositor) composeWipe(plan *PhasePlan, p float64, pal Palette, w, h float64) {
	if p > wipePhaseEnd {
		return
	}

	slashT := utils.EaseOutCubic(utils.Clamp01(p / wipePhaseEnd))

	cy := h / 2
	barX, barW, barH := barGeometry(w, h)

	topRestY := cy - barH // 上色块的覆盖位：下缘贴住中心线
	bottomRestY := cy     // 下色块的覆盖位：上缘贴住中心线
	travel := h           // 屏幕外起始偏移

	topY := utils.Lerp(topRestY-travel, topRestY, slashT)
	bottomY := utils.Lerp(bottomRestY+travel, bottomRestY, slashT)

	plan.Rects = append(plan.Rects,
		RectOp{X: barX, Y: topY, W: barW, H: barH, Color: pal.Background, Opacity: 1.0},
		RectOp{X: barX, Y: topY + barH - accentEdgeThickness, W: barW, H: accentEdgeThickness, Color: pal.Accent, Opacity: 1.0},
		RectOp{X: barX, Y: bottomY, W: barW, H: barH, Color: pal.Background, Opacity: 1.0},
		RectOp{X: barX, Y: bottomY, W: barW, H: accentEdgeThickness, Color: pal.Accent, Opacity: 1.0},
	)
}

// composeHold 保持相位：p ∈ (0.25, 0.85)，两端均为开区间
// 全屏填充加两条镜像横扫的装饰速度线。
func (c *Compositor) composeHold(plan *PhasePlan, p float64, pal Palette, w, h float64) {
	if p <= holdPhaseStart || p >= holdPhaseEnd {
		return
	}

	plan.Rects = append(plan.Rects,
		RectOp{X: 0, Y: 0, W: w, H: h, Color: pal.Background, Opacity: 1.0},
	)

	lineT := utils.Clamp01((p - holdPhaseStart) / (holdPhaseEnd - holdPhaseStart))

	cy := h / 2
	lineW := w * 0.45

	// 一条从左缘向右扫，镜像线从右缘向左扫，同属整组旋转
	leftX := utils.Lerp(-lineW, w, lineT)
	rightX := utils.Lerp(w, -lineW, lineT)

	plan.Rects = append(plan.Rects,
		RectOp{X: leftX, Y: cy - 72, W: lineW, H: speedLineHeight, Color: pal.Accent, Opacity: 0.8},
		RectOp{X: rightX, Y: cy + 66, W: lineW, H: speedLineHeight, Color: pal.Border, Opacity: 0.8},
	)
}

// composeReveal 揭幕相位：p ∈ (0.85, 1.0]
// 两个色块从保持位回撤 openHeight = (视口高/2) × 缓动(exitT)；
// exitT < 0.5 期间另在开缝处输出一条高对比闪光带。
func (c *Compositor) composeReveal(plan *PhasePlan, p float64, pal Palette, w, h float64, opts ComposeOptions) {
	if p <= revealPhaseStart {
		return
	}

	exitT := utils.Clamp01((p - revealPhaseStart) / (1.0 - revealPhaseStart))
	eased := utils.EaseInOutCubic(exitT)

	cy := h / 2
	barX, barW, barH := barGeometry(w, h)
	openHeight := cy * eased

	plan.Rects = append(plan.Rects,
		RectOp{X: barX, Y: cy - barH - openHeight, W: barW, H: barH, Color: pal.Background, Opacity: 1.0},
		RectOp{X: barX, Y: cy + openHeight, W: barW, H: barH, Color: pal.Background, Opacity: 1.0},
	)

	// 闪光带门控使用未缓动的 exitT，透明度和厚度随退场收缩
	if exitT < 0.5 && !opts.SuppressFlashes {
		thickness := flashMaxThickness * (1 - exitT)
		plan.Rects = append(plan.Rects, RectOp{
			X:       barX,
			Y:       cy - thickness/2,
			W:       barW,
			H:       thickness,
			Color:   flashColor,
			Opacity: 1 - 2*exitT,
		})
	}
}

// composeText 文字横幅：仅 p ∈ (0.25, 0.95) 可见
// 入场时从 2 倍缩放收拢到约 1.0，退场时轻微放大淡出。
func (c *Compositor) composeText(plan *PhasePlan, p float64) {
	if p <= textVisibleStart || p >= textVisibleEnd {
		plan.Text = TextOp{Visible: false, Scale: 1.0, Opacity: 0}
		return
	}

	enterT := utils.Clamp01((p - textVisibleStart) / textEnterSpan)
	exitT := utils.Clamp01((p - revealPhaseStart) / textExitSpan)

	plan.Text = TextOp{
		Visible: true,
		Scale:   2.0 - 1.0*enterT + 0.5*exitT,
		Opacity: enterT * (1 - exitT),
		OffsetX: (c.rng.Float64()*2 - 1) * textJitterRange,
		OffsetY: (c.rng.Float64()*2 - 1) * textJitterRange,
	}
}

// resolvePalette 替换未解析的颜色为回退色
// Alpha 为 0 的分量视为缺失，静默降级不报错。
func resolvePalette(p Palette) Palette {
	if p.Accent.A == 0 {
		p.Accent = fallbackAccent
	}
	if p.Background.A == 0 {
		p.Background = fallbackBackground
	}
	if p.Border.A == 0 {
		p.Border = fallbackBorder
	}
	return p
}
