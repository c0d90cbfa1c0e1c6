// Package transition 实现战斗过场动画的时间线引擎
//
// 引擎由两个协作组件构成：
//   - ProgressAnimator: 拥有唯一的进度标量 [0, 1]，按模式推进并触发一次性完成信号
//   - Compositor: (进度, 模式, 调色板, 视口) → 渲染计划 的纯函数
//
// 时间推进由宿主的帧循环驱动（每帧调用 Update），不使用任何后台协程。
package transition

import "github.com/decker502/emberquest/pkg/utils"

// Mode 过场动画模式
// 决定本次激活遍历进度值的哪个子区间
type Mode int

const (
	// ModeFull 完整过场：黑屏切入 → 保持 → 揭幕（0.0 → 1.0）
	ModeFull Mode = iota
	// ModeEnter 仅切入：动画停在保持相位，等待宿主稍后播放 ModeExit（0.0 → 0.85）
	ModeEnter
	// ModeExit 仅揭幕：从保持相位直接揭幕（0.85 → 1.0）
	ModeExit
)

// String 返回模式名称（用于日志）
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeEnter:
		return "enter"
	case ModeExit:
		return "exit"
	default:
		return "unknown"
	}
}

// 模式派生常量（契约值，外部依赖这些精确数值）
const (
	// EnterHoldProgress 切入模式的终点进度，同时是揭幕模式的起点进度
	EnterHoldProgress = 0.85

	// FullDurationMs 完整过场的总时长（毫秒）
	FullDurationMs = 1400
	// EnterDurationMs 切入时长 = round(1400 × 0.85)
	EnterDurationMs = 1190
	// ExitDurationMs 揭幕时长（毫秒）
	ExitDurationMs = 250
)

// AnimationSpec 单次激活期间不变的动画参数
// 由 SpecFor 按模式派生，激活时计算一次
type AnimationSpec struct {
	Start      float64        // 起始进度 ∈ [0, 1]
	End        float64        // 结束进度 ∈ [0, 1]
	DurationMs int            // 总时长（毫秒），恒 > 0
	Easing     utils.EasingFn // 时间 → 进度 的缓动（动画器使用线性）
}

// SpecFor 按模式派生动画参数
//
// 返回：
//   - AnimationSpec: 该模式的起止进度、时长和缓动
func SpecFor(mode Mode) AnimationSpec {
	switch mode {
	case ModeEnter:
		return AnimationSpec{Start: 0.0, End: EnterHoldProgress, DurationMs: EnterDurationMs, Easing: utils.EaseLinear}
	case ModeExit:
		return AnimationSpec{Start: EnterHoldProgress, End: 1.0, DurationMs: ExitDurationMs, Easing: utils.EaseLinear}
	default:
		return AnimationSpec{Start: 0.0, End: 1.0, DurationMs: FullDurationMs, Easing: utils.EaseLinear}
	}
}
