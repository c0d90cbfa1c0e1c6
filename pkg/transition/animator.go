package transition

import (
	"log"

	"github.com/decker502/emberquest/pkg/utils"
)

// ProgressAnimator 过场动画进度驱动器
// 拥有唯一的进度标量，按激活模式从 Start 匀速推进到 End，
// 到达终点的那一帧之后触发一次性的完成回调。
//
// 约束：
//   - 非线程安全，只能在游戏循环（Update/Draw）所在的协程访问
//   - 同一次激活内完成回调至多触发一次；Dispose 之后永不触发
//   - 重新 Activate 会原子地丢弃上一次激活的全部状态（不支持续播）
type ProgressAnimator struct {
	spec AnimationSpec
	mode Mode

	value     float64 // 当前进度 ∈ [0, 1]
	elapsed   float64 // 本次激活已推进时间（秒）
	running   bool
	completed bool
	disposed  bool

	onCompleted func()
	fired       bool // 完成回调是否已触发（每次激活重置）
}

// NewProgressAnimator 创建未激活的进度驱动器
// 创建后需调用 Activate 才会开始推进
func NewProgressAnimator() *ProgressAnimator {
	return &ProgressAnimator{}
}

// SetOnCompleted 设置一次性完成回调
// 回调在进度首次到达 End 的那一帧触发，且每次激活至多一次
func (a *ProgressAnimator) SetOnCompleted(fn func()) {
	a.onCompleted = fn
}

// Activate 以指定模式（重新）激活动画
// 内部状态重置为该模式的起始进度，即使当前正在运行也会从头重启。
// 上一次激活遗留的 tick 不会再作用于新状态。
func (a *ProgressAnimator) Activate(mode Mode) {
	a.spec = SpecFor(mode)
	a.mode = mode
	a.value = a.spec.Start
	a.elapsed = 0
	a.running = true
	a.completed = false
	a.fired = false

	log.Printf("[ProgressAnimator] Activated: mode=%s, start=%.2f, end=%.2f, duration=%dms",
		mode, a.spec.Start, a.spec.End, a.spec.DurationMs)
}

// Update 按帧推进进度
// dt 为距上一帧的时间（秒）。进度单调推进，到达 End 后
// 标记完成并触发一次性回调。未激活或已释放时为空操作。
func (a *ProgressAnimator) Update(dt float64) {
	if !a.running || a.disposed {
		return
	}

	a.elapsed += dt

	// 时间归一化后经缓动映射到 [Start, End]
	frac := utils.Clamp01(a.elapsed * 1000.0 / float64(a.spec.DurationMs))
	a.value = utils.Lerp(a.spec.Start, a.spec.End, a.spec.Easing(frac))

	if frac >= 1.0 {
		a.value = a.spec.End
		a.running = false
		a.completed = true

		if !a.fired {
			a.fired = true
			if a.onCompleted != nil {
				a.onCompleted()
			}
			log.Printf("[ProgressAnimator] Completed: mode=%s, value=%.2f", a.mode, a.value)
		}
	}
}

// CurrentValue 返回当前进度（纯读取）
// 返回值经过防御性 [0, 1] 限制，可直接传给 Compositor
func (a *ProgressAnimator) CurrentValue() float64 {
	return utils.Clamp01(a.value)
}

// CurrentMode 返回当前激活的模式
func (a *ProgressAnimator) CurrentMode() Mode {
	return a.mode
}

// IsRunning 返回动画是否正在推进
func (a *ProgressAnimator) IsRunning() bool {
	return a.running && !a.disposed
}

// IsCompleted 返回本次激活是否已到达终点
func (a *ProgressAnimator) IsCompleted() bool {
	return a.completed
}

// Dispose 废弃动画器
// 叠加层隐藏时调用：立即停止后续推进，完成回调保证不再触发。
func (a *ProgressAnimator) Dispose() {
	a.disposed = true
	a.running = false
}
