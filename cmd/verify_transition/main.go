// verify_transition 无窗口验证过场合成器的关键检查点
//
// 逐模式打印若干进度检查点的渲染计划（矩形数量、几何、文字状态），
// 用于在没有图形环境的机器上核对阶段边界行为。
//
// 用法：
//
//	go run ./cmd/verify_transition [-seed 42]
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/decker502/emberquest/pkg/transition"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

var (
	seed = flag.Int64("seed", 42, "文字抖动随机种子（固定种子保证输出可复现）")
)

// checkpoints 覆盖四个阶段和全部开闭边界
var checkpoints = []float64{0.0, 0.15, 0.25, 0.28, 0.30, 0.50, 0.85, 0.90, 0.95, 1.0}

func main() {
	flag.Parse()

	compositor := transition.NewCompositor(rand.New(rand.NewSource(*seed)))
	palette := transition.DefaultPalette()

	for _, mode := range []transition.Mode{transition.ModeFull, transition.ModeEnter, transition.ModeExit} {
		spec := transition.SpecFor(mode)
		fmt.Printf("=== mode=%s  range=[%.2f, %.2f]  duration=%dms ===\n",
			mode, spec.Start, spec.End, spec.DurationMs)

		for _, p := range checkpoints {
			if p < spec.Start || p > spec.End {
				continue
			}

			plan := compositor.Compose(p, mode, palette, screenWidth, screenHeight, transition.ComposeOptions{})
			fmt.Printf("p=%.2f  rects=%d", p, len(plan.Rects))

			for _, r := range plan.Rects {
				fmt.Printf("  [x=%.0f y=%.0f w=%.0f h=%.0f a=%.2f]", r.X, r.Y, r.W, r.H, r.Opacity)
			}

			if plan.Text.Visible {
				fmt.Printf("  text(scale=%.2f opacity=%.2f jitter=%.1f,%.1f)",
					plan.Text.Scale, plan.Text.Opacity, plan.Text.OffsetX, plan.Text.OffsetY)
			}
			fmt.Println()
		}
		fmt.Println()
	}

	verifyAnimatorTimeline()
}

// verifyAnimatorTimeline 以 60fps 模拟三种模式的完整动画并打印完成帧
func verifyAnimatorTimeline() {
	fmt.Println("=== animator timeline (60fps) ===")

	for _, mode := range []transition.Mode{transition.ModeFull, transition.ModeEnter, transition.ModeExit} {
		animator := transition.NewProgressAnimator()

		completedAt := -1
		frame := 0
		animator.SetOnCompleted(func() {
			completedAt = frame
		})

		animator.Activate(mode)
		for frame = 1; frame <= 200 && completedAt < 0; frame++ {
			animator.Update(1.0 / 60.0)
		}

		fmt.Printf("mode=%s  completed at frame %d  final value=%.4f\n",
			mode, completedAt, animator.CurrentValue())
	}
}
