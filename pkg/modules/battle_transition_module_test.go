package modules

import (
	"testing"

	"github.com/decker502/emberquest/pkg/transition"
)

const testDt = 1.0 / 60.0

// stepUntilIdle 推进模块直到可见性稳定或超出帧数上限
func stepUntilIdle(m *BattleTransitionModule, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		m.Update(testDt)
	}
	return maxFrames
}

func newTestModule(onFinished func()) *BattleTransitionModule {
	return NewBattleTransitionModule(800, 600, nil, BattleTransitionCallbacks{
		OnFinished: onFinished,
	})
}

func TestShowHideLifecycle(t *testing.T) {
	m := newTestModule(nil)

	if m.IsVisible() {
		t.Error("初始状态不应可见")
	}

	m.Show(transition.ModeFull)
	if !m.IsVisible() {
		t.Error("Show 后应可见")
	}
	if m.CurrentProgress() != 0 {
		t.Errorf("FULL 模式起始进度应为 0，实际 %v", m.CurrentProgress())
	}

	m.Hide()
	if m.IsVisible() {
		t.Error("Hide 后不应可见")
	}
}

func TestFullModeFinishesOnceAndAutoHides(t *testing.T) {
	finished := 0
	m := newTestModule(func() { finished++ })

	m.Show(transition.ModeFull)

	// FULL 1400ms，60fps 下约 84 帧；多推若干帧验证不重复触发
	stepUntilIdle(m, 200)

	if finished != 1 {
		t.Errorf("OnFinished 应恰好触发一次，实际 %d 次", finished)
	}
	if m.IsVisible() {
		t.Error("FULL 模式完成后应自动隐藏")
	}
}

func TestEnterModeStaysCovered(t *testing.T) {
	finished := 0
	m := newTestModule(func() { finished++ })

	m.Show(transition.ModeEnter)
	stepUntilIdle(m, 200)

	if finished != 1 {
		t.Errorf("OnFinished 应恰好触发一次，实际 %d 次", finished)
	}
	if !m.IsVisible() {
		t.Error("ENTER 模式完成后应保持覆盖")
	}
	if got := m.CurrentProgress(); got != transition.EnterHoldProgress {
		t.Errorf("ENTER 模式完成后进度应停在 %v，实际 %v", transition.EnterHoldProgress, got)
	}

	// 宿主随后播放 EXIT：从 0.85 续到 1.0 并自动隐藏
	m.Show(transition.ModeExit)
	stepUntilIdle(m, 60)

	if finished != 2 {
		t.Errorf("EXIT 完成后 OnFinished 累计应为 2 次，实际 %d 次", finished)
	}
	if m.IsVisible() {
		t.Error("EXIT 模式完成后应自动隐藏")
	}
}

func TestHideBlocksPendingFinish(t *testing.T) {
	finished := 0
	m := newTestModule(func() { finished++ })

	m.Show(transition.ModeFull)
	// 推到终点帧但不给下一帧处理完成信号的机会
	for i := 0; i < 200; i++ {
		m.Update(testDt)
		if m.CurrentProgress() >= 1.0 {
			break
		}
	}
	m.Hide()

	stepUntilIdle(m, 10)
	if finished != 0 {
		t.Errorf("Hide 之后 OnFinished 不应触发，实际触发 %d 次", finished)
	}
}

func TestShowWhileVisibleReplacesActivation(t *testing.T) {
	finished := 0
	m := newTestModule(func() { finished++ })

	m.Show(transition.ModeFull)
	stepUntilIdle(m, 10)

	// 中途重新激活：旧动画器作废，新激活从头计时
	m.Show(transition.ModeEnter)
	if m.CurrentProgress() != 0 {
		t.Errorf("重新激活后进度应重置为 0，实际 %v", m.CurrentProgress())
	}

	stepUntilIdle(m, 200)
	if finished != 1 {
		t.Errorf("旧激活的完成信号不应泄漏，OnFinished 应为 1 次，实际 %d 次", finished)
	}
	if !m.IsVisible() {
		t.Error("ENTER 重新激活完成后应保持覆盖")
	}
}

func TestEnterHoldCoversViewport(t *testing.T) {
	m := newTestModule(nil)

	m.Show(transition.ModeEnter)
	m.Update(testDt)
	if _, ok := m.holdCoverRect(m.palette); ok {
		t.Error("ENTER 推进途中不应产出兜底矩形")
	}

	stepUntilIdle(m, 200)
	if !m.IsVisible() {
		t.Fatal("ENTER 完成后应保持覆盖")
	}

	cover, ok := m.holdCoverRect(m.palette)
	if !ok {
		t.Fatal("ENTER 停驻期间应产出全视口兜底矩形")
	}
	// 矩形须超出视口各边，绕中心旋转后四角仍被覆盖
	if cover.X > 0 || cover.Y > 0 || cover.X+cover.W < 800 || cover.Y+cover.H < 600 {
		t.Errorf("兜底矩形未覆盖视口: %+v", cover)
	}
	if cover.Opacity != 1.0 {
		t.Errorf("兜底矩形应完全不透明，实际 %v", cover.Opacity)
	}
	if cover.Color.A == 0 {
		t.Errorf("兜底矩形颜色未解析到回退色: %+v", cover.Color)
	}

	// EXIT 起步帧同样停驻在 0.85：第一次 tick 前保持兜底
	m.Show(transition.ModeExit)
	if _, ok := m.holdCoverRect(m.palette); !ok {
		t.Error("EXIT 起步帧应产出兜底矩形")
	}
	m.Update(testDt)
	if _, ok := m.holdCoverRect(m.palette); ok {
		t.Error("EXIT 推进后不应再产出兜底矩形")
	}
}

func TestFullModeNeverUsesHoldCover(t *testing.T) {
	m := newTestModule(nil)

	m.Show(transition.ModeFull)
	for i := 0; i < 200 && m.IsVisible(); i++ {
		if _, ok := m.holdCoverRect(m.palette); ok {
			t.Fatalf("FULL 模式第 %d 帧不应产出兜底矩形", i)
		}
		m.Update(testDt)
	}
}

func TestFinishDeferredOneFrame(t *testing.T) {
	finished := false
	m := newTestModule(func() { finished = true })

	m.Show(transition.ModeExit)

	// 步长取 1/64 秒（二进制可精确表示），16 帧累计恰好 250ms
	const exactDt = 1.0 / 64.0
	for i := 0; i < 16; i++ {
		m.Update(exactDt)
	}
	if m.CurrentProgress() != 1.0 {
		t.Fatalf("16 帧后 EXIT 应到达终点，实际进度 %v", m.CurrentProgress())
	}
	if finished {
		t.Error("OnFinished 不应在终点帧当帧触发")
	}

	m.Update(exactDt)
	if !finished {
		t.Error("OnFinished 应在终点帧的下一帧触发")
	}
}
