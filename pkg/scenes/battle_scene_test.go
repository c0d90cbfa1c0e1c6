package scenes

import (
	"testing"

	"github.com/decker502/emberquest/pkg/components"
	"github.com/decker502/emberquest/pkg/ecs"
	"github.com/decker502/emberquest/pkg/entities"
	"github.com/decker502/emberquest/pkg/game"
	"github.com/decker502/emberquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

type stubScene struct{}

func (s *stubScene) Update(deltaTime float64) {}
func (s *stubScene) Draw(screen *ebiten.Image) {}

// stepUntil 以 60fps 推进场景直到谓词成立，返回是否在帧数上限内达成
func stepUntil(s *BattleScene, maxFrames int, pred func() bool) bool {
	for i := 0; i < maxFrames; i++ {
		if pred() {
			return true
		}
		s.Update(1.0 / 60.0)
	}
	return pred()
}

// 嵌入资源未初始化时对话脚本加载失败，场景应跳过对话直接进入遭遇流程
func TestBattleSceneFlowWithoutDialogueScript(t *testing.T) {
	sm := game.NewSceneManager()

	var loaded []string
	sm.SetSceneFactory(func(sceneID string) game.Scene {
		loaded = append(loaded, sceneID)
		return &stubScene{}
	})

	s := NewBattleScene(sm, nil)

	if s.phase != phaseTransitionIn {
		t.Fatalf("初始阶段应为进场过场，实际 %v", s.phase)
	}
	if !s.transitionModule.IsVisible() {
		t.Fatal("进场过场应立即可见")
	}

	// 进场 FULL 完成后对话加载失败，直接进入 ENTER 遭遇过场
	if !stepUntil(s, 120, func() bool { return s.phase == phaseEncounterIn }) {
		t.Fatalf("进场过场完成后应进入遭遇过场，实际阶段 %v", s.phase)
	}

	// ENTER 完成：遮盖位下换场，随即播放 EXIT
	if !stepUntil(s, 120, func() bool { return s.phase == phaseEncounterOut }) {
		t.Fatalf("遭遇过场应推进到退出阶段，实际阶段 %v", s.phase)
	}
	if !s.battleStarted {
		t.Error("ENTER 完成后应已在遮盖位切换战斗背景")
	}

	// EXIT 完成：进入战斗，叠加层隐藏
	if !stepUntil(s, 60, func() bool { return s.phase == phaseBattle }) {
		t.Fatalf("退出过场完成后应进入战斗阶段，实际阶段 %v", s.phase)
	}
	if s.transitionModule.IsVisible() {
		t.Error("战斗阶段过场叠加层应已隐藏")
	}

	// 战斗演示结束：结算阶段
	wonBefore := game.GetGameState().BattlesWon
	if !stepUntil(s, 300, func() bool { return s.phase == phaseDone }) {
		t.Fatalf("战斗演示结束后应进入结算阶段，实际阶段 %v", s.phase)
	}
	if got := game.GetGameState().BattlesWon; got != wonBefore+1 {
		t.Errorf("结算后战斗计数应加一，实际 %d → %d", wonBefore, got)
	}

	// 结算停留结束：返回主菜单
	if !stepUntil(s, 300, func() bool { return len(loaded) > 0 }) {
		t.Fatal("结算停留结束后应请求返回主菜单")
	}
	if loaded[0] != "menu" {
		t.Errorf("应加载 menu 场景，实际 %q", loaded[0])
	}
}

// 叠加层可见期间底层场景不得处理指针输入：
// 对话系统被 IsVisible 门禁跳过，点击不得推进对话
func TestOverlayGatesDialogueClicks(t *testing.T) {
	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(sceneID string) game.Scene { return &stubScene{} })

	s := NewBattleScene(sm, nil)

	// 每帧都有一次点击落在对话框内
	s.dialogueSystem.SetInputSource(func() utils.InputState {
		return utils.InputState{JustPressed: true, X: 400, Y: 440}
	})

	// 手工投放一段两行对话（嵌入脚本在测试环境不可用）
	lines := map[string]components.DialogueLine{
		"intro": {Speaker: "Elder", Text: "Hold.", NextID: "end"},
		"end":   {Speaker: "Elder", Text: "Go.", NextID: ""},
	}
	id := entities.NewDialogueBox(s.entityManager, lines, "intro", entities.DialogueCallbacks{})

	if !s.transitionModule.IsVisible() {
		t.Fatal("进场过场应可见")
	}

	// 叠加层覆盖期间连续点击若干帧：对话不得推进
	for i := 0; i < 10; i++ {
		s.Update(1.0 / 60.0)
	}
	comp, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, id)
	if comp.CurrentID != "intro" {
		t.Errorf("叠加层覆盖期间点击不应推进对话，当前台词 %q", comp.CurrentID)
	}

	// 叠加层隐藏后同样的点击立即生效
	s.transitionModule.Hide()
	s.Update(1.0 / 60.0)
	if comp.CurrentID != "end" {
		t.Errorf("叠加层隐藏后点击应推进对话，当前台词 %q", comp.CurrentID)
	}
}
