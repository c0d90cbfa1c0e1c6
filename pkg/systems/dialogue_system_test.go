package systems

import (
	"testing"

	"github.com/decker502/emberquest/pkg/components"
	"github.com/decker502/emberquest/pkg/ecs"
	"github.com/decker502/emberquest/pkg/entities"
)

// testLines 构造一个三条台词的测试脚本：
// intro → branch（两个分支）→ quest/skip → 结束
func testLines() map[string]components.DialogueLine {
	return map[string]components.DialogueLine{
		"intro": {Speaker: "Elder", Text: "Welcome, traveler.", NextID: "branch"},
		"branch": {Speaker: "Elder", Text: "Will you help us?", Choices: []components.DialogueChoice{
			{ID: "quest", Label: "[quest] I will help.", Category: components.CategoryQuest, Clean: "I will help."},
			{ID: "skip", Label: "Not now.", Category: components.CategoryNone, Clean: "Not now."},
		}},
		"quest": {Speaker: "Elder", Text: "Thank you.", NextID: ""},
		"skip":  {Speaker: "Elder", Text: "Very well.", NextID: ""},
	}
}

func TestDialogueAdvance(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewDialogueSystem(em, 800, 600)

	id := entities.NewDialogueBox(em, testLines(), "intro", entities.DialogueCallbacks{})
	comp, _ := ecs.GetComponent[*components.DialogueComponent](em, id)
	comp.VoiceCuePending = false

	line, _ := comp.CurrentLine()
	s.advance(id, comp, line)

	if comp.CurrentID != "branch" {
		t.Errorf("推进后应到达 branch，实际 %q", comp.CurrentID)
	}
	if !comp.VoiceCuePending {
		t.Error("推进后应重新挂起语音提示")
	}
}

func TestDialogueFinishFiresCallbackAndDestroys(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewDialogueSystem(em, 800, 600)

	completed := false
	id := entities.NewDialogueBox(em, testLines(), "quest", entities.DialogueCallbacks{
		OnCompleted: func() { completed = true },
	})
	comp, _ := ecs.GetComponent[*components.DialogueComponent](em, id)

	// quest 的 NextID 为空：推进即结束
	line, _ := comp.CurrentLine()
	s.advance(id, comp, line)

	if !completed {
		t.Error("对话结束应触发 OnCompleted")
	}
	if comp.State != components.DialogueStateHidden {
		t.Errorf("结束后状态应为 Hidden，实际 %v", comp.State)
	}

	em.RemoveMarkedEntities()
	if got := len(ecs.GetEntitiesWith1[*components.DialogueComponent](em)); got != 0 {
		t.Errorf("结束后实体应被销毁，剩余 %d 个", got)
	}
}

func TestDialogueSelectChoice(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewDialogueSystem(em, 800, 600)

	var chosen string
	id := entities.NewDialogueBox(em, testLines(), "branch", entities.DialogueCallbacks{
		OnChoice: func(choiceID string) { chosen = choiceID },
	})
	comp, _ := ecs.GetComponent[*components.DialogueComponent](em, id)
	comp.VoiceCuePending = false

	s.selectChoice(id, comp, "quest")

	if chosen != "quest" {
		t.Errorf("OnChoice 应收到 quest，实际 %q", chosen)
	}
	if comp.CurrentID != "quest" {
		t.Errorf("选定后应跳转到 quest，实际 %q", comp.CurrentID)
	}
	if !comp.VoiceCuePending {
		t.Error("选定后应重新挂起语音提示")
	}
}

func TestDialogueChoiceHitTest(t *testing.T) {
	s := NewDialogueSystem(ecs.NewEntityManager(), 800, 600)
	line := testLines()["branch"]

	// 面板 y=424，选项行起点 y=474，每行高 26
	tests := []struct {
		name   string
		x, y   int
		wantID string
		hit    bool
	}{
		{"第一行命中", 100, 480, "quest", true},
		{"第二行命中", 100, 505, "skip", true},
		{"面板内但在选项区上方", 100, 460, "", false},
		{"面板左侧留白", 5, 480, "", false},
		{"选项区下方", 100, 560, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, hit := s.choiceAt(tt.x, tt.y, line)
			if hit != tt.hit || id != tt.wantID {
				t.Errorf("choiceAt(%d, %d) = (%q, %v)，期望 (%q, %v)", tt.x, tt.y, id, hit, tt.wantID, tt.hit)
			}
		})
	}
}

func TestDialogueVoiceCueFiresOncePerLine(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewDialogueSystem(em, 800, 600)

	var cues []string
	entities.NewDialogueBox(em, testLines(), "intro", entities.DialogueCallbacks{
		OnVoiceCue: func(speaker string) { cues = append(cues, speaker) },
	})

	// 多帧更新：语音提示只在台词首次展示时触发一次
	for i := 0; i < 5; i++ {
		s.Update(1.0 / 60.0)
	}

	if len(cues) != 1 || cues[0] != "Elder" {
		t.Errorf("语音提示应触发一次且说话者为 Elder，实际 %v", cues)
	}
}

func TestDialogueMissingLineCloses(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewDialogueSystem(em, 800, 600)

	completed := false
	entities.NewDialogueBox(em, testLines(), "no-such-line", entities.DialogueCallbacks{
		OnCompleted: func() { completed = true },
	})

	s.Update(1.0 / 60.0)
	em.RemoveMarkedEntities()

	if !completed {
		t.Error("台词缺失应按对话结束处理并触发 OnCompleted")
	}
	if got := len(ecs.GetEntitiesWith1[*components.DialogueComponent](em)); got != 0 {
		t.Errorf("台词缺失应销毁实体，剩余 %d 个", got)
	}
}

func TestWrapText(t *testing.T) {
	s := NewDialogueSystem(ecs.NewEntityManager(), 800, 600)

	lines := s.wrapText("The ember wakes and the long night ends for everyone in the valley below", 200)
	if len(lines) < 2 {
		t.Errorf("长文本应换行为多行，实际 %d 行: %v", len(lines), lines)
	}

	if got := s.wrapText("short", 200); len(got) != 1 || got[0] != "short" {
		t.Errorf("短文本应保持单行，实际 %v", got)
	}
}
