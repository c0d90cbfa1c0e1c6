package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/emberquest/pkg/config"
	"github.com/decker502/emberquest/pkg/ecs"
	"github.com/decker502/emberquest/pkg/entities"
	"github.com/decker502/emberquest/pkg/game"
	"github.com/decker502/emberquest/pkg/modules"
	"github.com/decker502/emberquest/pkg/systems"
	"github.com/decker502/emberquest/pkg/transition"
	"github.com/hajimehoshi/ebiten/v2"
)

// battlePhase 战斗场景的阶段机
type battlePhase int

const (
	phaseTransitionIn battlePhase = iota // 进场全过场
	phaseDialogue                        // 遭遇前对话
	phaseEncounterIn                     // 遭遇进入过场（停在遮盖位）
	phaseEncounterOut                    // 遭遇退出过场
	phaseBattle                          // 战斗演示
	phaseDone                            // 结算，等待返回菜单
)

// 战斗演示与结算展示时长（秒）
const (
	battleDemoDuration = 4.0
	resultLingerTime   = 3.0
)

// BattleScene 战斗场景
// 串联过场叠加层、对话框和提示横幅三个表现层组件：
// 进场 FULL 过场 → 对话 → ENTER 过场（遮盖位换场）→ EXIT 过场 → 战斗 → 结算
type BattleScene struct {
	sceneManager  *game.SceneManager
	entityManager *ecs.EntityManager

	dialogueSystem   *systems.DialogueSystem
	promptSystem     *systems.PromptSystem
	transitionModule *modules.BattleTransitionModule

	phase      battlePhase
	phaseTimer float64

	// 遮盖位下完成的"换场"：战斗背景在 ENTER 完成后切换
	battleStarted bool
}

// NewBattleScene 创建战斗场景
// theme 用于过场叠加层的调色板，可为 nil
func NewBattleScene(sceneManager *game.SceneManager, theme *config.ThemeConfig) *BattleScene {
	em := ecs.NewEntityManager()

	s := &BattleScene{
		sceneManager:   sceneManager,
		entityManager:  em,
		dialogueSystem: systems.NewDialogueSystem(em, config.GameWindowWidth, config.GameWindowHeight),
		promptSystem:   systems.NewPromptSystem(em, config.GameWindowWidth, config.GameWindowHeight),
		phase:          phaseTransitionIn,
	}

	s.transitionModule = modules.NewBattleTransitionModule(
		config.GameWindowWidth, config.GameWindowHeight, theme,
		modules.BattleTransitionCallbacks{OnFinished: s.onTransitionFinished},
	)
	s.syncAccessibility()

	// 进场全过场
	s.transitionModule.Show(transition.ModeFull)

	log.Printf("[BattleScene] Initialized")
	return s
}

// syncAccessibility 按当前设置同步过场模块的无障碍开关
func (s *BattleScene) syncAccessibility() {
	settings := game.GetGameState().GetSettingsManager().GetSettings()
	s.transitionModule.SetAccessibility(settings.SuppressFlashes, settings.HighContrastMode)
}

// onTransitionFinished 过场完成回调，按阶段推进场景状态机
func (s *BattleScene) onTransitionFinished() {
	switch s.phase {
	case phaseTransitionIn:
		s.phase = phaseDialogue
		s.startDialogue()

	case phaseEncounterIn:
		// 画面完全被遮盖：在此帧切换战斗背景，玩家看不到换场瞬间
		s.battleStarted = true
		s.phase = phaseEncounterOut
		s.transitionModule.Show(transition.ModeExit)

	case phaseEncounterOut:
		s.phase = phaseBattle
		s.phaseTimer = 0
		entities.NewWarningPrompt(s.entityManager, "Warning", "A powerful foe approaches!", 0)
	}
}

// startDialogue 加载嵌入的对话脚本并创建对话框实体
func (s *BattleScene) startDialogue() {
	script, err := config.LoadDialogueScriptEmbedded("data/dialogues/intro.yaml")
	if err != nil {
		// 脚本缺失直接进入遭遇过场，不阻断流程
		log.Printf("[BattleScene] Failed to load dialogue script: %v", err)
		s.beginEncounter()
		return
	}

	entities.NewDialogueBox(s.entityManager, script.ComponentLines(), script.Start, entities.DialogueCallbacks{
		OnChoice: func(choiceID string) {
			log.Printf("[BattleScene] Player chose: %s", choiceID)
		},
		OnVoiceCue: func(speaker string) {
			// 音频播放不在本仓库范围内，仅记录提示点
			log.Printf("[BattleScene] Voice cue: %s", speaker)
		},
		OnCompleted: s.beginEncounter,
	})
}

// beginEncounter 对话结束后进入遭遇过场
func (s *BattleScene) beginEncounter() {
	s.phase = phaseEncounterIn
	s.transitionModule.Show(transition.ModeEnter)
}

// Update 更新战斗场景
func (s *BattleScene) Update(deltaTime float64) {
	s.syncAccessibility()
	s.transitionModule.Update(deltaTime)

	// 叠加层可见期间吞掉指针输入：对话系统不参与更新
	if !s.transitionModule.IsVisible() {
		s.dialogueSystem.Update(deltaTime)
	}
	s.promptSystem.Update(deltaTime)

	switch s.phase {
	case phaseBattle:
		s.phaseTimer += deltaTime
		if s.phaseTimer >= battleDemoDuration {
			s.phase = phaseDone
			s.phaseTimer = 0

			gs := game.GetGameState()
			gs.BattlesWon++
			entities.NewRewardPrompt(s.entityManager, "Victory!", "Ember Blade", "added to inventory", 0)
			log.Printf("[BattleScene] Battle won (total: %d)", gs.BattlesWon)
		}

	case phaseDone:
		s.phaseTimer += deltaTime
		if s.phaseTimer >= resultLingerTime {
			s.sceneManager.LoadScene("menu")
		}
	}

	s.entityManager.RemoveMarkedEntities()
}

// Draw 渲染战斗场景
// 过场叠加层最后绘制，覆盖其余所有表现层
func (s *BattleScene) Draw(screen *ebiten.Image) {
	if s.battleStarted {
		screen.Fill(color.RGBA{R: 0x1C, G: 0x0E, B: 0x12, A: 0xFF}) // 战斗背景
	} else {
		screen.Fill(color.RGBA{R: 0x0E, G: 0x14, B: 0x1C, A: 0xFF}) // 野外背景
	}

	s.dialogueSystem.Draw(screen)
	s.promptSystem.Draw(screen)
	s.transitionModule.Draw(screen)
}
