// Package entities 提供常用实体的工厂函数
package entities

import (
	"log"

	"github.com/decker502/emberquest/pkg/components"
	"github.com/decker502/emberquest/pkg/ecs"
)

// DialogueCallbacks 对话框回调函数集合
// 由外部场景传递回调逻辑，任意字段可为 nil
type DialogueCallbacks struct {
	OnChoice    func(choiceID string) // 玩家选定分支时触发
	OnVoiceCue  func(speaker string)  // 台词展示时触发（外部语音播放）
	OnCompleted func()                // 对话结束时触发
}

// NewDialogueBox 创建对话框实体
//
// 参数：
//   - em: EntityManager 实例
//   - lines: 台词表（通常来自 config.DialogueScript.ComponentLines）
//   - startID: 起始台词ID
//   - callbacks: 回调集合
//
// 返回：
//   - ecs.EntityID: 对话框实体ID
func NewDialogueBox(em *ecs.EntityManager, lines map[string]components.DialogueLine, startID string, callbacks DialogueCallbacks) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.DialogueComponent{
		Lines:           lines,
		CurrentID:       startID,
		State:           components.DialogueStateShowing,
		VoiceCuePending: true,
		OnChoice:        callbacks.OnChoice,
		OnVoiceCue:      callbacks.OnVoiceCue,
		OnCompleted:     callbacks.OnCompleted,
	})

	log.Printf("[DialogueFactory] Created dialogue box entity %d (start=%s, %d lines)", id, startID, len(lines))
	return id
}
