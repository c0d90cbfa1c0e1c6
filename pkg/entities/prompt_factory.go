package entities

import (
	"log"

	"github.com/decker502/emberquest/pkg/components"
	"github.com/decker502/emberquest/pkg/config"
	"github.com/decker502/emberquest/pkg/ecs"
)

// NewRewardPrompt 创建奖励横幅实体
// duration <= 0 时使用默认展示时长
func NewRewardPrompt(em *ecs.EntityManager, title, rewardName, body string, duration float64) ecs.EntityID {
	if duration <= 0 {
		duration = config.PromptDefaultDuration
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PromptComponent{
		Kind:       components.PromptReward,
		Title:      title,
		Body:       body,
		RewardName: rewardName,
		Remaining:  duration,
	})

	log.Printf("[PromptFactory] Created reward prompt entity %d (%s)", id, rewardName)
	return id
}

// NewWarningPrompt 创建警告横幅实体
// duration <= 0 时使用默认展示时长
func NewWarningPrompt(em *ecs.EntityManager, title, body string, duration float64) ecs.EntityID {
	if duration <= 0 {
		duration = config.PromptDefaultDuration
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PromptComponent{
		Kind:      components.PromptWarning,
		Title:     title,
		Body:      body,
		Remaining: duration,
	})

	log.Printf("[PromptFactory] Created warning prompt entity %d", id)
	return id
}
