package game

import "log"

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	settingsManager *SettingsManager

	// BattlesWon 本次会话完成的战斗次数（演示用统计）
	BattlesWon int
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = &GameState{}
	}
	return globalGameState
}

// SetSettingsManager 注入设置管理器（应用启动时调用一次）
func (gs *GameState) SetSettingsManager(sm *SettingsManager) {
	gs.settingsManager = sm
}

// GetSettingsManager 返回设置管理器
// 未注入时返回降级模式的管理器（仅内存设置），保证调用方永不拿到 nil
func (gs *GameState) GetSettingsManager() *SettingsManager {
	if gs.settingsManager == nil {
		log.Printf("[GameState] Warning: SettingsManager not injected, using in-memory fallback")
		gs.settingsManager, _ = NewSettingsManager(nil)
	}
	return gs.settingsManager
}
