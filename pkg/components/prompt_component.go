package components

// PromptKind 提示横幅变体
// PromptComponent 按变体分派到两种横幅渲染器之一。
type PromptKind int

const (
	// PromptReward 奖励横幅（获得道具/解锁内容）
	PromptReward PromptKind = iota
	// PromptWarning 警告横幅（强敌接近/危险区域）
	PromptWarning
)

// String 返回变体名称（用于日志）
func (k PromptKind) String() string {
	switch k {
	case PromptReward:
		return "reward"
	case PromptWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// PromptComponent 提示横幅组件
// 标签联合：Kind 决定使用哪部分载荷和哪种渲染器。
// Remaining 倒计时归零后由 PromptSystem 自动销毁实体。
type PromptComponent struct {
	Kind PromptKind

	// 公共载荷
	Title string
	Body  string

	// 奖励变体载荷
	RewardName string

	// Remaining 剩余展示时间（秒）
	Remaining float64

	// Elapsed 已展示时间（秒），驱动滑入动画
	Elapsed float64
}
