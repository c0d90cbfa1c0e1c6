package config

// UI 布局相关的常量配置
// 包括逻辑屏幕尺寸、对话框、提示横幅和过场文字的布局参数

// 逻辑屏幕尺寸
// 独立于实际窗口大小，Ebitengine 自动处理缩放
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

// 对话框布局
const (
	// DialogueBoxHeight 对话框高度（贴屏幕底部）
	DialogueBoxHeight = 160.0
	// DialogueBoxMargin 对话框与屏幕边缘的间距
	DialogueBoxMargin = 16.0
	// DialogueBoxPadding 对话框内边距
	DialogueBoxPadding = 14.0
	// DialogueLineHeight 对话文本行高
	DialogueLineHeight = 18.0
	// DialogueChoiceRowHeight 选项行高
	DialogueChoiceRowHeight = 26.0
)

// 提示横幅布局
const (
	// PromptBannerWidth 横幅宽度
	PromptBannerWidth = 420.0
	// PromptBannerHeight 横幅高度
	PromptBannerHeight = 72.0
	// PromptBannerTopY 横幅顶部 Y 坐标
	PromptBannerTopY = 60.0
	// PromptBannerSlideTime 横幅从视口上方滑入的时长（秒）
	PromptBannerSlideTime = 0.35
	// PromptDefaultDuration 默认展示时长（秒）
	PromptDefaultDuration = 2.5
)

// 过场文字横幅
// 两行文字各绘制一次实体层和一次偏移重影层
const (
	// TransitionBannerLine1 第一行文字
	TransitionBannerLine1 = "ENCOUNTER"
	// TransitionBannerLine2 第二行文字
	TransitionBannerLine2 = "BATTLE START"
	// TransitionGhostOffset 重影层偏移（像素）
	TransitionGhostOffset = 3.0
	// TransitionGhostOpacity 重影层透明度系数
	TransitionGhostOpacity = 0.35
)
