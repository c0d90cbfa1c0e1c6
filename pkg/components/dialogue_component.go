package components

import (
	"regexp"
	"strings"
)

// DialogueState 对话框状态机
type DialogueState int

const (
	// DialogueStateHidden 隐藏（初始/结束）
	DialogueStateHidden DialogueState = iota
	// DialogueStateShowing 展示普通台词，点击推进
	DialogueStateShowing
	// DialogueStateChoosing 展示分支选项，等待玩家选择
	DialogueStateChoosing
)

// ChoiceCategory 选项标签分类
// 选项文本可携带方括号标签（如 "[quest] 接受委托"），
// 解析后用于给选项行着色和排序。
type ChoiceCategory int

const (
	// CategoryNone 无标签的普通选项
	CategoryNone ChoiceCategory = iota
	// CategoryQuest 任务相关选项
	CategoryQuest
	// CategoryTutorial 教学相关选项
	CategoryTutorial
	// CategoryMilestone 里程碑相关选项
	CategoryMilestone
)

// String 返回分类名称（用于日志）
func (c ChoiceCategory) String() string {
	switch c {
	case CategoryQuest:
		return "quest"
	case CategoryTutorial:
		return "tutorial"
	case CategoryMilestone:
		return "milestone"
	default:
		return "none"
	}
}

// DialogueChoice 单个分支选项
type DialogueChoice struct {
	ID       string         // 选择后跳转的台词ID
	Label    string         // 原始文本（可能带方括号标签）
	Category ChoiceCategory // 解析出的分类
	Clean    string         // 去除标签后的展示文本
}

// DialogueLine 单条台词
type DialogueLine struct {
	Speaker string           // 说话者名称
	Text    string           // 台词正文
	NextID  string           // 无分支时的下一条台词ID，空表示对话结束
	Choices []DialogueChoice // 分支选项，非空时优先于 NextID
}

// DialogueComponent 对话框组件
// 持有整段对话脚本和当前推进位置，由 DialogueSystem 驱动。
type DialogueComponent struct {
	Lines     map[string]DialogueLine // 台词表：ID → 台词
	CurrentID string                  // 当前台词ID
	State     DialogueState

	// VoiceCuePending 当前台词的语音提示尚未触发
	// 创建和推进时置位，由 DialogueSystem 触发 OnVoiceCue 后清除
	VoiceCuePending bool

	// OnChoice 玩家选定分支时触发，参数为选项ID（可为 nil）
	OnChoice func(choiceID string)
	// OnVoiceCue 台词展示时触发，用于外部语音播放（可为 nil，本仓库不实现音频）
	OnVoiceCue func(speaker string)
	// OnCompleted 对话结束（NextID 为空且无分支）时触发一次（可为 nil）
	OnCompleted func()
}

// CurrentLine 返回当前台词
func (d *DialogueComponent) CurrentLine() (DialogueLine, bool) {
	line, ok := d.Lines[d.CurrentID]
	return line, ok
}

// choiceTagRegex 匹配选项文本前部的方括号标签，如 "[quest] "
var choiceTagRegex = regexp.MustCompile(`\[([a-zA-Z_]+)\]`)

// whitespaceRegex 折叠标签移除后留下的连续空白
var whitespaceRegex = regexp.MustCompile(`\s+`)

// ParseChoiceLabel 解析选项文本中的方括号标签
//
// 输入: "[quest] 接受村长的委托"
// 输出: (CategoryQuest, "接受村长的委托")
//
// 未知标签按无分类处理，但标签同样会被移除；
// 无标签的文本原样返回。
func ParseChoiceLabel(label string) (ChoiceCategory, string) {
	category := CategoryNone

	matches := choiceTagRegex.FindAllStringSubmatch(label, -1)
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		switch strings.ToLower(match[1]) {
		case "quest":
			category = CategoryQuest
		case "tutorial":
			category = CategoryTutorial
		case "milestone":
			category = CategoryMilestone
		}
	}

	clean := choiceTagRegex.ReplaceAllString(label, "")
	clean = strings.TrimSpace(clean)
	clean = whitespaceRegex.ReplaceAllString(clean, " ")

	return category, clean
}
