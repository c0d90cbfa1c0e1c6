package config

import (
	"fmt"
	"log"

	"github.com/decker502/emberquest/pkg/components"
	"github.com/decker502/emberquest/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DialogueScriptChoice 脚本中的单个分支选项
type DialogueScriptChoice struct {
	ID    string `yaml:"id"`    // 选择后跳转的台词ID
	Label string `yaml:"label"` // 展示文本，可带方括号标签
}

// DialogueScriptLine 脚本中的单条台词
type DialogueScriptLine struct {
	Speaker string                 `yaml:"speaker"`
	Text    string                 `yaml:"text"`
	Next    string                 `yaml:"next"`    // 下一条台词ID，空表示结束
	Choices []DialogueScriptChoice `yaml:"choices"` // 非空时优先于 Next
}

// DialogueScript 一段完整的对话脚本
// 从 data/dialogues/*.yaml 加载，校验后转换为对话组件的台词表。
type DialogueScript struct {
	Start string                        `yaml:"start"`
	Lines map[string]DialogueScriptLine `yaml:"lines"`
}

// LoadDialogueScript 从 yaml 数据解析并校验对话脚本
//
// 校验规则：
//   - start 必须指向存在的台词
//   - 每条台词的 next 和选项 id 必须指向存在的台词或为空
//
// 返回：
//   - *DialogueScript: 校验通过的脚本
//   - error: 反序列化或校验失败
func LoadDialogueScript(data []byte) (*DialogueScript, error) {
	var script DialogueScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dialogue script: %w", err)
	}

	if len(script.Lines) == 0 {
		return nil, fmt.Errorf("dialogue script has no lines")
	}
	if _, ok := script.Lines[script.Start]; !ok {
		return nil, fmt.Errorf("dialogue script start %q does not exist", script.Start)
	}

	for id, line := range script.Lines {
		if line.Next != "" {
			if _, ok := script.Lines[line.Next]; !ok {
				return nil, fmt.Errorf("line %q: next %q does not exist", id, line.Next)
			}
		}
		for _, choice := range line.Choices {
			if _, ok := script.Lines[choice.ID]; !ok {
				return nil, fmt.Errorf("line %q: choice target %q does not exist", id, choice.ID)
			}
		}
	}

	return &script, nil
}

// LoadDialogueScriptEmbedded 从嵌入资源加载对话脚本
func LoadDialogueScriptEmbedded(path string) (*DialogueScript, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded dialogue %s: %w", path, err)
	}
	return LoadDialogueScript(data)
}

// ComponentLines 转换为对话组件的台词表
// 选项标签在此处解析一次，组件内只保留解析结果。
func (s *DialogueScript) ComponentLines() map[string]components.DialogueLine {
	lines := make(map[string]components.DialogueLine, len(s.Lines))

	for id, src := range s.Lines {
		line := components.DialogueLine{
			Speaker: src.Speaker,
			Text:    src.Text,
			NextID:  src.Next,
		}
		for _, c := range src.Choices {
			category, clean := components.ParseChoiceLabel(c.Label)
			line.Choices = append(line.Choices, components.DialogueChoice{
				ID:       c.ID,
				Label:    c.Label,
				Category: category,
				Clean:    clean,
			})
		}
		lines[id] = line
	}

	log.Printf("[DialogueConfig] Converted %d lines (start=%s)", len(lines), s.Start)
	return lines
}
