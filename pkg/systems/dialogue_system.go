package systems

import (
	"image/color"
	"log"
	"strings"

	"github.com/decker502/emberquest/pkg/components"
	"github.com/decker502/emberquest/pkg/config"
	"github.com/decker502/emberquest/pkg/ecs"
	"github.com/decker502/emberquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// DialogueSystem 对话框系统
// 管理对话框的推进、分支选择、语音提示回调和渲染
//
// 职责：
//   - 处理状态机：Hidden → Showing / Choosing → Hidden
//   - 点击推进无分支台词，点击选项行选定分支
//   - 台词切换时触发外部语音回调（本仓库不实现音频播放）
//   - 渲染对话框面板、说话者、正文和选项行
type DialogueSystem struct {
	entityManager *ecs.EntityManager
	windowWidth   int
	windowHeight  int

	face text.Face // 对话字体

	panelImage *ebiten.Image // 面板底图（纯色，复用避免每帧分配）

	// 输入源，默认轮询 ebiten；测试注入固定输入
	readInput func() utils.InputState
}

// NewDialogueSystem 创建对话框系统
//
// 参数：
//   - em: EntityManager 实例
//   - windowWidth/windowHeight: 逻辑屏幕尺寸
func NewDialogueSystem(em *ecs.EntityManager, windowWidth, windowHeight int) *DialogueSystem {
	panelW := windowWidth - 2*int(config.DialogueBoxMargin)
	panelImage := ebiten.NewImage(panelW, int(config.DialogueBoxHeight))
	panelImage.Fill(color.RGBA{R: 0x14, G: 0x12, B: 0x1A, A: 0xE0})

	log.Printf("[DialogueSystem] Initialized")

	return &DialogueSystem{
		entityManager: em,
		windowWidth:   windowWidth,
		windowHeight:  windowHeight,
		face:          text.NewGoXFace(basicfont.Face7x13),
		panelImage:    panelImage,
		readInput:     utils.GetInputState,
	}
}

// SetInputSource 替换输入源
// Ebiten 的输入只能在运行中的游戏循环里轮询，测试注入固定输入
func (s *DialogueSystem) SetInputSource(fn func() utils.InputState) {
	if fn != nil {
		s.readInput = fn
	}
}

// Update 更新对话系统状态
// 处理点击推进和分支选择
func (s *DialogueSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.DialogueComponent](s.entityManager)
	if len(entities) == 0 {
		return
	}

	input := s.readInput()

	for _, entityID := range entities {
		comp, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, entityID)
		if comp.State == components.DialogueStateHidden {
			continue
		}

		line, ok := comp.CurrentLine()
		if !ok {
			// 脚本数据缺失按对话结束处理，不报错
			log.Printf("[DialogueSystem] Entity %d: missing line %q, closing", entityID, comp.CurrentID)
			s.finish(entityID, comp)
			continue
		}

		// 状态由当前台词内容派生：有分支即进入选择态
		if len(line.Choices) > 0 {
			comp.State = components.DialogueStateChoosing
		} else {
			comp.State = components.DialogueStateShowing
		}

		// 触发待发的语音提示
		if comp.VoiceCuePending {
			comp.VoiceCuePending = false
			if comp.OnVoiceCue != nil {
				comp.OnVoiceCue(line.Speaker)
			}
		}

		if !input.JustPressed {
			continue
		}

		switch comp.State {
		case components.DialogueStateShowing:
			s.advance(entityID, comp, line)
		case components.DialogueStateChoosing:
			if choiceID, hit := s.choiceAt(input.X, input.Y, line); hit {
				s.selectChoice(entityID, comp, choiceID)
			}
		}
	}
}

// advance 推进到下一条台词；NextID 为空表示对话结束
func (s *DialogueSystem) advance(entityID ecs.EntityID, comp *components.DialogueComponent, line components.DialogueLine) {
	if line.NextID == "" {
		s.finish(entityID, comp)
		return
	}

	comp.CurrentID = line.NextID
	comp.VoiceCuePending = true

	log.Printf("[DialogueSystem] Entity %d: advanced to line %q", entityID, comp.CurrentID)
}

// selectChoice 选定分支选项并跳转
func (s *DialogueSystem) selectChoice(entityID ecs.EntityID, comp *components.DialogueComponent, choiceID string) {
	if comp.OnChoice != nil {
		comp.OnChoice(choiceID)
	}

	comp.CurrentID = choiceID
	comp.VoiceCuePending = true

	log.Printf("[DialogueSystem] Entity %d: choice selected: %q", entityID, choiceID)
}

// finish 结束对话：触发完成回调并销毁实体
func (s *DialogueSystem) finish(entityID ecs.EntityID, comp *components.DialogueComponent) {
	comp.State = components.DialogueStateHidden

	if comp.OnCompleted != nil {
		comp.OnCompleted()
	}

	s.entityManager.DestroyEntity(entityID)

	log.Printf("[DialogueSystem] Entity %d: dialogue finished", entityID)
}

// panelRect 返回对话框面板的屏幕区域
func (s *DialogueSystem) panelRect() (x, y, w, h float64) {
	w = float64(s.windowWidth) - 2*config.DialogueBoxMargin
	h = config.DialogueBoxHeight
	x = config.DialogueBoxMargin
	y = float64(s.windowHeight) - h - config.DialogueBoxMargin
	return x, y, w, h
}

// choiceAt 命中测试：返回屏幕坐标处的选项ID
// 布局必须与 drawChoices 保持一致
func (s *DialogueSystem) choiceAt(px, py int, line components.DialogueLine) (string, bool) {
	x, y, w, _ := s.panelRect()

	rowX := x + config.DialogueBoxPadding
	rowW := w - 2*config.DialogueBoxPadding
	startY := y + config.DialogueBoxPadding + 2*config.DialogueLineHeight

	for i, choice := range line.Choices {
		rowY := startY + float64(i)*config.DialogueChoiceRowHeight
		if float64(px) >= rowX && float64(px) <= rowX+rowW &&
			float64(py) >= rowY && float64(py) <= rowY+config.DialogueChoiceRowHeight {
			return choice.ID, true
		}
	}
	return "", false
}

// Draw 渲染对话框
func (s *DialogueSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith1[*components.DialogueComponent](s.entityManager)

	for _, entityID := range entities {
		comp, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, entityID)
		if comp.State == components.DialogueStateHidden {
			continue
		}

		line, ok := comp.CurrentLine()
		if !ok {
			continue
		}

		x, y, w, _ := s.panelRect()

		// 面板背景
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(s.panelImage, op)

		textX := x + config.DialogueBoxPadding
		textY := y + config.DialogueBoxPadding

		// 说话者
		s.drawText(screen, line.Speaker, textX, textY, color.RGBA{R: 0xFF, G: 0xC8, B: 0x4A, A: 0xFF})

		// 正文（自动换行）
		maxWidth := w - 2*config.DialogueBoxPadding
		for i, wrapped := range s.wrapText(line.Text, maxWidth) {
			lineY := textY + config.DialogueLineHeight*float64(i+1)
			s.drawText(screen, wrapped, textX, lineY, color.White)
		}

		// 分支选项
		if comp.State == components.DialogueStateChoosing {
			s.drawChoices(screen, line)
		} else {
			// 点击继续提示
			hint := "click to continue"
			hintW, _ := text.Measure(hint, s.face, config.DialogueLineHeight)
			s.drawText(screen, hint, x+w-hintW-config.DialogueBoxPadding,
				y+config.DialogueBoxHeight-config.DialogueBoxPadding-config.DialogueLineHeight,
				color.RGBA{R: 0x9A, G: 0x9A, B: 0x9A, A: 0xFF})
		}
	}
}

// drawChoices 渲染选项行，分类决定行首强调色
func (s *DialogueSystem) drawChoices(screen *ebiten.Image, line components.DialogueLine) {
	x, y, _, _ := s.panelRect()

	rowX := x + config.DialogueBoxPadding
	startY := y + config.DialogueBoxPadding + 2*config.DialogueLineHeight

	for i, choice := range line.Choices {
		rowY := startY + float64(i)*config.DialogueChoiceRowHeight

		marker := "-"
		if choice.Category != components.CategoryNone {
			marker = "*"
		}
		label := marker + " " + choice.Clean

		s.drawText(screen, label, rowX, rowY, categoryColor(choice.Category))
	}
}

// drawText 在指定位置绘制单行文本
func (s *DialogueSystem) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, s.face, op)
}

// wrapText 按宽度自动换行（以空格为断点，长词按字符断开）
func (s *DialogueSystem) wrapText(str string, maxWidth float64) []string {
	var lines []string
	var current string

	for _, word := range strings.Fields(str) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		width, _ := text.Measure(candidate, s.face, config.DialogueLineHeight)
		if width > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{str}
	}
	return lines
}

// categoryColor 返回选项分类对应的文本颜色
func categoryColor(c components.ChoiceCategory) color.RGBA {
	switch c {
	case components.CategoryQuest:
		return color.RGBA{R: 0xFF, G: 0xC8, B: 0x4A, A: 0xFF} // 金色
	case components.CategoryTutorial:
		return color.RGBA{R: 0x6E, G: 0xC1, B: 0xFF, A: 0xFF} // 蓝色
	case components.CategoryMilestone:
		return color.RGBA{R: 0xC8, G: 0x8C, B: 0xFF, A: 0xFF} // 紫色
	default:
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
}
