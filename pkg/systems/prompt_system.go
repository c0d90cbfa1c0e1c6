package systems

import (
	"image/color"
	"log"

	"github.com/decker502/emberquest/pkg/components"
	"github.com/decker502/emberquest/pkg/config"
	"github.com/decker502/emberquest/pkg/ecs"
	"github.com/decker502/emberquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// PromptSystem 提示横幅系统
// 按变体将横幅实体分派到两种渲染器之一，倒计时结束后自动销毁
type PromptSystem struct {
	entityManager *ecs.EntityManager
	windowWidth   int
	windowHeight  int

	face text.Face

	rewardImage  *ebiten.Image // 奖励横幅底图
	warningImage *ebiten.Image // 警告横幅底图
}

// NewPromptSystem 创建提示横幅系统
func NewPromptSystem(em *ecs.EntityManager, windowWidth, windowHeight int) *PromptSystem {
	rewardImage := ebiten.NewImage(int(config.PromptBannerWidth), int(config.PromptBannerHeight))
	rewardImage.Fill(color.RGBA{R: 0x2A, G: 0x24, B: 0x10, A: 0xE0})

	warningImage := ebiten.NewImage(int(config.PromptBannerWidth), int(config.PromptBannerHeight))
	warningImage.Fill(color.RGBA{R: 0x2E, G: 0x0E, B: 0x10, A: 0xE0})

	log.Printf("[PromptSystem] Initialized")

	return &PromptSystem{
		entityManager: em,
		windowWidth:   windowWidth,
		windowHeight:  windowHeight,
		face:          text.NewGoXFace(basicfont.Face7x13),
		rewardImage:   rewardImage,
		warningImage:  warningImage,
	}
}

// Update 推进横幅倒计时，到期销毁实体
func (s *PromptSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.PromptComponent](s.entityManager)

	for _, entityID := range entities {
		comp, _ := ecs.GetComponent[*components.PromptComponent](s.entityManager, entityID)

		comp.Elapsed += dt
		comp.Remaining -= dt
		if comp.Remaining <= 0 {
			s.entityManager.DestroyEntity(entityID)
			log.Printf("[PromptSystem] Entity %d: %s banner expired", entityID, comp.Kind)
		}
	}
}

// Draw 渲染所有横幅
// 按变体分派：奖励横幅和警告横幅使用不同的渲染器
func (s *PromptSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith1[*components.PromptComponent](s.entityManager)

	for i, entityID := range entities {
		comp, _ := ecs.GetComponent[*components.PromptComponent](s.entityManager, entityID)

		y := s.bannerY(i, comp.Elapsed)

		switch comp.Kind {
		case components.PromptReward:
			s.drawRewardBanner(screen, comp, y)
		case components.PromptWarning:
			s.drawWarningBanner(screen, comp, y)
		default:
			log.Printf("[PromptSystem] Unknown prompt kind: %d", comp.Kind)
		}
	}
}

// bannerY 返回横幅当前帧的顶部 Y 坐标
// 入场时从视口上方二次缓出滑入目标位置，多个横幅纵向堆叠
func (s *PromptSystem) bannerY(index int, elapsed float64) float64 {
	targetY := config.PromptBannerTopY + float64(index)*(config.PromptBannerHeight+8)
	t := utils.Clamp01(elapsed / config.PromptBannerSlideTime)
	return utils.Lerp(-config.PromptBannerHeight, targetY, utils.EaseOutQuad(t))
}

// drawRewardBanner 奖励横幅：金色标题 + 奖励名称
func (s *PromptSystem) drawRewardBanner(screen *ebiten.Image, comp *components.PromptComponent, y float64) {
	x := (float64(s.windowWidth) - config.PromptBannerWidth) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(s.rewardImage, op)

	s.drawCentered(screen, comp.Title, y+14, color.RGBA{R: 0xFF, G: 0xC8, B: 0x4A, A: 0xFF})

	body := comp.Body
	if comp.RewardName != "" {
		body = comp.RewardName + " - " + comp.Body
	}
	s.drawCentered(screen, body, y+38, color.White)
}

// drawWarningBanner 警告横幅：红色标题 + 正文
func (s *PromptSystem) drawWarningBanner(screen *ebiten.Image, comp *components.PromptComponent, y float64) {
	x := (float64(s.windowWidth) - config.PromptBannerWidth) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(s.warningImage, op)

	s.drawCentered(screen, comp.Title, y+14, color.RGBA{R: 0xFF, G: 0x5A, B: 0x5A, A: 0xFF})
	s.drawCentered(screen, comp.Body, y+38, color.White)
}

// drawCentered 水平居中绘制单行文本
func (s *PromptSystem) drawCentered(screen *ebiten.Image, str string, y float64, clr color.Color) {
	if str == "" {
		return
	}
	width, _ := text.Measure(str, s.face, config.DialogueLineHeight)
	op := &text.DrawOptions{}
	op.GeoM.Translate((float64(s.windowWidth)-width)/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, s.face, op)
}
