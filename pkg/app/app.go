// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"sync"

	"github.com/decker502/emberquest/pkg/config"
	"github.com/decker502/emberquest/pkg/game"
	"github.com/decker502/emberquest/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// themePath 主题配置在嵌入资源中的路径
const themePath = "assets/config/theme.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Dev 启用开发模式：监听磁盘上的主题文件并热重载
	Dev bool
	// Scene 启动场景ID（"menu" 或 "battle"），为空则默认主菜单
	Scene string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	verbose      bool

	// 当前主题；开发模式下可被热重载替换
	themeMu sync.Mutex
	theme   *config.ThemeConfig

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化设置持久化
	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "emberquest",
	})
	if err != nil {
		// 存储不可用时设置管理器进入降级模式，游戏仍可运行
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}
	game.GetGameState().SetSettingsManager(settingsManager)

	// 应用已保存的全屏设置
	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	a := &App{
		verbose: cfg.Verbose,
		theme:   config.LoadThemeEmbedded(themePath),
	}

	// 开发模式：监听磁盘主题文件；回调在 watcher goroutine 上触发，
	// 先写入受锁保护的字段，新建场景时再读取
	if cfg.Dev {
		if _, err := config.WatchTheme(themePath, func(theme *config.ThemeConfig) {
			a.themeMu.Lock()
			a.theme = theme
			a.themeMu.Unlock()
			log.Printf("[App] Theme reloaded from %s", themePath)
		}); err != nil {
			log.Printf("[App] Warning: theme watch failed: %v", err)
		}
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(sceneID string) game.Scene {
		switch sceneID {
		case "menu":
			return scenes.NewMainMenuScene(sceneManager)
		case "battle":
			return scenes.NewBattleScene(sceneManager, a.currentTheme())
		default:
			log.Printf("[App] Unknown scene ID: %s", sceneID)
			return nil
		}
	})
	a.sceneManager = sceneManager

	// 确定启动场景
	startScene := cfg.Scene
	if startScene == "" {
		startScene = "menu"
	}
	log.Printf("[App] Starting scene: %s", startScene)
	sceneManager.LoadScene(startScene)

	return a, nil
}

// currentTheme 返回当前主题（开发模式下可能已被热重载）
func (a *App) currentTheme() *config.ThemeConfig {
	a.themeMu.Lock()
	defer a.themeMu.Unlock()
	return a.theme
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
