package config

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"

	"github.com/decker502/emberquest/pkg/embedded"
	"github.com/decker502/emberquest/pkg/transition"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// ThemeColors 主题三色组（yaml 格式为 "#RRGGBB"）
type ThemeColors struct {
	Accent     string `yaml:"accent"`     // 强调色
	Background string `yaml:"background"` // 底色
	Border     string `yaml:"border"`     // 中性色
}

// ThemeConfig 主题配置
// 包含普通调色板和高对比度变体。任一颜色缺失或格式非法时
// 静默降级为过场引擎文档化的回退色，不报错。
type ThemeConfig struct {
	Colors       ThemeColors `yaml:"colors"`
	HighContrast ThemeColors `yaml:"highContrast"`
}

// LoadTheme 从 yaml 数据解析主题配置
//
// 返回：
//   - *ThemeConfig: 解析出的配置
//   - error: yaml 反序列化失败时返回错误
func LoadTheme(data []byte) (*ThemeConfig, error) {
	var cfg ThemeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal theme config: %w", err)
	}
	return &cfg, nil
}

// LoadThemeEmbedded 从嵌入资源加载主题配置
// 加载失败不是致命错误：返回空配置（全回退色）并记录警告。
func LoadThemeEmbedded(path string) *ThemeConfig {
	data, err := embedded.ReadFile(path)
	if err != nil {
		log.Printf("[ThemeConfig] Warning: failed to read embedded theme %s: %v (using fallbacks)", path, err)
		return &ThemeConfig{}
	}

	cfg, err := LoadTheme(data)
	if err != nil {
		log.Printf("[ThemeConfig] Warning: %v (using fallbacks)", err)
		return &ThemeConfig{}
	}
	return cfg
}

// LoadThemeFile 从磁盘加载主题配置（开发模式热重载用）
func LoadThemeFile(path string) (*ThemeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}
	return LoadTheme(data)
}

// Palette 解析为过场引擎的调色板
//
// 参数：
//   - highContrast: 为 true 时使用高对比度变体（无障碍设置）
//
// 非法或缺失的颜色保持零值，由合成器替换为回退色。
func (c *ThemeConfig) Palette(highContrast bool) transition.Palette {
	colors := c.Colors
	if highContrast {
		colors = c.HighContrast
	}

	return transition.Palette{
		Accent:     parseHexColor(colors.Accent),
		Background: parseHexColor(colors.Background),
		Border:     parseHexColor(colors.Border),
	}
}

// parseHexColor 解析 "#RRGGBB" 格式的颜色
// 解析失败返回零值（Alpha=0，下游视为未解析）
func parseHexColor(s string) color.RGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}
	}

	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}
}

// WatchTheme 监听磁盘上的主题文件变化（仅开发模式）
// 文件每次写入后重新加载并通过 onChange 回调通知。
// 返回的 watcher 由调用方负责 Close。
//
// 该机制只用于调色阶段的快速迭代，发布构建使用嵌入资源。
func WatchTheme(path string, onChange func(*ThemeConfig)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create theme watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch theme file %s: %w", path, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == 0 {
					continue
				}
				cfg, err := LoadThemeFile(path)
				if err != nil {
					log.Printf("[ThemeConfig] Hot reload failed: %v", err)
					continue
				}
				log.Printf("[ThemeConfig] Theme reloaded from %s", path)
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[ThemeConfig] Watcher error: %v", err)
			}
		}
	}()

	log.Printf("[ThemeConfig] Watching %s for changes", path)
	return watcher, nil
}
