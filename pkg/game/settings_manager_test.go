package game

import "testing"

// TestDefaultSettings 测试默认设置值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.MusicVolume != 0.7 {
		t.Errorf("MusicVolume = %v, 期望 0.7", s.MusicVolume)
	}
	if s.SoundVolume != 0.8 {
		t.Errorf("SoundVolume = %v, 期望 0.8", s.SoundVolume)
	}
	if !s.MusicEnabled {
		t.Error("MusicEnabled 默认应为 true")
	}
	if s.SuppressFlashes {
		t.Error("SuppressFlashes 默认应为 false")
	}
	if s.HighContrastMode {
		t.Error("HighContrastMode 默认应为 false")
	}
}

// TestSettingsManagerDegradedMode 测试降级模式（gdata 为 nil）
func TestSettingsManagerDegradedMode(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager 失败: %v", err)
	}

	// 降级模式下 Load/Save 均不报错
	if err := sm.Load(); err != nil {
		t.Errorf("降级模式 Load 返回错误: %v", err)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("降级模式 Save 返回错误: %v", err)
	}

	if sm.GetSettings() == nil {
		t.Fatal("降级模式下设置不应为 nil")
	}
}

// TestSettingsAccessibilityFlags 测试无障碍开关的内存修改
func TestSettingsAccessibilityFlags(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	sm.SetSuppressFlashes(true)
	if !sm.GetSettings().SuppressFlashes {
		t.Error("SetSuppressFlashes(true) 未生效")
	}

	sm.SetHighContrastMode(true)
	if !sm.GetSettings().HighContrastMode {
		t.Error("SetHighContrastMode(true) 未生效")
	}

	sm.SetSuppressFlashes(false)
	if sm.GetSettings().SuppressFlashes {
		t.Error("SetSuppressFlashes(false) 未生效")
	}
}

// TestSettingsVolumeClamping 测试音量越界限制
func TestSettingsVolumeClamping(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"范围内", 0.5, 0.5},
		{"下越界", -0.2, 0.0},
		{"上越界", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, _ := NewSettingsManager(nil)
			sm.SetMusicVolume(tt.input)
			if got := sm.GetSettings().MusicVolume; got != tt.expected {
				t.Errorf("SetMusicVolume(%v) 后值为 %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}
