package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// stubScene 测试用场景，记录 Update 调用
type stubScene struct {
	updates int
}

func (s *stubScene) Update(deltaTime float64)  { s.updates++ }
func (s *stubScene) Draw(screen *ebiten.Image) {}

// TestSceneManagerSwitchTo 测试场景切换后只更新新场景
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()

	first := &stubScene{}
	second := &stubScene{}

	sm.SwitchTo(first)
	sm.Update(1.0 / 60.0)

	sm.SwitchTo(second)
	sm.Update(1.0 / 60.0)
	sm.Update(1.0 / 60.0)

	if first.updates != 1 {
		t.Errorf("旧场景更新 %d 次, 期望 1 次", first.updates)
	}
	if second.updates != 2 {
		t.Errorf("新场景更新 %d 次, 期望 2 次", second.updates)
	}
	if sm.GetCurrentScene() != second {
		t.Error("GetCurrentScene 应返回最后切换的场景")
	}
}

// TestSceneManagerNoScene 测试无活动场景时更新为空操作
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()

	// 不应 panic
	sm.Update(1.0 / 60.0)

	if sm.GetCurrentScene() != nil {
		t.Error("初始状态不应有活动场景")
	}
}

// TestSceneManagerLoadScene 测试通过工厂加载场景
func TestSceneManagerLoadScene(t *testing.T) {
	sm := NewSceneManager()

	created := ""
	sm.SetSceneFactory(func(sceneID string) Scene {
		created = sceneID
		return &stubScene{}
	})

	sm.LoadScene("battle")

	if created != "battle" {
		t.Errorf("工厂收到的场景ID = %q, 期望 %q", created, "battle")
	}
	if sm.GetCurrentScene() == nil {
		t.Error("LoadScene 后应有活动场景")
	}
}

// TestSceneManagerLoadSceneWithoutFactory 测试未设置工厂时 LoadScene 为空操作
func TestSceneManagerLoadSceneWithoutFactory(t *testing.T) {
	sm := NewSceneManager()
	sm.LoadScene("battle")

	if sm.GetCurrentScene() != nil {
		t.Error("未设置工厂时不应切换场景")
	}
}
