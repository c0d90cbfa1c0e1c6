package ecs

import "testing"

type posComponent struct {
	X, Y float64
}

type labelComponent struct {
	Text string
}

// TestCreateEntityUniqueID 测试实体ID唯一且从1开始
func TestCreateEntityUniqueID(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == 0 {
		t.Error("实体ID不应为0（0保留为无效ID）")
	}
	if id1 == id2 {
		t.Errorf("实体ID应唯一: %d == %d", id1, id2)
	}
}

// TestAddGetComponent 测试组件的添加与读取
func TestAddGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &posComponent{X: 3, Y: 4})

	pos, ok := GetComponent[*posComponent](em, id)
	if !ok {
		t.Fatal("应能读取已添加的组件")
	}
	if pos.X != 3 || pos.Y != 4 {
		t.Errorf("组件数据不一致: (%v, %v)", pos.X, pos.Y)
	}

	// 未添加的组件类型返回 false
	if _, ok := GetComponent[*labelComponent](em, id); ok {
		t.Error("未添加的组件类型不应返回 true")
	}
}

// TestRemoveComponent 测试组件移除
func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &posComponent{})
	RemoveComponent[*posComponent](em, id)

	if HasComponent[*posComponent](em, id) {
		t.Error("移除后组件不应存在")
	}
}

// TestGetEntitiesWithQuery 测试组件组合查询
func TestGetEntitiesWithQuery(t *testing.T) {
	em := NewEntityManager()

	both := em.CreateEntity()
	AddComponent(em, both, &posComponent{})
	AddComponent(em, both, &labelComponent{})

	posOnly := em.CreateEntity()
	AddComponent(em, posOnly, &posComponent{})

	if got := len(GetEntitiesWith1[*posComponent](em)); got != 2 {
		t.Errorf("GetEntitiesWith1 返回 %d 个实体, 期望 2", got)
	}

	withBoth := GetEntitiesWith2[*posComponent, *labelComponent](em)
	if len(withBoth) != 1 || withBoth[0] != both {
		t.Errorf("GetEntitiesWith2 返回 %v, 期望 [%d]", withBoth, both)
	}
}

// TestDestroyEntityDeferred 测试延迟销毁：标记后需调用 RemoveMarkedEntities
func TestDestroyEntityDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &posComponent{})

	em.DestroyEntity(id)

	// 清理前组件仍可读取（系统遍历期间安全）
	if !HasComponent[*posComponent](em, id) {
		t.Error("清理前组件应仍然存在")
	}

	em.RemoveMarkedEntities()

	if HasComponent[*posComponent](em, id) {
		t.Error("清理后组件不应存在")
	}
}
