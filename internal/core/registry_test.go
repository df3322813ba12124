package core

import (
	"reflect"
	"testing"
)

// testHook is a simple hook implementation for testing
type testHook struct {
	*BaseHook
}

func (h *testHook) Run() error {
	return nil
}

func newTestHook(key, name, description string, ctx *HookContext) Hook {
	base := NewBaseHook(key, name, description, ctx)
	return &testHook{BaseHook: base}
}

func TestRegistry(t *testing.T) {
	ctx := TestHookContext(nil)
	registry := NewRegistry(ctx)

	factory := func(ctx *HookContext) Hook {
		return newTestHook("guard", "Guard", "Validates writes", ctx)
	}

	if err := registry.Register("guard", factory); err != nil {
		t.Errorf("Failed to register hook: %v", err)
	}

	hook, err := registry.Create("guard")
	if err != nil {
		t.Errorf("Failed to create hook: %v", err)
	}

	if hook.Key() != "guard" {
		t.Errorf("Expected hook key 'guard', got '%s'", hook.Key())
	}
}

func TestRegistryDuplicateKey(t *testing.T) {
	registry := NewRegistry(TestHookContext(nil))

	factory := func(ctx *HookContext) Hook {
		return newTestHook("guard", "Guard", "Validates writes", ctx)
	}

	if err := registry.Register("guard", factory); err != nil {
		t.Errorf("First registration failed: %v", err)
	}

	if err := registry.Register("guard", factory); err == nil {
		t.Error("Expected error when registering duplicate key")
	}
}

func TestRegistryMustRegister(t *testing.T) {
	registry := NewRegistry(TestHookContext(nil))

	factory := func(ctx *HookContext) Hook {
		return newTestHook("guard", "Guard", "Validates writes", ctx)
	}

	registry.MustRegister("guard", factory)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when registering duplicate key with MustRegister")
		}
	}()

	registry.MustRegister("guard", factory)
}

func TestRegistryKeys(t *testing.T) {
	registry := NewRegistry(TestHookContext(nil))

	factories := map[string]HookFactory{
		"z_hook": func(ctx *HookContext) Hook { return newTestHook("z_hook", "Z Hook", "Z description", ctx) },
		"a_hook": func(ctx *HookContext) Hook { return newTestHook("a_hook", "A Hook", "A description", ctx) },
		"m_hook": func(ctx *HookContext) Hook { return newTestHook("m_hook", "M Hook", "M description", ctx) },
	}

	for key, factory := range factories {
		registry.MustRegister(key, factory)
	}

	keys := registry.Keys()
	expected := []string{"a_hook", "m_hook", "z_hook"}

	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("Expected keys %v, got %v", expected, keys)
	}
}

func TestRegistryCreateNotFound(t *testing.T) {
	registry := NewRegistry(TestHookContext(nil))

	if _, err := registry.Create("nonexistent"); err == nil {
		t.Error("Expected error when creating non-existent hook")
	}
}

func TestSetGlobalContext(t *testing.T) {
	original := globalRegistry.context
	t.Cleanup(func() { globalRegistry.SetContext(original) })

	RegisterBuiltinHooks(map[string]HookFactory{
		"global_ctx_hook": func(ctx *HookContext) Hook {
			return newTestHook("global_ctx_hook", "Global", "Context plumbing", ctx)
		},
	})

	SetGlobalContext(TestHookContext(func(string) bool { return false }))
	hook, err := CreateHook("global_ctx_hook")
	if err != nil {
		t.Fatalf("Failed to create hook: %v", err)
	}
	if hook.IsEnabled() {
		t.Error("Expected hook disabled under replaced global context")
	}

	SetGlobalContext(TestHookContext(func(string) bool { return true }))
	hook, err = CreateHook("global_ctx_hook")
	if err != nil {
		t.Fatalf("Failed to create hook: %v", err)
	}
	if !hook.IsEnabled() {
		t.Error("Expected hook enabled under replaced global context")
	}
}

func TestRegistrySetContext(t *testing.T) {
	ctx1 := TestHookContext(func(string) bool { return true })
	ctx2 := TestHookContext(func(string) bool { return false })

	registry := NewRegistry(ctx1)
	registry.MustRegister("guard", func(ctx *HookContext) Hook {
		return newTestHook("guard", "Guard", "Validates writes", ctx)
	})

	hook, err := registry.Create("guard")
	if err != nil {
		t.Fatalf("Failed to create hook: %v", err)
	}
	if !hook.IsEnabled() {
		t.Error("Expected hook enabled under first context")
	}

	registry.SetContext(ctx2)
	hook, err = registry.Create("guard")
	if err != nil {
		t.Fatalf("Failed to create hook: %v", err)
	}
	if hook.IsEnabled() {
		t.Error("Expected hook disabled under second context")
	}
}
