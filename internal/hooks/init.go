package hooks

import "github.com/fibreflow/antihall-guard/internal/core"

func init() {
	core.RegisterBuiltinHooks(map[string]core.HookFactory{
		"guard": NewGuardHook,
	})
}
