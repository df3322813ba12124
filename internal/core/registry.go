package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fibreflow/antihall-guard/internal/config"
)

// HookFactory is a function that creates a Hook instance
type HookFactory func(ctx *HookContext) Hook

// Registry manages hook registration and creation
type Registry struct {
	mu        sync.RWMutex
	factories map[string]HookFactory
	context   *HookContext
}

// NewRegistry creates a new hook registry
func NewRegistry(ctx *HookContext) *Registry {
	if ctx == nil {
		ctx = DefaultHookContext()
	}
	return &Registry{
		factories: make(map[string]HookFactory),
		context:   ctx,
	}
}

// Register registers a hook factory with the given key
func (r *Registry) Register(key string, factory HookFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("hook with key '%s' already registered", key)
	}

	r.factories[key] = factory
	return nil
}

// MustRegister is like Register but panics on error
func (r *Registry) MustRegister(key string, factory HookFactory) {
	if err := r.Register(key, factory); err != nil {
		panic(err)
	}
}

// Create creates a hook instance by key
func (r *Registry) Create(key string) (Hook, error) {
	r.mu.RLock()
	factory, exists := r.factories[key]
	context := r.context
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("hook with key '%s' not found", key)
	}

	return factory(context), nil
}

// Keys returns all registered hook keys in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetContext updates the context used for creating hook instances
func (r *Registry) SetContext(ctx *HookContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.context = ctx
}

// Global registry instance
var globalRegistry = NewRegistry(nil)

// CreateHook creates a hook instance by key from the global registry
func CreateHook(key string) (Hook, error) {
	return globalRegistry.Create(key)
}

// GetHookKeys returns all registered hook keys from the global registry
func GetHookKeys() []string {
	return globalRegistry.Keys()
}

// SetGlobalContext replaces the global registry's context. main composes the
// runtime context (real implementations plus the settings-backed enablement
// check) and installs it here before any hook is created.
func SetGlobalContext(ctx *HookContext) {
	globalRegistry.SetContext(ctx)
}

// SetGlobalLoggingConfig updates the global registry's context with logging configuration
func SetGlobalLoggingConfig(enabled bool, logDir string, format string) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if globalRegistry.context != nil {
		globalRegistry.context.LoggingEnabled = enabled
		globalRegistry.context.LoggingDir = logDir
		if config.IsValidLoggingFormat(format) {
			globalRegistry.context.LoggingFormat = format
		}
		// else: leave default format when empty or invalid
	}
}

// RegisterBuiltinHooks is called by the hooks package to register all built-in hooks
func RegisterBuiltinHooks(hooks map[string]HookFactory) {
	for key, factory := range hooks {
		globalRegistry.MustRegister(key, factory)
	}
}
