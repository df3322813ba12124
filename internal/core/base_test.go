package core

import (
	"context"
	"errors"
	"testing"

	"github.com/brads3290/cchooks"
)

func TestBaseHook(t *testing.T) {
	ctx := TestHookContext(nil)

	hook := NewBaseHook("guard", "antiHall Guard", "Validates writes", ctx)

	if hook.Key() != "guard" {
		t.Errorf("Expected key 'guard', got '%s'", hook.Key())
	}

	if hook.Name() != "antiHall Guard" {
		t.Errorf("Expected name 'antiHall Guard', got '%s'", hook.Name())
	}

	if hook.Description() != "Validates writes" {
		t.Errorf("Expected description 'Validates writes', got '%s'", hook.Description())
	}

	if !hook.IsEnabled() {
		t.Error("Expected hook to be enabled by default")
	}

	if hook.Context() != ctx {
		t.Error("Expected context to match provided context")
	}
}

func TestBaseHookDisabled(t *testing.T) {
	ctx := TestHookContext(func(string) bool { return false })

	hook := NewBaseHook("guard", "antiHall Guard", "Validates writes", ctx)

	if hook.IsEnabled() {
		t.Error("Expected hook to be disabled")
	}
}

func TestBaseHookNilContext(t *testing.T) {
	hook := NewBaseHook("guard", "antiHall Guard", "Validates writes", nil)

	if hook.Context() == nil {
		t.Error("Expected default context when nil provided")
	}
}

func TestMockCommandExecutorRecordsDir(t *testing.T) {
	executor := NewMockCommandExecutor()
	executor.SetResponse("npm run", []byte("Method login found"), nil, nil)

	stdout, _, err := executor.ExecuteCommand(context.Background(), "/opt/antiHall", "npm", "run", "check", "this.authService.login(")
	if err != nil {
		t.Fatalf("ExecuteCommand failed: %v", err)
	}
	if string(stdout) != "Method login found" {
		t.Errorf("unexpected stdout: %q", stdout)
	}

	commands := executor.GetExecutedCommands()
	if len(commands) != 1 {
		t.Fatalf("expected 1 recorded command, got %d", len(commands))
	}
	if commands[0].Dir != "/opt/antiHall" {
		t.Errorf("expected dir /opt/antiHall, got %q", commands[0].Dir)
	}
	if commands[0].Name != "npm" || len(commands[0].Args) != 3 {
		t.Errorf("unexpected command: %+v", commands[0])
	}
}

func TestMockCommandExecutorError(t *testing.T) {
	executor := NewMockCommandExecutor()
	wantErr := errors.New("npm not found")
	executor.SetResponse("npm run", nil, nil, wantErr)

	_, _, err := executor.ExecuteCommand(context.Background(), "", "npm", "run", "check")
	if !errors.Is(err, wantErr) {
		t.Errorf("expected configured error, got %v", err)
	}
}

func TestStandardRunUsesRunnerFactory(t *testing.T) {
	ctx := TestHookContext(nil)
	var created *MockRunner
	ctx.RunnerFactory = func(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
		postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
		rawHook func(context.Context, string) *cchooks.RawResponse,
	) Runner {
		created = &MockRunner{PreToolUse: preHook, PostToolUse: postHook, RawHook: rawHook}
		return created
	}

	hook := NewBaseHook("guard", "antiHall Guard", "Validates writes", ctx)
	if err := hook.StandardRun(nil, nil); err != nil {
		t.Fatalf("StandardRun failed: %v", err)
	}
	if created == nil || !created.RunCalled {
		t.Error("Expected runner to be created and run")
	}
}
