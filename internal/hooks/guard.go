package hooks

import (
	"context"
	"fmt"

	"github.com/brads3290/cchooks"
	"github.com/fibreflow/antihall-guard/internal/antihall"
	"github.com/fibreflow/antihall-guard/internal/config"
	"github.com/fibreflow/antihall-guard/internal/constants"
	"github.com/fibreflow/antihall-guard/internal/core"
)

// GuardHook validates TypeScript/Angular source before Claude Code writes
// it, flagging service methods the antiHall checker can't find and component
// declarations that break house style. It is advisory only and always
// approves the tool call.
type GuardHook struct {
	*core.BaseHook
	dispatcher *Dispatcher
}

// NewGuardHook creates a new guard hook instance
func NewGuardHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("guard", "antiHall Guard",
		"Warns about hallucinated service methods and non-standalone components before they are written", ctx)

	cfg, err := config.LoadGuardConfig()
	if err != nil {
		cfg = &config.GuardConfig{}
	}

	client := antihall.NewClient(cfg.ResolveAntihallRoot(), base.Context().CommandExecutor)
	if timeout := cfg.CheckTimeout(); timeout > 0 {
		client.Timeout = timeout
	}

	dispatcher := NewDispatcher(client)
	dispatcher.SetSuffixes(cfg.ValidatedSuffixes())

	return &GuardHook{BaseHook: base, dispatcher: dispatcher}
}

// Run executes the guard hook.
func (h *GuardHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, nil)
}

func (h *GuardHook) preToolUseHandler(ctx context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	inv, ok := h.invocationFromEvent(event)
	if !ok {
		return cchooks.Approve()
	}

	result := h.dispatcher.Dispatch(ctx, inv)

	if h.Context().LoggingEnabled {
		details := map[string]interface{}{
			"file_path":     inv.FilePath(),
			"warning_count": len(result.ValidationWarnings),
		}
		for i, issue := range result.ValidationWarnings {
			details[fmt.Sprintf("warning_%d", i)] = issue.Message
		}
		h.LogHookEvent("guard_check", event.ToolName, map[string]interface{}{
			"tool_name": event.ToolName,
		}, details)
	}

	// Warnings are advisory; the write itself always proceeds.
	return cchooks.Approve()
}

// invocationFromEvent converts a cchooks event into an invocation record.
// Tools the guard doesn't validate, and payloads that fail to parse, come
// back as not-ok and get approved untouched.
func (h *GuardHook) invocationFromEvent(event *cchooks.PreToolUseEvent) (Invocation, bool) {
	switch event.ToolName {
	case constants.ToolWrite:
		write, err := event.AsWrite()
		if err != nil {
			h.LogError("guard_parse_error", event.ToolName, err)
			return Invocation{}, false
		}
		return NewWriteInvocation(write.FilePath, write.Content), true
	case constants.ToolEdit:
		edit, err := event.AsEdit()
		if err != nil {
			h.LogError("guard_parse_error", event.ToolName, err)
			return Invocation{}, false
		}
		return NewEditInvocation(edit.FilePath, edit.OldString, edit.NewString), true
	case constants.ToolMultiEdit:
		multi, err := event.AsMultiEdit()
		if err != nil {
			h.LogError("guard_parse_error", event.ToolName, err)
			return Invocation{}, false
		}
		edits := make([]EditOperation, 0, len(multi.Edits))
		for _, edit := range multi.Edits {
			edits = append(edits, EditOperation{OldString: edit.OldString, NewString: edit.NewString})
		}
		return NewMultiEditInvocation(multi.FilePath, edits), true
	}
	return Invocation{}, false
}
