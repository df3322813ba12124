package hooks

import (
	"encoding/json"
	"testing"
)

func TestInvocationRoundTripPreservesUnknownFields(t *testing.T) {
	input := `{"tool_name":"Write","params":{"file_path":"a.ts","content":"x"},"session_id":"abc123","cwd":"/tmp/project"}`

	var inv Invocation
	if err := json.Unmarshal([]byte(input), &inv); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if inv.ToolName != "Write" {
		t.Errorf("expected tool_name Write, got %q", inv.ToolName)
	}

	out, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}
	if m["session_id"] != "abc123" {
		t.Errorf("session_id dropped, got %v", m["session_id"])
	}
	if m["cwd"] != "/tmp/project" {
		t.Errorf("cwd dropped, got %v", m["cwd"])
	}
	if _, present := m["validation_warnings"]; present {
		t.Error("validation_warnings should be absent when empty")
	}
}

func TestInvocationMarshalIncludesWarnings(t *testing.T) {
	inv := NewWriteInvocation("a.component.ts", "x")
	inv.ValidationWarnings = []Issue{{
		Type:       IssueHallucination,
		Message:    "Method 'foo' not found in barService",
		Suggestion: "Check available methods with antiHall",
	}}

	out, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Invocation
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(decoded.ValidationWarnings) != 1 {
		t.Fatalf("expected 1 warning after round trip, got %d", len(decoded.ValidationWarnings))
	}
	if decoded.ValidationWarnings[0].Message != "Method 'foo' not found in barService" {
		t.Errorf("unexpected message: %q", decoded.ValidationWarnings[0].Message)
	}
}

func TestIsWriteStyle(t *testing.T) {
	testCases := []struct {
		tool string
		want bool
	}{
		{"Write", true},
		{"Edit", true},
		{"MultiEdit", true},
		{"Bash", false},
		{"Read", false},
		{"", false},
	}
	for _, tc := range testCases {
		inv := Invocation{ToolName: tc.tool}
		if got := inv.IsWriteStyle(); got != tc.want {
			t.Errorf("IsWriteStyle(%q) = %v, want %v", tc.tool, got, tc.want)
		}
	}
}

func TestTypedAccessors(t *testing.T) {
	write := NewWriteInvocation("a.ts", "body")
	w, err := write.AsWrite()
	if err != nil {
		t.Fatalf("AsWrite failed: %v", err)
	}
	if w.FilePath != "a.ts" || w.Content != "body" {
		t.Errorf("unexpected write params: %+v", w)
	}

	edit := NewEditInvocation("b.ts", "old", "new")
	e, err := edit.AsEdit()
	if err != nil {
		t.Fatalf("AsEdit failed: %v", err)
	}
	if e.OldString != "old" || e.NewString != "new" {
		t.Errorf("unexpected edit params: %+v", e)
	}

	multi := NewMultiEditInvocation("c.ts", []EditOperation{{OldString: "x", NewString: "y"}})
	m, err := multi.AsMultiEdit()
	if err != nil {
		t.Fatalf("AsMultiEdit failed: %v", err)
	}
	if len(m.Edits) != 1 || m.Edits[0].NewString != "y" {
		t.Errorf("unexpected multi-edit params: %+v", m)
	}
}

func TestAccessorsOnEmptyParams(t *testing.T) {
	inv := Invocation{ToolName: "Write"}

	w, err := inv.AsWrite()
	if err != nil {
		t.Fatalf("AsWrite on empty params failed: %v", err)
	}
	if w.FilePath != "" || w.Content != "" {
		t.Errorf("expected zero-value params, got %+v", w)
	}
	if inv.FilePath() != "" {
		t.Errorf("expected empty file path, got %q", inv.FilePath())
	}
}

func TestFilePath(t *testing.T) {
	inv := NewMultiEditInvocation("src/app/pole.service.ts", nil)
	if got := inv.FilePath(); got != "src/app/pole.service.ts" {
		t.Errorf("FilePath() = %q", got)
	}
}
