// Package hooks provides the built-in antiHall guard hook and the advisory
// dispatcher it is built on.
package hooks

import (
	"encoding/json"

	"github.com/fibreflow/antihall-guard/internal/constants"
)

// Issue is one advisory finding attached to an invocation.
type Issue struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Issue types.
const (
	IssueHallucination    = "hallucination"
	IssuePatternViolation = "pattern_violation"
)

// Invocation is a generic tool request record as the surrounding system
// hands it over: a tool name plus a tool-shaped params payload. Params stays
// raw JSON so payloads for tools we don't recognize round-trip unchanged;
// typed accessors decode the write-style variants. Top-level fields we don't
// know about are preserved across unmarshal/marshal.
type Invocation struct {
	ToolName           string                     `json:"tool_name"`
	Params             json.RawMessage            `json:"params,omitempty"`
	ValidationWarnings []Issue                    `json:"validation_warnings,omitempty"`
	Other              map[string]json.RawMessage `json:"-"`
}

// WriteParams is the payload of a single-write operation.
type WriteParams struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// EditParams is the payload of a single-edit operation.
type EditParams struct {
	FilePath  string `json:"file_path"`
	OldString string `json:"old_string"`
	NewString string `json:"new_string"`
}

// EditOperation is one sub-edit of a multi-edit operation.
type EditOperation struct {
	OldString string `json:"old_string"`
	NewString string `json:"new_string"`
}

// MultiEditParams is the payload of a multi-edit operation.
type MultiEditParams struct {
	FilePath string          `json:"file_path"`
	Edits    []EditOperation `json:"edits"`
}

// UnmarshalJSON decodes the known fields and stashes everything else in
// Other so the record survives a round trip intact.
func (inv *Invocation) UnmarshalJSON(data []byte) error {
	type plain Invocation
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "tool_name")
	delete(raw, "params")
	delete(raw, "validation_warnings")
	p.Other = raw

	*inv = Invocation(p)
	return nil
}

// MarshalJSON merges the known fields back with the preserved unknown ones.
func (inv Invocation) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(inv.Other)+3)
	for k, v := range inv.Other {
		out[k] = v
	}
	out["tool_name"] = inv.ToolName
	if len(inv.Params) > 0 {
		out["params"] = inv.Params
	}
	if len(inv.ValidationWarnings) > 0 {
		out["validation_warnings"] = inv.ValidationWarnings
	}
	return json.Marshal(out)
}

// IsWriteStyle reports whether the invocation is one of the three
// write-style operations the guard validates.
func (inv *Invocation) IsWriteStyle() bool {
	switch inv.ToolName {
	case constants.ToolWrite, constants.ToolEdit, constants.ToolMultiEdit:
		return true
	}
	return false
}

// AsWrite decodes the params as a single-write payload. Absent fields come
// back empty rather than failing.
func (inv *Invocation) AsWrite() (*WriteParams, error) {
	var p WriteParams
	if err := inv.decodeParams(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AsEdit decodes the params as a single-edit payload.
func (inv *Invocation) AsEdit() (*EditParams, error) {
	var p EditParams
	if err := inv.decodeParams(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AsMultiEdit decodes the params as a multi-edit payload.
func (inv *Invocation) AsMultiEdit() (*MultiEditParams, error) {
	var p MultiEditParams
	if err := inv.decodeParams(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (inv *Invocation) decodeParams(v interface{}) error {
	if len(inv.Params) == 0 {
		return nil
	}
	return json.Unmarshal(inv.Params, v)
}

// FilePath returns the target file path of a write-style invocation, or ""
// when the params carry none.
func (inv *Invocation) FilePath() string {
	var p struct {
		FilePath string `json:"file_path"`
	}
	if err := inv.decodeParams(&p); err != nil {
		return ""
	}
	return p.FilePath
}

// NewWriteInvocation builds a Write invocation record.
func NewWriteInvocation(filePath, content string) Invocation {
	return newInvocation(constants.ToolWrite, WriteParams{FilePath: filePath, Content: content})
}

// NewEditInvocation builds an Edit invocation record.
func NewEditInvocation(filePath, oldString, newString string) Invocation {
	return newInvocation(constants.ToolEdit, EditParams{FilePath: filePath, OldString: oldString, NewString: newString})
}

// NewMultiEditInvocation builds a MultiEdit invocation record.
func NewMultiEditInvocation(filePath string, edits []EditOperation) Invocation {
	return newInvocation(constants.ToolMultiEdit, MultiEditParams{FilePath: filePath, Edits: edits})
}

func newInvocation(toolName string, params interface{}) Invocation {
	raw, err := json.Marshal(params)
	if err != nil {
		// The params structs above always marshal; a failure here means a
		// programming error, and an empty payload degrades to "nothing to
		// validate".
		raw = nil
	}
	return Invocation{ToolName: toolName, Params: raw}
}
