package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fibreflow/antihall-guard/internal/antihall"
	"github.com/fibreflow/antihall-guard/internal/constants"
	"github.com/fibreflow/antihall-guard/internal/patterns"
)

// Fixed issue texts. These are part of the guard's user-facing behavior.
const (
	hallucinationSuggestion = "Check available methods with antiHall"
	standaloneMessage       = "Component must use standalone: true"
	standaloneSuggestion    = "All FibreFlow components must be standalone"
)

// ExistenceChecker answers whether a code fragment refers to something real.
// antihall.Client satisfies this.
type ExistenceChecker interface {
	Check(ctx context.Context, fragment string) (stdout, stderr string, err error)
}

// Dispatcher validates write-style tool invocations and annotates them with
// advisory warnings. It holds no cross-call state; every Dispatch works on
// its own local data.
type Dispatcher struct {
	checker  ExistenceChecker
	suffixes []string
	warnOut  io.Writer
}

// NewDispatcher returns a Dispatcher that consults checker for service-call
// fragments and validates files matching the built-in suffix set.
func NewDispatcher(checker ExistenceChecker) *Dispatcher {
	return &Dispatcher{
		checker:  checker,
		suffixes: constants.ValidatedSuffixes,
		warnOut:  os.Stdout,
	}
}

// SetSuffixes overrides the validated file suffix set.
func (d *Dispatcher) SetSuffixes(suffixes []string) {
	if len(suffixes) > 0 {
		d.suffixes = suffixes
	}
}

// SetWarnOutput redirects the human-readable warning block (tests).
func (d *Dispatcher) SetWarnOutput(w io.Writer) {
	if w != nil {
		d.warnOut = w
	}
}

// Dispatch validates one invocation and returns it, annotated with
// validation_warnings when issues were found. The input record is never
// mutated; callers get either the input unchanged or a shallow copy with
// warnings attached. Dispatch never fails: checker errors degrade to "no
// warning" for the affected pattern.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) Invocation {
	if !inv.IsWriteStyle() {
		return inv
	}

	if !d.hasValidatedSuffix(inv.FilePath()) {
		return inv
	}

	content := d.resolveContent(&inv)
	if content == "" {
		return inv
	}

	issues := d.validate(ctx, content)
	if len(issues) == 0 {
		return inv
	}

	annotated := inv
	annotated.ValidationWarnings = issues
	d.printWarnings(issues)
	return annotated
}

// hasValidatedSuffix gates validation on the target file suffix.
func (d *Dispatcher) hasValidatedSuffix(filePath string) bool {
	if filePath == "" {
		return false
	}
	for _, suffix := range d.suffixes {
		if strings.HasSuffix(filePath, suffix) {
			return true
		}
	}
	return false
}

// resolveContent picks the text to validate for each write-style variant.
// Malformed or missing params resolve to "", which means nothing to validate.
func (d *Dispatcher) resolveContent(inv *Invocation) string {
	switch inv.ToolName {
	case constants.ToolWrite:
		write, err := inv.AsWrite()
		if err != nil {
			return ""
		}
		return write.Content
	case constants.ToolEdit:
		edit, err := inv.AsEdit()
		if err != nil {
			return ""
		}
		return edit.NewString
	case constants.ToolMultiEdit:
		multi, err := inv.AsMultiEdit()
		if err != nil {
			return ""
		}
		replacements := make([]string, 0, len(multi.Edits))
		for _, edit := range multi.Edits {
			replacements = append(replacements, edit.NewString)
		}
		return strings.Join(replacements, "\n")
	}
	return ""
}

// validate runs the extractor and converts suspicious patterns to issues.
// Service calls are checked one at a time against the external tool, so
// latency grows linearly with the number of calls found.
func (d *Dispatcher) validate(ctx context.Context, content string) []Issue {
	var issues []Issue

	for _, p := range patterns.Extract(content) {
		switch p.Kind {
		case patterns.KindServiceCall:
			stdout, _, err := d.checker.Check(ctx, p.Full)
			if err != nil {
				// Tool missing, timed out, or failed to start: leave the
				// pattern unchecked rather than failing the hook.
				continue
			}
			if strings.Contains(stdout, antihall.NotExistsMarker) {
				issues = append(issues, Issue{
					Type:       IssueHallucination,
					Message:    fmt.Sprintf("Method '%s' not found in %s", p.Method, p.Service),
					Suggestion: hallucinationSuggestion,
				})
			}
		case patterns.KindComponent:
			if p.Issue == patterns.IssueMissingStandalone {
				issues = append(issues, Issue{
					Type:       IssuePatternViolation,
					Message:    standaloneMessage,
					Suggestion: standaloneSuggestion,
				})
			}
		case patterns.KindImport:
			// Imports are extracted but produce no issue today.
		}
	}

	return issues
}

// printWarnings emits the advisory warning block to stdout. This is a
// diagnostic side channel, not part of the returned record.
func (d *Dispatcher) printWarnings(issues []Issue) {
	fmt.Fprintln(d.warnOut)
	fmt.Fprintln(d.warnOut, "⚠️  antiHall Validation Warnings:")
	for _, issue := range issues {
		fmt.Fprintf(d.warnOut, "  - %s\n", issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(d.warnOut, "    💡 %s\n", issue.Suggestion)
		}
	}
	fmt.Fprintln(d.warnOut)
}
