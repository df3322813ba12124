// Package patterns extracts TypeScript/Angular structural patterns from
// proposed source text. It is a plain regex scan over the text, not a
// parser, and makes no assumptions about well-formed syntax.
package patterns

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind discriminates the pattern variants Extract can return.
type Kind string

// Pattern kinds.
const (
	KindServiceCall Kind = "service_method"
	KindImport      Kind = "import"
	KindComponent   Kind = "component"
)

// IssueMissingStandalone marks a @Component block without "standalone: true".
const IssueMissingStandalone = "missing_standalone"

// previewLen bounds the code snippet carried on component issue records.
const previewLen = 50

// Pattern is one discovered pattern instance. Which fields are populated
// depends on Kind.
type Pattern struct {
	Kind Kind

	// KindServiceCall
	Service string
	Method  string
	Full    string

	// KindImport
	Items []string
	Path  string

	// KindComponent
	Issue string
	Code  string
}

var (
	serviceCallRegex = regexp.MustCompile(`this\.(\w+Service)\.(\w+)\(`)
	importRegex      = regexp.MustCompile(`import\s*\{([^}]+)\}\s*from\s*['"]([^'"]+)['"]`)
	// (?s) lets the decorator body span newlines; [^}]+ keeps the brace
	// match at a single level instead of swallowing to the last close.
	componentRegex = regexp.MustCompile(`(?s)@Component\(\{[^}]+\}\)`)
)

// Extract runs three independent scans over content (service calls, imports,
// component decorators) and returns their results concatenated in that
// order. It is a pure function: no deduplication, no side effects, and an
// absence of matches yields an empty slice.
func Extract(content string) []Pattern {
	var found []Pattern

	for _, m := range serviceCallRegex.FindAllStringSubmatch(content, -1) {
		found = append(found, Pattern{
			Kind:    KindServiceCall,
			Service: m[1],
			Method:  m[2],
			Full:    "this." + m[1] + "." + m[2] + "(",
		})
	}

	for _, m := range importRegex.FindAllStringSubmatch(content, -1) {
		items := strings.Split(m[1], ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		found = append(found, Pattern{
			Kind:  KindImport,
			Items: items,
			Path:  m[2],
		})
	}

	for _, block := range componentRegex.FindAllString(content, -1) {
		if strings.Contains(block, "standalone: true") {
			continue
		}
		found = append(found, Pattern{
			Kind:  KindComponent,
			Issue: IssueMissingStandalone,
			Code:  snippet(block),
		})
	}

	return found
}

// snippet truncates a matched block to a short preview with an ellipsis.
// The cut is on characters, not bytes, so multibyte content stays valid.
func snippet(block string) string {
	if utf8.RuneCountInString(block) > previewLen {
		runes := []rune(block)
		block = string(runes[:previewLen])
	}
	return block + "..."
}
