package constants

// Claude Code tool names the guard cares about. The identifiers are a fixed
// external contract with Claude Code and must not be renamed.
const (
	ToolWrite     = "Write"
	ToolEdit      = "Edit"
	ToolMultiEdit = "MultiEdit"
)

// ValidatedSuffixes gates which target files get validated. The guard only
// understands TypeScript/Angular component and service source.
var ValidatedSuffixes = []string{".ts", ".component.ts", ".service.ts"}
