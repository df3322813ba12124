package constants

// Application constants - single source of truth for naming throughout the codebase
const (
	// Core application identity
	AppName        = "antiHall Guard"
	BinaryName     = "antihall-guard"
	ProjectTagline = "Catch hallucinated code before it lands"

	// Module and repository
	ModulePath    = "github.com/fibreflow/antihall-guard"
	RepositoryURL = "https://github.com/fibreflow/antihall-guard"

	// Configuration files
	ConfigFileName   = "antihall-guard-config.json"
	SettingsFileName = "settings.json"
	GuardConfigFile  = "antihall.yml"

	// Directory paths
	ClaudeDir   = ".claude"
	HooksSubDir = "hooks"

	// AntihallDirName is the directory the external checker lives in when
	// no explicit root is configured.
	AntihallDirName = "antiHall"

	// AntihallRootEnv overrides the checker root when set.
	AntihallRootEnv = "ANTIHALL_DIR"

	// Command patterns for settings
	CommandPattern = BinaryName + " run"
)

// GetConfigPath returns the full config file path
func GetConfigPath(baseDir string) string {
	return baseDir + "/" + ClaudeDir + "/" + HooksSubDir + "/" + ConfigFileName
}
