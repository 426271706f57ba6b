package env

// AppName is the name of the command line tool.
const AppName = "apngkit"

// Set at build time with -ldflags "-X github.com/ostafen/apngkit/internal/env.Version=...".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

// Software returns the producer string written into composed animations.
func Software() string {
	return AppName + " v" + Version
}
