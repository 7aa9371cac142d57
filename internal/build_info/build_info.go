package build_info

// Build information variables - set via ldflags at release time
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
