package app

// Build information, set with -ldflags at release time.
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
)
