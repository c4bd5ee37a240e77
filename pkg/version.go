package springsync

// Version and Build are set by the linker during the build process.
var (
	// Version is the version of the springsync binary.
	Version = "v0.1.0"

	// Build is a timestamp of the build.
	Build = "n/a"
)
