package imaging

// Version information for the imaging module.
const (
	// Version is the current version of the imaging module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
