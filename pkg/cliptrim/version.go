package cliptrim

import (
	"github.com/bft-labs/cliptrim/pkg/dib"
	"github.com/bft-labs/cliptrim/pkg/imaging"
	"github.com/bft-labs/cliptrim/pkg/log"
)

// Version information for the cliptrim module.
const (
	// Version is the current version of the cliptrim module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)

// ModuleVersions returns the versions of all sub-modules.
// Useful for debugging and compatibility checks.
func ModuleVersions() map[string]string {
	return map[string]string{
		"cliptrim": Version,
		"imaging":  imaging.Version,
		"dib":      dib.Version,
		"log":      log.Version,
	}
}

// CompatibilityMatrix returns the minimum compatible version of each
// sub-module. New() refuses to build an instance when a sub-module falls
// below its minimum.
func CompatibilityMatrix() map[string]string {
	return map[string]string{
		"cliptrim": MinCompatibleVersion,
		"imaging":  imaging.MinCompatibleVersion,
		"dib":      dib.MinCompatibleVersion,
		"log":      log.MinCompatibleVersion,
	}
}
