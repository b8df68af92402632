package ports

import "github.com/bft-labs/cliptrim/pkg/log"

// Logger is the structured logging port. It aliases the pkg/log interface so
// internal layers depend on ports only while sharing one set of field helpers.
type Logger = log.Logger

// Field is a structured logging key-value pair.
type Field = log.Field

// Field constructors re-exported for call sites inside internal packages.
var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
