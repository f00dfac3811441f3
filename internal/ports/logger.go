package ports

import "github.com/animforge/animforge/pkg/log"

// Logger is the structured logging abstraction used across the
// application layer. It aliases pkg/log so internal packages can take a
// ports.Logger without importing the public logging package directly.
type Logger = log.Logger

// Field is a structured logging field.
type Field = log.Field

// Field constructors re-exported for call sites in the application layer.
var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
