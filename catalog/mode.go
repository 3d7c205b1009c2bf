package catalog

import "github.com/j4587698/tinydb/config"

// ValidationMode is an alias for config.ValidationMode so catalog callers
// never need to import config just to pass a mode to ValidateForWrite.
type ValidationMode = config.ValidationMode

const (
	ValidationNone   = config.ValidationNone
	ValidationLoose  = config.ValidationLoose
	ValidationStrict = config.ValidationStrict
)
