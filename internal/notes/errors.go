package notes

import (
	"errors"
	"fmt"
)

// ErrScriptTimeout indicates osascript did not finish within the configured timeout
var ErrScriptTimeout = errors.New("AppleScript execution timed out")

// ErrNotesUnavailable indicates Apple Notes is not running and could not be launched
var ErrNotesUnavailable = errors.New("Notes app failed to launch. Please open it manually and try again")

// ScriptError is a failed osascript run; Output holds stderr, or stdout when stderr was empty
type ScriptError struct {
	Output string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("AppleScript failed: %s", e.Output)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
