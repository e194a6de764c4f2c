package types

import (
	"errors"
	"fmt"
)

var (
	ErrInputMissing  = errors.New("input missing")
	ErrInvalidScript = errors.New("invalid script")
	ErrAssetFetch    = errors.New("asset fetch failed")
	ErrEncoding      = errors.New("encoding failed")
)

// InvalidScriptError reports a bad scene. Scene is the zero-based index in
// script.scenes, or -1 when the problem is not tied to one scene.
type InvalidScriptError struct {
	Scene  int
	Reason string
}

func (e *InvalidScriptError) Error() string {
	if e.Scene < 0 {
		return fmt.Sprintf("invalid script: %s", e.Reason)
	}
	return fmt.Sprintf("invalid script: scene %d: %s", e.Scene, e.Reason)
}

func (e *InvalidScriptError) Is(target error) bool { return target == ErrInvalidScript }
