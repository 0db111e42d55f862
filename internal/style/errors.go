package style

import (
	"errors"
	"fmt"
)

// Style manager errors.
var (
	ErrNoStyle      = errors.New("no style selected")
	ErrUnknownStyle = errors.New("unknown style")
	ErrUnknownTheme = errors.New("unknown theme")
)

// ErrorKind classifies the failure recorded by the last operation.
type ErrorKind int

const (
	NoError ErrorKind = iota
	TemplateError
	ExportError
	ThemeLoadError
	StyleDescriptorError
	ResourceGenerationError
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case TemplateError:
		return "TemplateError"
	case ExportError:
		return "ExportError"
	case ThemeLoadError:
		return "ThemeLoadError"
	case StyleDescriptorError:
		return "StyleDescriptorError"
	case ResourceGenerationError:
		return "ResourceGenerationError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by failing manager operations and kept as the
// manager's error state until the next operation.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or NoError when err is not an *Error.
func KindOf(err error) ErrorKind {
	var styleErr *Error
	if errors.As(err, &styleErr) {
		return styleErr.Kind
	}
	return NoError
}
