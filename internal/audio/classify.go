package audio

import (
	"errors"
	"fmt"
)

// classifyMediaError maps a getUserMedia DOMException name onto the
// acquisition errors callers switch on.
func classifyMediaError(name, msg string) error {
	switch name {
	case "NotAllowedError", "SecurityError":
		return fmt.Errorf("%w: %s", ErrPermissionDenied, msg)
	case "NotFoundError", "OverconstrainedError", "NotReadableError":
		return fmt.Errorf("%w: %s", ErrNoDevice, msg)
	case "":
		if msg == "" {
			return errors.New("unknown media error")
		}
		return errors.New(msg)
	}
	return fmt.Errorf("%s: %s", name, msg)
}

// hostErrors lists which backend error values mean "no device" and which
// mean "device refused".
type hostErrors struct {
	noDevice []error
	denied   []error
}

func (h hostErrors) classify(op string, err error) error {
	for _, target := range h.noDevice {
		if errors.Is(err, target) {
			return fmt.Errorf("%s: %w: %v", op, ErrNoDevice, err)
		}
	}
	for _, target := range h.denied {
		if errors.Is(err, target) {
			return fmt.Errorf("%s: %w: %v", op, ErrPermissionDenied, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
