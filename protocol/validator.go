package protocol

import (
	"fmt"
	"strings"
	"unicode"
)

// Validator is a type able to validate itself. Validate inspects the type for
// syntactic or semantic issues, and returns a descriptive error if any
// violations are encountered. It is recommended that Validate return instances
// of ValidationError where possible, which enables tracking nested contexts.
type Validator interface {
	Validate() error
}

// ValidationError is an error implementation which captures its validation context.
type ValidationError struct {
	Context []string
	Err     error
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	if len(ve.Context) != 0 {
		return strings.Join(ve.Context, ".") + ": " + ve.Err.Error()
	} else {
		return ve.Err.Error()
	}
}

// ExtendContext type-checks |err| to a *ValidationError, and if matched extends
// it with |context|. In all cases the value of |err| is returned.
func ExtendContext(err error, format string, args ...interface{}) error {
	if ve, ok := err.(*ValidationError); ok {
		ve.Context = append([]string{fmt.Sprintf(format, args...)}, ve.Context...)
	}
	return err
}

// NewValidationError parallels fmt.Errorf to returns a new ValidationError instance.
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Err: fmt.Errorf(format, args...)}
}

// ValidateTopic ensures the topic name is of length [1, maxTopicLength] and
// has no whitespace or control runes. Both short names ("my-topic") and fully
// qualified names ("persistent://tenant/ns/my-topic") are accepted; a
// qualified name must use a known domain.
func ValidateTopic(n string) error {
	if err := validatePrintable(n, 1, maxTopicLength); err != nil {
		return err
	}
	if ind := strings.Index(n, "://"); ind != -1 {
		switch n[:ind] {
		case "persistent", "non-persistent":
		default:
			return NewValidationError("unknown topic domain (%s)", n[:ind])
		}
		if strings.Count(n[ind+3:], "/") < 2 {
			return NewValidationError("expected tenant/namespace/topic (%s)", n)
		}
	}
	return nil
}

// ValidateNamespace ensures the namespace is of the form "tenant/namespace".
func ValidateNamespace(n string) error {
	if err := validatePrintable(n, 3, maxTopicLength); err != nil {
		return err
	} else if parts := strings.Split(n, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return NewValidationError("expected tenant/namespace (%s)", n)
	}
	return nil
}

func validatePrintable(n string, min, max int) error {
	if l := len(n); l < min || l > max {
		return NewValidationError("invalid length (%d; expected %d <= length <= %d)", l, min, max)
	}
	for _, r := range n {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return NewValidationError("not a valid name (%q)", n)
		}
	}
	return nil
}

// maxTopicLength bounds topic and namespace names.
const maxTopicLength = 1024
