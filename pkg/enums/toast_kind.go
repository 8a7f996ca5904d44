package enums

import "fmt"

// ToastKind classifies transient notifications.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
)

var validToastKinds = []ToastKind{
	ToastSuccess,
	ToastError,
	ToastInfo,
	ToastWarning,
}

// String implements fmt.Stringer.
func (t ToastKind) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ToastKind.
func (t ToastKind) IsValid() bool {
	for _, candidate := range validToastKinds {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseToastKind converts raw input into a ToastKind.
func ParseToastKind(value string) (ToastKind, error) {
	for _, candidate := range validToastKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid toast kind %q", value)
}
