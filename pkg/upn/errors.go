package upn

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAccount means no receiving account (or IBAN) is configured and no
// slip should be produced.
var ErrMissingAccount = errors.New("upn: no merchant bank account configured")

// InvalidOrderDataError lists the required order fields that were empty.
type InvalidOrderDataError struct {
	Fields []string
}

func (e *InvalidOrderDataError) Error() string {
	return "upn: invalid order data: " + strings.Join(e.Fields, ", ")
}

// TemplateError reports a reference or purpose template that does not hold
// exactly one order number placeholder.
type TemplateError struct {
	Name     string
	Template string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("upn: %s template %q must contain exactly one %s placeholder", e.Name, e.Template, Placeholder)
}

// RenderError wraps a failure of an image or QR renderer.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "upn: render failed: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
