package request

import (
	"github.com/soldoshop/upn-nalog/pkg/apperror"
	"github.com/soldoshop/upn-nalog/pkg/upn"
)

// SlipQuery selects where a slip is shown and optionally overrides the
// configured purpose code and templates.
type SlipQuery struct {
	Context           string `form:"context" binding:"omitempty,oneof=page email"`
	Audience          string `form:"audience" binding:"omitempty,oneof=customer admin"`
	PurposeCode       string `form:"purpose_code" binding:"omitempty,max=4"`
	ReferenceTemplate string `form:"reference_template" binding:"omitempty,max=100"`
	PurposeTemplate   string `form:"purpose_template" binding:"omitempty,max=200"`
}

// TemplateErrors lists the template overrides that do not hold exactly one
// order number placeholder.
func (q *SlipQuery) TemplateErrors() []apperror.FieldError {
	var fields []apperror.FieldError
	check := func(field, template string) {
		if template != "" && !upn.ValidTemplate(template) {
			fields = append(fields, apperror.FieldError{
				Field:   field,
				Message: "must contain " + upn.Placeholder + " exactly once",
			})
		}
	}
	check("reference_template", q.ReferenceTemplate)
	check("purpose_template", q.PurposeTemplate)
	return fields
}

// Overrides returns the per-request builder overrides.
func (q *SlipQuery) Overrides() upn.Overrides {
	return upn.Overrides{
		PurposeCode:       q.PurposeCode,
		ReferenceTemplate: q.ReferenceTemplate,
		PurposeTemplate:   q.PurposeTemplate,
	}
}
