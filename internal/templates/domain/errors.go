package templates

import "errors"

var (
	// ErrEmptyTemplateID indicates a template without an identifier.
	ErrEmptyTemplateID = errors.New("templates: empty template id")
	// ErrEmptyTemplateName indicates a template without a display name.
	ErrEmptyTemplateName = errors.New("templates: empty template name")
	// ErrEmptyTemplateOwner indicates a template without an owner.
	ErrEmptyTemplateOwner = errors.New("templates: empty template owner")
	// ErrTemplateNotFound indicates a lookup missed.
	ErrTemplateNotFound = errors.New("templates: template not found")
	// ErrNotTemplateOwner indicates a caller acting on someone else's template.
	ErrNotTemplateOwner = errors.New("templates: caller does not own template")
)
