package auth

import "context"

type contextKey string

const (
	contextKeyFirm    contextKey = "auth.firm_id"
	contextKeyRole    contextKey = "auth.role"
	contextKeySubject contextKey = "auth.subject"
)

// Identity is the caller identity the reporting engine treats as opaque.
type Identity struct {
	FirmID  string
	Role    Role
	Subject string
}

// WithIdentity stores auth identity details in context.
func WithIdentity(ctx context.Context, firmID string, role Role, subject string) context.Context {
	ctx = context.WithValue(ctx, contextKeyFirm, firmID)
	ctx = context.WithValue(ctx, contextKeyRole, role)
	ctx = context.WithValue(ctx, contextKeySubject, subject)
	return ctx
}

// IdentityFromContext extracts the caller identity from context.
func IdentityFromContext(ctx context.Context) Identity {
	return Identity{
		FirmID:  FirmIDFromContext(ctx),
		Role:    RoleFromContext(ctx),
		Subject: SubjectFromContext(ctx),
	}
}

// FirmIDFromContext extracts firm id from context.
func FirmIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value := ctx.Value(contextKeyFirm)
	if firmID, ok := value.(string); ok {
		return firmID
	}
	return ""
}

// RoleFromContext extracts role from context.
func RoleFromContext(ctx context.Context) Role {
	if ctx == nil {
		return ""
	}
	value := ctx.Value(contextKeyRole)
	if role, ok := value.(Role); ok {
		return role
	}
	if role, ok := value.(string); ok {
		if normalized, valid := NormalizeRole(role); valid {
			return normalized
		}
	}
	return ""
}

// SubjectFromContext extracts subject from context.
func SubjectFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value := ctx.Value(contextKeySubject)
	if subject, ok := value.(string); ok {
		return subject
	}
	return ""
}
