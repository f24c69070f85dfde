package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Resource types recorded by the portal.
const (
	ResourceReport   = "report"
	ResourceExport   = "export"
	ResourceTemplate = "template"
	ResourcePayment  = "payment"
)

// Entry represents an audit log entry.
type Entry struct {
	ID            string
	FirmID        string
	Actor         string
	Role          string
	Action        string
	ResourceType  string
	ResourceID    string
	Metadata      json.RawMessage
	PayloadDigest string
	IP            string
	UserAgent     string
	CreatedAt     time.Time
}

// Logger writes audit entries.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// NewID generates a random audit id.
func NewID() string {
	return "audit-" + uuid.NewString()
}

// DigestJSON computes a SHA256 hex digest for metadata payloads.
func DigestJSON(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Nop discards entries; used when no audit backend is configured.
type Nop struct{}

// Log drops the entry.
func (Nop) Log(ctx context.Context, entry Entry) error { return nil }
