package driven

import (
	"context"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// CredentialStore resolves per-user API credentials.
// The generation path only needs the two lookup operations; management of
// credentials (creation, defaults) is a concern of the store's own surface.
type CredentialStore interface {
	// HasCredential reports whether a usable credential exists for the
	// owner and provider.
	HasCredential(ctx context.Context, ownerID string, provider domain.AIProvider) (bool, error)

	// DefaultSecret returns the owner's default secret for the provider,
	// or domain.ErrNotFound when none exists.
	DefaultSecret(ctx context.Context, ownerID string, provider domain.AIProvider) (string, error)
}

// CredentialManager extends CredentialStore with management operations
// used by the CLI credential commands.
type CredentialManager interface {
	CredentialStore

	// Save stores a credential. When the credential is marked default, the
	// previous default for the same (owner, provider) pair is unset.
	Save(ctx context.Context, cred domain.Credential) error

	// List returns all credentials of an owner, secrets redacted.
	List(ctx context.Context, ownerID string) ([]domain.Credential, error)

	// Delete removes a credential by ID.
	Delete(ctx context.Context, id string) error
}
