package domain

import "time"

// Credential is an API secret owned by a user for a specific provider.
// The core treats the secret as opaque: it only ever asks "does a usable
// credential exist for (owner, provider)" and "what is the secret value".
//
// Each owner may hold several credentials per provider, at most one of
// which is the default. Generation resolves the default credential per
// request and never silently falls back to a different provider.
type Credential struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// OwnerID identifies the user the credential belongs to.
	OwnerID string `json:"owner_id"`

	// Provider is the AI provider the secret is valid for.
	Provider AIProvider `json:"provider"`

	// Secret is the API key value.
	Secret string `json:"secret"`

	// IsDefault marks the credential resolved for this (owner, provider)
	// pair. Making a credential the default unsets the previous one.
	IsDefault bool `json:"is_default"`

	// CreatedAt is when the credential was stored.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the credential was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsUsable returns true if the credential carries a non-empty secret.
func (c *Credential) IsUsable() bool {
	return c.Secret != ""
}
