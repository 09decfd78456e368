// Package file provides a TOML-file-backed credential store.
//
// Credentials live in their own file, separate from general configuration,
// with owner-only permissions. The file is small and rewritten whole on
// every change; credential churn is rare enough that this beats partial
// updates.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.CredentialStore   = (*Store)(nil)
	_ driven.CredentialManager = (*Store)(nil)
)

// RedactedSecret replaces secret values in listings.
const RedactedSecret = "********"

// credentialRecord is the TOML representation of one credential.
type credentialRecord struct {
	ID        string    `toml:"id"`
	OwnerID   string    `toml:"owner_id"`
	Provider  string    `toml:"provider"`
	Secret    string    `toml:"secret"`
	IsDefault bool      `toml:"is_default"`
	CreatedAt time.Time `toml:"created_at"`
	UpdatedAt time.Time `toml:"updated_at"`
}

// credentialsFile is the top-level TOML document.
type credentialsFile struct {
	Credentials []credentialRecord `toml:"credentials"`
}

// Store is a TOML-file-backed credential store.
type Store struct {
	mu       sync.RWMutex
	filePath string
	records  []credentialRecord
}

// NewStore creates a credential store at the given config directory. If
// configDir is empty, it defaults to ~/.recap.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".recap")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &Store{filePath: filepath.Join(configDir, "credentials.toml")}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// HasCredential reports whether a usable default credential exists for
// the owner and provider.
func (s *Store) HasCredential(_ context.Context, ownerID string, provider domain.AIProvider) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := s.defaultRecord(ownerID, provider)
	return rec != nil && rec.Secret != "", nil
}

// DefaultSecret returns the owner's default secret for the provider.
func (s *Store) DefaultSecret(_ context.Context, ownerID string, provider domain.AIProvider) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := s.defaultRecord(ownerID, provider)
	if rec == nil || rec.Secret == "" {
		return "", domain.ErrNotFound
	}
	return rec.Secret, nil
}

// Save stores a credential. A missing ID is generated; making the
// credential the default unsets the previous default for the same
// (owner, provider) pair.
func (s *Store) Save(_ context.Context, cred domain.Credential) error {
	if cred.OwnerID == "" {
		return fmt.Errorf("%w: credential has no owner", domain.ErrInvalidInput)
	}
	if !cred.Provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, cred.Provider)
	}
	if cred.Secret == "" {
		return fmt.Errorf("%w: credential has no secret", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if cred.ID == "" {
		cred.ID = uuid.NewString()
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now

	if cred.IsDefault {
		for i := range s.records {
			if s.records[i].OwnerID == cred.OwnerID &&
				s.records[i].Provider == cred.Provider.String() {
				s.records[i].IsDefault = false
			}
		}
	}

	replaced := false
	for i := range s.records {
		if s.records[i].ID == cred.ID {
			created := s.records[i].CreatedAt
			s.records[i] = toRecord(cred)
			s.records[i].CreatedAt = created
			replaced = true
			break
		}
	}
	if !replaced {
		if cred.CreatedAt.IsZero() {
			cred.CreatedAt = now
		}
		s.records = append(s.records, toRecord(cred))
	}

	return s.save()
}

// List returns the owner's credentials with secrets redacted, newest
// first.
func (s *Store) List(_ context.Context, ownerID string) ([]domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var creds []domain.Credential
	for _, rec := range s.records {
		if rec.OwnerID != ownerID {
			continue
		}
		c := fromRecord(rec)
		c.Secret = RedactedSecret
		creds = append(creds, c)
	}

	sort.Slice(creds, func(i, j int) bool {
		return creds[i].CreatedAt.After(creds[j].CreatedAt)
	})
	return creds, nil
}

// Delete removes a credential by ID.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.save()
		}
	}
	return domain.ErrNotFound
}

// defaultRecord returns the owner's default credential for the provider.
// Falls back to the only credential when none is marked default.
func (s *Store) defaultRecord(ownerID string, provider domain.AIProvider) *credentialRecord {
	var match *credentialRecord
	matches := 0
	for i := range s.records {
		rec := &s.records[i]
		if rec.OwnerID != ownerID || rec.Provider != provider.String() {
			continue
		}
		matches++
		if rec.IsDefault {
			return rec
		}
		match = rec
	}
	if matches == 1 {
		return match
	}
	return nil
}

// load reads the credentials file; a missing file is an empty store.
func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading credentials file: %w", err)
	}

	var doc credentialsFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing credentials file: %w", err)
	}
	s.records = doc.Credentials
	return nil
}

// save rewrites the credentials file with owner-only permissions.
func (s *Store) save() error {
	data, err := toml.Marshal(credentialsFile{Credentials: s.records})
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing credentials file: %w", err)
	}
	return nil
}

func toRecord(c domain.Credential) credentialRecord {
	return credentialRecord{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Provider:  c.Provider.String(),
		Secret:    c.Secret,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromRecord(rec credentialRecord) domain.Credential {
	return domain.Credential{
		ID:        rec.ID,
		OwnerID:   rec.OwnerID,
		Provider:  domain.AIProvider(rec.Provider),
		Secret:    rec.Secret,
		IsDefault: rec.IsDefault,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
