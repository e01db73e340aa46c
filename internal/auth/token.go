package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const envToken = "PANTRY_TOKEN"

// TokenInfo describes the API token the server accepts.
// Only a bcrypt hash is written to disk; the env override stays in memory.
type TokenInfo struct {
	Hash      string    `json:"hash"`
	Source    string    `json:"source"`     // "env" | "file"
	CreatedAt time.Time `json:"created_at"` // when we saved to file

	plain string
}

// Get returns the configured token, or nil when none is set.
func Get(credPath string) (*TokenInfo, error) {
	// 1) env override
	env := strings.TrimSpace(os.Getenv(envToken))
	if env != "" {
		return &TokenInfo{Source: "env", plain: StripBearer(env)}, nil
	}

	// 2) file
	b, err := os.ReadFile(credPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var ti TokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if ti.Hash == "" {
		return nil, fmt.Errorf("parse credentials: missing hash")
	}
	return &ti, nil
}

// Set hashes token and stores it owner-only at credPath.
func Set(credPath, token string, now time.Time) error {
	token = StripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(credPath), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	ti := TokenInfo{
		Hash:      string(hash),
		Source:    "file",
		CreatedAt: now,
	}
	b, err := json.MarshalIndent(ti, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(credPath, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Delete removes the stored token. A missing file is not an error.
func Delete(credPath string) error {
	if err := os.Remove(credPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Verify reports whether token matches.
func (ti *TokenInfo) Verify(token string) bool {
	token = StripBearer(strings.TrimSpace(token))
	if token == "" {
		return false
	}
	if ti.plain != "" {
		return subtle.ConstantTimeCompare([]byte(ti.plain), []byte(token)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(ti.Hash), []byte(token)) == nil
}

func StripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
