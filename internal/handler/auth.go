package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/repository"
)

// staffKey is the context key for the authenticated staff identity.
type staffKey struct{}

// StaffFromContext returns the authenticated staff key, if any.
func StaffFromContext(ctx context.Context) (*repository.StaffKey, bool) {
	k, ok := ctx.Value(staffKey{}).(*repository.StaffKey)
	return k, ok
}

// KeyStore provides lookup of staff API keys by their HMAC hash.
type KeyStore interface {
	FindByHash(ctx context.Context, hash string) (*repository.StaffKey, error)
}

// StaffAuth authenticates staff requests via HMAC-SHA256 hashed API keys
// carried in the X-API-Key header.
type StaffAuth struct {
	keys   KeyStore
	pepper []byte
}

// NewStaffAuth creates a StaffAuth with the given key store and HMAC pepper.
func NewStaffAuth(keys KeyStore, pepper []byte) *StaffAuth {
	return &StaffAuth{keys: keys, pepper: pepper}
}

// HashKey computes the hex-encoded HMAC-SHA256 of an API key under the
// configured pepper. Exposed for seeding tooling.
func (a *StaffAuth) HashKey(apiKey string) string {
	mac := hmac.New(sha256.New, a.pepper)
	mac.Write([]byte(apiKey))
	return hex.EncodeToString(mac.Sum(nil))
}

// Authenticate resolves the staff identity for an API key.
func (a *StaffAuth) Authenticate(ctx context.Context, apiKey string) (*repository.StaffKey, error) {
	if apiKey == "" {
		return nil, errors.New("missing API key")
	}
	k, err := a.keys.FindByHash(ctx, a.HashKey(apiKey))
	if err != nil {
		return nil, errors.New("unauthorized")
	}
	return k, nil
}

// Require is a middleware that rejects requests without a valid staff key and
// stores the staff identity in the request context.
func (a *StaffAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		k, err := a.Authenticate(r.Context(), r.Header.Get("X-API-Key"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), staffKey{}, k)))
	})
}
