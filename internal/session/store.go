// Package session holds the client's durable session (token plus cached
// profile) and restores it against the identity endpoint at startup.
//
// The session is all-or-nothing: Read returns the full session or nil, never
// a partial one. Writes happen only from login, invite completion, the
// restorer, and logout; every other consumer reads.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/api"
	apperrors "github.com/Patrickson2/MY-DUKA-SYSTEM/internal/platform/errors"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/storage"
)

// Storage keys, shared with the original browser client so a migrated
// localStorage dump stays readable.
const (
	accessTokenKey  = "myduka_access_token"
	refreshTokenKey = "myduka_refresh_token"
	userKey         = "myduka_user"
)

// Session is the authenticated state authorizing protected views.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         api.Profile
	// ExpiresAt is informational, read from the token's exp claim without
	// signature verification. The server remains the authority; the client
	// never gates on it.
	ExpiresAt time.Time
}

// Store persists the session in durable key-value storage. It performs no
// freshness validation; that is the Restorer's job.
type Store struct {
	kv storage.Store
}

// NewStore creates a session store over kv.
func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Save stores a complete session. refreshToken may be empty; the previous
// refresh token is then left in place, matching the original client.
func (s *Store) Save(ctx context.Context, accessToken string, user api.Profile, refreshToken string) error {
	if err := s.kv.Set(ctx, accessTokenKey, accessToken); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "save access token", err)
	}
	if refreshToken != "" {
		if err := s.kv.Set(ctx, refreshTokenKey, refreshToken); err != nil {
			return apperrors.Wrap(apperrors.CodeStorage, "save refresh token", err)
		}
	}
	encoded, err := json.Marshal(user)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "encode profile", err)
	}
	if err := s.kv.Set(ctx, userKey, string(encoded)); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "save profile", err)
	}
	return nil
}

// Read returns the stored session, or nil when absent. A cached profile that
// no longer decodes is removed and the session reported absent.
func (s *Store) Read(ctx context.Context) (*Session, error) {
	token, ok, err := s.kv.Get(ctx, accessTokenKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "read access token", err)
	}
	if !ok || token == "" {
		return nil, nil
	}

	rawUser, ok, err := s.kv.Get(ctx, userKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "read profile", err)
	}
	if !ok {
		return nil, nil
	}
	var user api.Profile
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		_ = s.kv.Remove(ctx, userKey)
		return nil, nil
	}

	refreshToken, _, err := s.kv.Get(ctx, refreshTokenKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "read refresh token", err)
	}

	return &Session{
		AccessToken:  token,
		RefreshToken: refreshToken,
		User:         user,
		ExpiresAt:    TokenExpiry(token),
	}, nil
}

// AccessToken returns just the stored token, or empty when signed out.
func (s *Store) AccessToken(ctx context.Context) string {
	token, ok, err := s.kv.Get(ctx, accessTokenKey)
	if err != nil || !ok {
		return ""
	}
	return token
}

// Clear removes the whole session.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, accessTokenKey); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "clear access token", err)
	}
	if err := s.kv.Remove(ctx, refreshTokenKey); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "clear refresh token", err)
	}
	if err := s.kv.Remove(ctx, userKey); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "clear profile", err)
	}
	return nil
}

// TokenExpiry reads the exp claim from a JWT without verifying it. It
// returns the zero time when the token does not parse or carries no expiry.
func TokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time.UTC()
}
