package session

import (
	"context"

	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/api"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/nav"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/roles"
)

// IdentityClient is the narrow identity surface the restorer needs.
type IdentityClient interface {
	Me(ctx context.Context) (api.Profile, error)
}

// Restorer validates the stored session against the identity endpoint once
// at startup and settles the initial navigation state.
type Restorer struct {
	sessions *Store
	identity IdentityClient
	router   nav.Router
}

// NewRestorer creates a restorer over the session store, identity endpoint,
// and router.
func NewRestorer(sessions *Store, identity IdentityClient, router nav.Router) *Restorer {
	return &Restorer{sessions: sessions, identity: identity, router: router}
}

// Outcome reports how restoration settled.
type Outcome struct {
	// Restored is true once restoration finished, with or without a session.
	// It stays false only when ctx was cancelled mid-flight.
	Restored bool
	// Session is the validated session, nil when none survived.
	Session *Session
	// Redirected is true when exactly one replace navigation was issued.
	Redirected bool
}

// Restore runs the startup identity check.
//
// With no stored token it completes immediately without touching the
// network. With one, the identity endpoint decides: success merges the fresh
// profile and moves an authenticated visitor off entry pages; failure clears
// the session and moves the visitor to login unless already there. Both
// redirects use replace so the interrupted page never re-enters history, and
// each fires from at most one side, which keeps the flow loop-free. After
// ctx is cancelled no state is written and no redirect is issued.
func (r *Restorer) Restore(ctx context.Context) Outcome {
	stored, err := r.sessions.Read(ctx)
	if err != nil || stored == nil {
		if ctx.Err() != nil {
			return Outcome{}
		}
		return Outcome{Restored: true}
	}

	profile, err := r.identity.Me(ctx)
	if ctx.Err() != nil {
		return Outcome{}
	}
	if err != nil {
		_ = r.sessions.Clear(ctx)
		redirected := false
		if r.router.CurrentPath() != nav.LoginPath {
			r.router.Replace(nav.LoginPath)
			redirected = true
		}
		return Outcome{Restored: true, Redirected: redirected}
	}

	_ = r.sessions.Save(ctx, stored.AccessToken, profile, stored.RefreshToken)
	refreshed := &Session{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		User:         profile,
		ExpiresAt:    TokenExpiry(stored.AccessToken),
	}

	redirected := false
	if nav.IsEntryPath(r.router.CurrentPath()) {
		r.router.Replace(roles.DefaultRoute(roles.Canonical(profile.Role)))
		redirected = true
	}
	return Outcome{Restored: true, Session: refreshed, Redirected: redirected}
}
