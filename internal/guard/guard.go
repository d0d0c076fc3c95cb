// Package guard gates protected views on the current session and role.
package guard

import (
	"context"

	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/nav"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/roles"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/session"
)

// SessionReader is the narrow session surface the guard consumes.
type SessionReader interface {
	Read(ctx context.Context) (*session.Session, error)
}

// Decision is the ephemeral result of one guard evaluation. It is computed
// per render and never persisted.
type Decision struct {
	// Allow renders the protected children.
	Allow bool
	// Redirect is the target path when Allow is false.
	Redirect string
	// Replace is always true for guard redirects; the blocked render must
	// not enter history.
	Replace bool
}

// Guard wraps a protected view with an allowed-role set. An empty set admits
// any authenticated role.
type Guard struct {
	Sessions     SessionReader
	AllowedRoles []roles.Role
}

// Evaluate gates one render of the protected view at currentPath.
//
// No session sends the visitor to login. An authenticated visitor whose role
// is outside the allowed set is sent to their own default route, not to
// login. Evaluation mutates nothing, so repeated calls with an unchanged
// session yield the same decision; a redirect that would target the current
// path degrades to Allow so the guard can never loop.
func (g Guard) Evaluate(ctx context.Context, currentPath string) Decision {
	sess, err := g.Sessions.Read(ctx)
	if err != nil || sess == nil {
		return redirect(currentPath, nav.LoginPath)
	}

	if len(g.AllowedRoles) == 0 {
		return Decision{Allow: true}
	}

	role, ok := roles.Parse(sess.User.Role)
	if ok {
		for _, allowed := range g.AllowedRoles {
			if role == allowed {
				return Decision{Allow: true}
			}
		}
	}
	return redirect(currentPath, roles.DefaultRoute(role))
}

func redirect(currentPath, target string) Decision {
	if currentPath == target {
		return Decision{Allow: true}
	}
	return Decision{Redirect: target, Replace: true}
}
