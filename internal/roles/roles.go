// Package roles maps raw role strings to the three canonical access levels
// and resolves the landing route for each level. Every gating decision in the
// client goes through this package; nothing else compares role strings.
package roles

// Role is a canonical access level.
type Role string

const (
	// Merchant owns stores and sees the merchant dashboard.
	Merchant Role = "merchant"
	// Admin manages clerks and supply requests for a store.
	Admin Role = "admin"
	// Clerk records inventory and raises supply requests.
	Clerk Role = "clerk"
)

// aliases maps legacy raw role names onto canonical roles. The identity
// mapping for the three canonical names keeps Parse total over known input.
var aliases = map[string]Role{
	"superuser": Merchant,
	"merchant":  Merchant,
	"admin":     Admin,
	"clerk":     Clerk,
}

// Parse resolves a raw role string to its canonical role. Unrecognized input
// resolves to no role, never to a default.
func Parse(raw string) (Role, bool) {
	role, ok := aliases[raw]
	return role, ok
}

// Canonical returns the canonical role for raw, or the empty Role when raw
// has no canonical mapping.
func Canonical(raw string) Role {
	role, ok := Parse(raw)
	if !ok {
		return ""
	}
	return role
}

// defaultRoutes is the fixed landing route per canonical role.
var defaultRoutes = map[Role]string{
	Admin:    "/admin",
	Clerk:    "/clerk",
	Merchant: "/merchant",
}

// DefaultRoute returns the dashboard path for a canonical role. A role with
// no canonical mapping lands on the unauthenticated root.
func DefaultRoute(role Role) string {
	if route, ok := defaultRoutes[role]; ok {
		return route
	}
	return "/"
}
