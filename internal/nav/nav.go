// Package nav abstracts the client's router: reading the current path and
// redirecting with explicit replace-vs-push semantics. Redirect-loop guards
// in the restorer and route guard are expressed against this package.
package nav

import "strings"

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// RootPath is the unauthenticated landing page.
const RootPath = "/"

// entryPaths are routes intended only for unauthenticated visitors. An
// authenticated visitor is redirected away from them.
var entryPaths = map[string]bool{
	RootPath:  true,
	LoginPath: true,
}

// IsEntryPath reports whether path is an entry path, ignoring the query.
func IsEntryPath(path string) bool {
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	return entryPaths[path]
}

// Router is the navigation surface consumed by the restorer and the shell.
type Router interface {
	// CurrentPath returns the path currently rendered, without query.
	CurrentPath() string
	// Push navigates to path, keeping the current entry in history.
	Push(path string)
	// Replace navigates to path, replacing the current history entry.
	Replace(path string)
}
