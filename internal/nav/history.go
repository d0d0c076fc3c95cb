package nav

import (
	"strings"
	"sync"
)

// OpKind distinguishes the two redirect semantics.
type OpKind string

const (
	// OpPush keeps the previous entry reachable via back navigation.
	OpPush OpKind = "push"
	// OpReplace discards the previous entry.
	OpReplace OpKind = "replace"
)

// Op records one navigation operation.
type Op struct {
	Kind OpKind
	Path string
}

// History is an in-memory Router with full operation recording. It backs the
// local shell and lets tests assert exact redirect counts and semantics.
type History struct {
	mu    sync.Mutex
	stack []string
	ops   []Op
}

// NewHistory creates a history positioned at start.
func NewHistory(start string) *History {
	if strings.TrimSpace(start) == "" {
		start = RootPath
	}
	return &History{stack: []string{start}}
}

// CurrentPath returns the path on top of the stack, without query.
func (h *History) CurrentPath() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	current := h.stack[len(h.stack)-1]
	if idx := strings.IndexByte(current, '?'); idx >= 0 {
		current = current[:idx]
	}
	return current
}

// Push navigates to path, keeping the current entry.
func (h *History) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = append(h.stack, path)
	h.ops = append(h.ops, Op{Kind: OpPush, Path: path})
}

// Replace navigates to path, replacing the current entry.
func (h *History) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack[len(h.stack)-1] = path
	h.ops = append(h.ops, Op{Kind: OpReplace, Path: path})
}

// Ops returns a snapshot of every recorded navigation operation.
func (h *History) Ops() []Op {
	h.mu.Lock()
	defer h.mu.Unlock()
	snapshot := make([]Op, len(h.ops))
	copy(snapshot, h.ops)
	return snapshot
}

// Depth returns the number of entries on the stack.
func (h *History) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}
