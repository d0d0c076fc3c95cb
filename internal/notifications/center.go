// Package notifications keeps the client's notification panel reconciled
// with the server: unread badge, a bounded most-recent-first window, and
// read-state mutations applied optimistically.
//
// Every network failure in this package is isolated. Passive probes swallow
// errors entirely; user-triggered actions surface them inline through the
// snapshot. Nothing here ever blocks or breaks the surrounding dashboard
// shell.
package notifications

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/api"
	apperrors "github.com/Patrickson2/MY-DUKA-SYSTEM/internal/platform/errors"
)

// RecentWindow bounds the notification list the panel holds.
const RecentWindow = 8

// API is the narrow notification surface of the backend client.
type API interface {
	UnreadCount(ctx context.Context) (int, error)
	ListNotifications(ctx context.Context, limit int) ([]api.Notification, error)
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context) error
}

// Center is the notification panel's state machine. One instance serves the
// whole shell; all fields are guarded by mu.
type Center struct {
	api    API
	clicks *Dispatcher

	mu          sync.Mutex
	open        bool
	loading     bool
	unreadCount int
	items       []api.Notification
	active      *api.Notification
	lastErr     string
	listenerID  int
}

// State is a point-in-time copy of the panel for rendering.
type State struct {
	Open        bool
	Loading     bool
	UnreadCount int
	Items       []api.Notification
	Active      *api.Notification
	LastError   string
}

// NewCenter creates a closed, empty center. clicks may be nil when the
// surface has no boundary-click source.
func NewCenter(client API, clicks *Dispatcher) *Center {
	return &Center{api: client, clicks: clicks}
}

// Probe fetches the unread count once, at shell mount. Failures are
// swallowed so the badge never blocks page layout, and a cancelled context
// writes nothing.
func (c *Center) Probe(ctx context.Context) {
	count, err := c.api.UnreadCount(ctx)
	if err != nil || ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	c.unreadCount = count
	c.mu.Unlock()
}

// Toggle opens the panel when closed and closes it when open. It returns
// whether the panel ended up open.
func (c *Center) Toggle(ctx context.Context) bool {
	c.mu.Lock()
	wasOpen := c.open
	c.mu.Unlock()
	if wasOpen {
		c.Close()
		return false
	}
	c.Open(ctx)
	return true
}

// Open opens the panel and loads the unread count and the recent window as a
// joined pair: loading clears only once both fetches complete. The two
// results land atomically and the active notification is refreshed from the
// new window. Closing never fetches.
func (c *Center) Open(ctx context.Context) {
	c.mu.Lock()
	if c.open {
		c.mu.Unlock()
		return
	}
	c.open = true
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()

	c.attachListener()

	var (
		count int
		items []api.Notification
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		fetched, err := c.api.UnreadCount(groupCtx)
		if err != nil {
			return err
		}
		count = fetched
		return nil
	})
	group.Go(func() error {
		fetched, err := c.api.ListNotifications(groupCtx, RecentWindow)
		if err != nil {
			return err
		}
		items = fetched
		return nil
	})
	err := group.Wait()

	if ctx.Err() != nil {
		// The surface went away mid-flight; leave state alone.
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = apperrors.MessageOf(err, api.GenericErrorMessage)
		return
	}
	if len(items) > RecentWindow {
		items = items[:RecentWindow]
	}
	c.unreadCount = count
	c.items = items
	c.active = refreshActive(c.active, items)
}

// Close closes the panel without any fetch and detaches the boundary-click
// listener. The active notification is kept for the next open.
func (c *Center) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
	c.detachListener()
}

// Shutdown tears the center down when the shell unmounts.
func (c *Center) Shutdown() {
	c.Close()
}

// MarkRead marks one notification read. Already-read notifications are a
// no-op with no server call. Otherwise the server call is issued and the
// local flip applied regardless of its outcome: the unread count drops
// (floored at zero) and the held item flips. A failure only surfaces inline.
func (c *Center) MarkRead(ctx context.Context, notification api.Notification) error {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == notification.ID {
			notification.IsRead = c.items[i].IsRead
			break
		}
	}
	alreadyRead := notification.IsRead
	if !alreadyRead {
		c.lastErr = ""
	}
	c.mu.Unlock()
	if alreadyRead {
		c.setActive(notification)
		return nil
	}

	err := c.api.MarkRead(ctx, notification.ID)

	c.mu.Lock()
	if c.unreadCount > 0 {
		c.unreadCount--
	}
	for i := range c.items {
		if c.items[i].ID == notification.ID {
			c.items[i].IsRead = true
			break
		}
	}
	notification.IsRead = true
	c.active = &notification
	if err != nil {
		c.lastErr = apperrors.MessageOf(err, api.GenericErrorMessage)
	}
	c.mu.Unlock()
	return err
}

// MarkAllRead zeroes the unread count and flips every held item, regardless
// of prior state. The server call's failure only surfaces inline.
func (c *Center) MarkAllRead(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()

	err := c.api.MarkAllRead(ctx)

	c.mu.Lock()
	c.loading = false
	c.unreadCount = 0
	for i := range c.items {
		c.items[i].IsRead = true
	}
	if c.active != nil {
		flipped := *c.active
		flipped.IsRead = true
		c.active = &flipped
	}
	if err != nil {
		c.lastErr = apperrors.MessageOf(err, api.GenericErrorMessage)
	}
	c.mu.Unlock()
	return err
}

// Snapshot returns a copy of the panel state for rendering.
func (c *Center) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]api.Notification, len(c.items))
	copy(items, c.items)
	var active *api.Notification
	if c.active != nil {
		copied := *c.active
		active = &copied
	}
	return State{
		Open:        c.open,
		Loading:     c.loading,
		UnreadCount: c.unreadCount,
		Items:       items,
		Active:      active,
		LastError:   c.lastErr,
	}
}

func (c *Center) setActive(notification api.Notification) {
	c.mu.Lock()
	c.active = &notification
	c.mu.Unlock()
}

// attachListener hangs the outside-click close on the dispatcher. Attached
// only while open; detached on close and shutdown.
func (c *Center) attachListener() {
	if c.clicks == nil {
		return
	}
	id := c.clicks.Attach(func(region string) {
		if region != PanelRegion {
			c.Close()
		}
	})
	c.mu.Lock()
	c.listenerID = id
	c.mu.Unlock()
}

func (c *Center) detachListener() {
	if c.clicks == nil {
		return
	}
	c.mu.Lock()
	id := c.listenerID
	c.listenerID = 0
	c.mu.Unlock()
	if id != 0 {
		c.clicks.Detach(id)
	}
}

// refreshActive re-resolves the focused notification against a fresh window,
// dropping it when it fell out.
func refreshActive(active *api.Notification, items []api.Notification) *api.Notification {
	if active == nil {
		return nil
	}
	for i := range items {
		if items[i].ID == active.ID {
			refreshed := items[i]
			return &refreshed
		}
	}
	return nil
}
