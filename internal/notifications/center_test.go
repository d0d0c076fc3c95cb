package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/api"
)

type fakeAPI struct {
	mu sync.Mutex

	count    int
	countErr error
	items    []api.Notification
	listErr  error

	markErr    error
	markAllErr error

	countCalls   int
	listCalls    int
	listLimit    int
	markCalls    []int
	markAllCalls int
}

func (f *fakeAPI) UnreadCount(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	return f.count, f.countErr
}

func (f *fakeAPI) ListNotifications(ctx context.Context, limit int) ([]api.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.listLimit = limit
	return f.items, f.listErr
}

func (f *fakeAPI) MarkRead(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls = append(f.markCalls, id)
	return f.markErr
}

func (f *fakeAPI) MarkAllRead(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markAllCalls++
	return f.markAllErr
}

func unread(id int) api.Notification {
	return api.Notification{ID: id, Category: CategoryMessage, Title: "hello"}
}

func TestProbeSetsBadge(t *testing.T) {
	backend := &fakeAPI{count: 4}
	center := NewCenter(backend, nil)

	center.Probe(context.Background())

	if got := center.Snapshot().UnreadCount; got != 4 {
		t.Errorf("UnreadCount = %d, want 4", got)
	}
}

func TestProbeSwallowsFailure(t *testing.T) {
	backend := &fakeAPI{countErr: errors.New("backend down")}
	center := NewCenter(backend, nil)

	center.Probe(context.Background())

	state := center.Snapshot()
	if state.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", state.UnreadCount)
	}
	if state.LastError != "" {
		t.Errorf("LastError = %q, want empty", state.LastError)
	}
}

func TestProbeCancelledContextWritesNothing(t *testing.T) {
	backend := &fakeAPI{count: 9}
	center := NewCenter(backend, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	center.Probe(ctx)

	if got := center.Snapshot().UnreadCount; got != 0 {
		t.Errorf("UnreadCount = %d, want 0 after cancelled probe", got)
	}
}

func TestOpenLoadsCountAndWindowTogether(t *testing.T) {
	backend := &fakeAPI{
		count: 2,
		items: []api.Notification{unread(1), unread(2), unread(3)},
	}
	center := NewCenter(backend, nil)

	center.Open(context.Background())

	state := center.Snapshot()
	if !state.Open {
		t.Fatal("panel should be open")
	}
	if state.Loading {
		t.Error("loading should clear once both fetches complete")
	}
	if state.UnreadCount != 2 {
		t.Errorf("UnreadCount = %d, want 2", state.UnreadCount)
	}
	if len(state.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(state.Items))
	}
	if backend.listLimit != RecentWindow {
		t.Errorf("list limit = %d, want %d", backend.listLimit, RecentWindow)
	}
}

func TestOpenTruncatesOversizedWindow(t *testing.T) {
	items := make([]api.Notification, RecentWindow+5)
	for i := range items {
		items[i] = unread(i + 1)
	}
	backend := &fakeAPI{items: items}
	center := NewCenter(backend, nil)

	center.Open(context.Background())

	if got := len(center.Snapshot().Items); got != RecentWindow {
		t.Errorf("len(Items) = %d, want %d", got, RecentWindow)
	}
}

func TestOpenFailureSurfacesInline(t *testing.T) {
	backend := &fakeAPI{listErr: errors.New("boom")}
	center := NewCenter(backend, nil)

	center.Open(context.Background())

	state := center.Snapshot()
	if !state.Open {
		t.Error("panel stays open on a failed load")
	}
	if state.Loading {
		t.Error("loading should clear even on failure")
	}
	if state.LastError == "" {
		t.Error("LastError should carry the failure")
	}
}

func TestOpenWhileOpenIsNoop(t *testing.T) {
	backend := &fakeAPI{}
	center := NewCenter(backend, nil)

	center.Open(context.Background())
	center.Open(context.Background())

	if backend.listCalls != 1 {
		t.Errorf("listCalls = %d, want 1", backend.listCalls)
	}
}

func TestCloseNeverFetches(t *testing.T) {
	backend := &fakeAPI{}
	center := NewCenter(backend, nil)

	center.Open(context.Background())
	fetches := backend.countCalls + backend.listCalls
	center.Close()

	if got := backend.countCalls + backend.listCalls; got != fetches {
		t.Errorf("fetches = %d after close, want %d", got, fetches)
	}
	if center.Snapshot().Open {
		t.Error("panel should be closed")
	}
}

func TestToggleFlipsPanel(t *testing.T) {
	center := NewCenter(&fakeAPI{}, nil)

	if !center.Toggle(context.Background()) {
		t.Error("first toggle should open")
	}
	if center.Toggle(context.Background()) {
		t.Error("second toggle should close")
	}
}

func TestListenerAttachedOnlyWhileOpen(t *testing.T) {
	clicks := NewDispatcher()
	center := NewCenter(&fakeAPI{}, clicks)

	if got := clicks.ListenerCount(); got != 0 {
		t.Fatalf("listeners before open = %d, want 0", got)
	}
	center.Open(context.Background())
	if got := clicks.ListenerCount(); got != 1 {
		t.Fatalf("listeners while open = %d, want 1", got)
	}
	center.Close()
	if got := clicks.ListenerCount(); got != 0 {
		t.Errorf("listeners after close = %d, want 0", got)
	}
}

func TestOutsideClickClosesPanel(t *testing.T) {
	clicks := NewDispatcher()
	center := NewCenter(&fakeAPI{}, clicks)
	center.Open(context.Background())

	clicks.Click("dashboard")

	if center.Snapshot().Open {
		t.Error("outside click should close the panel")
	}
	if got := clicks.ListenerCount(); got != 0 {
		t.Errorf("listeners after outside click = %d, want 0", got)
	}
}

func TestClickInsidePanelKeepsItOpen(t *testing.T) {
	clicks := NewDispatcher()
	center := NewCenter(&fakeAPI{}, clicks)
	center.Open(context.Background())

	clicks.Click(PanelRegion)

	if !center.Snapshot().Open {
		t.Error("click inside the panel should not close it")
	}
}

func TestMarkReadFlipsLocallyAndDecrements(t *testing.T) {
	backend := &fakeAPI{count: 2, items: []api.Notification{unread(1), unread(2)}}
	center := NewCenter(backend, nil)
	center.Open(context.Background())

	if err := center.MarkRead(context.Background(), unread(1)); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	state := center.Snapshot()
	if state.UnreadCount != 1 {
		t.Errorf("UnreadCount = %d, want 1", state.UnreadCount)
	}
	if !state.Items[0].IsRead {
		t.Error("held item should flip to read")
	}
	if state.Active == nil || state.Active.ID != 1 || !state.Active.IsRead {
		t.Errorf("Active = %+v, want read notification 1", state.Active)
	}
	if len(backend.markCalls) != 1 || backend.markCalls[0] != 1 {
		t.Errorf("markCalls = %v, want [1]", backend.markCalls)
	}
}

func TestMarkReadAlreadyReadSkipsServer(t *testing.T) {
	read := unread(7)
	read.IsRead = true
	backend := &fakeAPI{items: []api.Notification{read}}
	center := NewCenter(backend, nil)
	center.Open(context.Background())

	if err := center.MarkRead(context.Background(), read); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	if len(backend.markCalls) != 0 {
		t.Errorf("markCalls = %v, want none", backend.markCalls)
	}
	state := center.Snapshot()
	if state.Active == nil || state.Active.ID != 7 {
		t.Errorf("Active = %+v, want notification 7", state.Active)
	}
}

func TestMarkReadTrustsHeldStateOverArgument(t *testing.T) {
	read := unread(3)
	read.IsRead = true
	backend := &fakeAPI{items: []api.Notification{read}}
	center := NewCenter(backend, nil)
	center.Open(context.Background())

	stale := unread(3) // caller's copy still says unread
	if err := center.MarkRead(context.Background(), stale); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if len(backend.markCalls) != 0 {
		t.Errorf("markCalls = %v, want none", backend.markCalls)
	}
}

func TestMarkReadFailureStillFlipsLocally(t *testing.T) {
	backend := &fakeAPI{
		count:   1,
		items:   []api.Notification{unread(5)},
		markErr: errors.New("write failed"),
	}
	center := NewCenter(backend, nil)
	center.Open(context.Background())

	err := center.MarkRead(context.Background(), unread(5))
	if err == nil {
		t.Fatal("expected error")
	}

	state := center.Snapshot()
	if state.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0 despite failure", state.UnreadCount)
	}
	if !state.Items[0].IsRead {
		t.Error("held item should flip despite failure")
	}
	if state.LastError == "" {
		t.Error("LastError should carry the failure")
	}
}

func TestMarkReadFloorsCountAtZero(t *testing.T) {
	backend := &fakeAPI{count: 0, items: []api.Notification{unread(1)}}
	center := NewCenter(backend, nil)
	center.Open(context.Background())

	if err := center.MarkRead(context.Background(), unread(1)); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if got := center.Snapshot().UnreadCount; got != 0 {
		t.Errorf("UnreadCount = %d, want floor at 0", got)
	}
}

func TestMarkAllReadFlipsEverything(t *testing.T) {
	backend := &fakeAPI{count: 3, items: []api.Notification{unread(1), unread(2), unread(3)}}
	center := NewCenter(backend, nil)
	center.Open(context.Background())

	if err := center.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}

	state := center.Snapshot()
	if state.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", state.UnreadCount)
	}
	for i, item := range state.Items {
		if !item.IsRead {
			t.Errorf("item %d should be read", i)
		}
	}
	if backend.markAllCalls != 1 {
		t.Errorf("markAllCalls = %d, want 1", backend.markAllCalls)
	}
}

func TestMarkAllReadFailureStillZeroes(t *testing.T) {
	backend := &fakeAPI{
		count:      2,
		items:      []api.Notification{unread(1), unread(2)},
		markAllErr: errors.New("write failed"),
	}
	center := NewCenter(backend, nil)
	center.Open(context.Background())

	if err := center.MarkAllRead(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	state := center.Snapshot()
	if state.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0 despite failure", state.UnreadCount)
	}
	if state.Loading {
		t.Error("loading should clear after the call returns")
	}
	if state.LastError == "" {
		t.Error("LastError should carry the failure")
	}
}

func TestOpenRefreshesActiveFromWindow(t *testing.T) {
	stale := unread(2)
	backend := &fakeAPI{items: []api.Notification{stale}}
	center := NewCenter(backend, nil)
	center.Open(context.Background())
	if err := center.MarkRead(context.Background(), stale); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	center.Close()

	// The window the next open fetches no longer contains notification 2.
	backend.mu.Lock()
	backend.items = []api.Notification{unread(9)}
	backend.mu.Unlock()
	center.Open(context.Background())

	if active := center.Snapshot().Active; active != nil {
		t.Errorf("Active = %+v, want dropped after falling out of the window", active)
	}
}

func TestShutdownDetachesListener(t *testing.T) {
	clicks := NewDispatcher()
	center := NewCenter(&fakeAPI{}, clicks)
	center.Open(context.Background())

	center.Shutdown()

	if got := clicks.ListenerCount(); got != 0 {
		t.Errorf("listeners after shutdown = %d, want 0", got)
	}
}
