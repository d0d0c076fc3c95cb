package notifications

import "sync"

// PanelRegion is the click region covering the notification panel. Clicks
// reported with any other region count as outside the panel.
const PanelRegion = "notifications-panel"

// ClickListener receives the region a boundary click landed on.
type ClickListener func(region string)

// Dispatcher fans boundary clicks out to attached listeners. It stands in
// for the document-level click handling the shell hangs the outside-click
// close on; the center attaches only while its panel is open.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]ClickListener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[int]ClickListener)}
}

// Attach registers a listener and returns its handle.
func (d *Dispatcher) Attach(listener ClickListener) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.listeners[d.nextID] = listener
	return d.nextID
}

// Detach removes a listener by handle. Detaching twice is harmless.
func (d *Dispatcher) Detach(id int) {
	d.mu.Lock()
	delete(d.listeners, id)
	d.mu.Unlock()
}

// Click reports a click on region to every attached listener.
func (d *Dispatcher) Click(region string) {
	d.mu.Lock()
	attached := make([]ClickListener, 0, len(d.listeners))
	for _, listener := range d.listeners {
		attached = append(attached, listener)
	}
	d.mu.Unlock()

	for _, listener := range attached {
		listener(region)
	}
}

// ListenerCount returns how many listeners are attached.
func (d *Dispatcher) ListenerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}
