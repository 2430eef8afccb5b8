package selection

import (
	"context"
	"errors"
	"log"
	"sync"

	"campus_paths/pkg/campus"
	"campus_paths/pkg/pathservice"
)

var (
	// ErrStale is returned by Go when a newer lookup, a clear or a reversal
	// happened while the request was in flight. The response is discarded.
	ErrStale = errors.New("route response superseded")
	// ErrClosed is returned once the controller has been closed. Responses
	// that resolve after Close are discarded.
	ErrClosed = errors.New("selection closed")
)

// ServerErrorMessage is what the user is told when the route service fails.
const ServerErrorMessage = "There was an error contacting the server."

// Observer is told the current route path every time the route changes.
// The slice is owned by the observer.
type Observer func(path []campus.Segment)

// Notifier surfaces a blocking error notification to the user.
type Notifier func(message string, err error)

// Controller owns one selection State and drives it from user actions.
// All transitions are serialized; observers and notifiers run outside the
// state lock, in the order the transitions happened.
type Controller struct {
	svc      pathservice.Service
	observer Observer
	notify   Notifier

	mu      sync.Mutex
	state   State
	catalog *campus.Catalog
	gen     uint64 // bumped by every transition that invalidates in-flight lookups
	closed  bool

	emitMu sync.Mutex
}

// New creates a controller. A nil observer or notifier is ignored; a nil
// notifier logs instead.
func New(svc pathservice.Service, observer Observer, notify Notifier) *Controller {
	if observer == nil {
		observer = func([]campus.Segment) {}
	}
	if notify == nil {
		notify = func(msg string, err error) {
			log.Printf("%s (%v)", msg, err)
		}
	}
	return &Controller{
		svc:      svc,
		observer: observer,
		notify:   notify,
		catalog:  campus.NewCatalog(nil),
	}
}

// LoadBuildings fetches the option set from the route service. On failure
// the user is notified and the option set stays empty; there is no retry.
func (c *Controller) LoadBuildings(ctx context.Context) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	bldgs, err := c.svc.Buildings(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.emitMu.Lock()
		c.mu.Unlock()
		defer c.emitMu.Unlock()
		c.notify(ServerErrorMessage, err)
		return err
	}
	c.catalog = campus.NewCatalog(bldgs)
	c.mu.Unlock()
	return nil
}

// Catalog returns the loaded option set. It is empty until LoadBuildings
// succeeds.
func (c *Controller) Catalog() *campus.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// State returns a snapshot of the current selection.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// SelectStart sets the start building. It neither validates nor fetches.
func (c *Controller) SelectStart(shortName string) {
	c.mu.Lock()
	c.state = c.state.WithStart(shortName)
	c.mu.Unlock()
}

// SelectEnd sets the end building. It neither validates nor fetches.
func (c *Controller) SelectEnd(shortName string) {
	c.mu.Lock()
	c.state = c.state.WithEnd(shortName)
	c.mu.Unlock()
}

// Clear returns to the initial state and tells the observer the route is
// empty. Lookups in flight are discarded when they resolve.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.state = State{}
	c.gen++
	c.emitLocked(nil, nil)
}

// Go validates the selection and looks up the route. Validation failures
// set the alert and return without a network call. A service failure
// notifies the user and leaves the stored route unchanged.
func (c *Controller) Go(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err := c.state.Validate(); err != nil {
		c.state = c.state.Alerted(err)
		c.mu.Unlock()
		return err
	}
	start, end := c.state.StartValue, c.state.EndValue
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	route, err := c.svc.FindPath(ctx, start, end)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if gen != c.gen {
		c.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		c.emitLocked(c.state.Path(), err)
		return err
	}
	c.state = c.state.Routed(route)
	c.emitLocked(c.state.Path(), nil)
	return nil
}

// Reverse swaps the start and end buildings and flips the stored route
// without a network call. It fails with ErrNoRouteYet when no route has
// been looked up.
func (c *Controller) Reverse() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	next, err := c.state.Reversed()
	c.state = next
	switch {
	case errors.Is(err, ErrNoRouteYet):
		c.emitLocked(nil, nil)
		return err
	case err != nil:
		c.mu.Unlock()
		return err
	}
	c.gen++
	c.emitLocked(c.state.Path(), nil)
	return nil
}

// Close tears the controller down. Any response resolving afterwards is
// ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.gen++
	c.mu.Unlock()
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// emitLocked hands off from the state lock to the emit lock so that
// callbacks run unlocked but in transition order. c.mu must be held; it is
// released before returning.
func (c *Controller) emitLocked(path []campus.Segment, err error) {
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	if err != nil {
		c.notify(ServerErrorMessage, err)
	}
	if path == nil {
		path = []campus.Segment{}
	}
	c.observer(path)
}
