// Package navigation holds the per-viewer navigation state machine: which
// collection is shown, at which position, in which display mode, and which
// assets have finished loading.
//
// A Controller is not safe for concurrent use. Every call must come from
// the single goroutine that owns the viewer session.
package navigation

import "slices"

// Source is the read-only corpus view the controller navigates.
type Source interface {
	CollectionKeys() []string
	Images(key string) []string
	OverlayFor(imageURL string) (string, bool)
	CollectionNote(key string) string
}

// Preloader starts fetching an asset ahead of display. It must not block;
// completion is reported back through MarkLoaded or MarkFailed.
type Preloader interface {
	Preload(url string)
}

// DisplayMode is the effective rendering mode of the active list.
type DisplayMode string

const (
	DisplayNormal  DisplayMode = "normal"
	DisplayOverlay DisplayMode = "overlay"
)

// Keyboard keys understood by HandleKey.
const (
	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
)

// State is the mutable view state of one viewer.
type State struct {
	SelectedCollection string
	Position           int
	SidebarOpen        bool
	OverlayPersistent  bool
	OverlayTransient   bool
	LoadedURLs         map[string]struct{}
	LastShownURL       string
	PreviousURL        string
}

// OverlayActive reports whether either overlay flag is set.
func (s State) OverlayActive() bool { return s.OverlayPersistent || s.OverlayTransient }

// ActiveList derives the navigable URLs for st: the selected collection's
// images, each replaced by its overlay when an overlay mode is on and a
// mapping exists. The result always has as many elements as the collection
// has images.
func ActiveList(st State, src Source) []string {
	images := src.Images(st.SelectedCollection)
	out := make([]string, len(images))
	copy(out, images)
	if !st.OverlayActive() {
		return out
	}
	for i, img := range out {
		if overlay, ok := src.OverlayFor(img); ok {
			out[i] = overlay
		}
	}
	return out
}

// Controller applies navigation intents to a State.
type Controller struct {
	src    Source
	pre    Preloader
	st     State
	active []string
}

// New returns a controller showing the first selectable collection at
// position 0 with the sidebar open. pre may be nil.
func New(src Source, pre Preloader) *Controller {
	c := &Controller{
		src: src,
		pre: pre,
		st: State{
			SidebarOpen: true,
			LoadedURLs:  make(map[string]struct{}),
		},
	}
	if keys := src.CollectionKeys(); len(keys) > 0 {
		c.st.SelectedCollection = keys[0]
	}
	c.refresh()
	return c
}

// refresh re-derives the active list, re-clamps the position and, when
// anything visible changed, records the previous asset and requests
// preloading of the current asset and its neighbours.
func (c *Controller) refresh() {
	prevList := c.active
	prevPos := c.st.Position

	c.active = ActiveList(c.st, c.src)
	c.st.Position = clamp(c.st.Position, len(c.active))

	if slices.Equal(prevList, c.active) && prevPos == c.st.Position && prevList != nil {
		return
	}

	current := c.CurrentURL()
	if current != c.st.LastShownURL {
		c.st.PreviousURL = c.st.LastShownURL
		c.st.LastShownURL = current
	}
	c.preload()
}

func (c *Controller) preload() {
	if c.pre == nil || len(c.active) == 0 {
		return
	}
	pos := c.st.Position
	c.pre.Preload(c.active[pos])
	if pos > 0 {
		c.pre.Preload(c.active[pos-1])
	}
	if pos < len(c.active)-1 {
		c.pre.Preload(c.active[pos+1])
	}
}

func clamp(pos, n int) int {
	if pos > n-1 {
		pos = n - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// SelectCollection switches to another selectable collection and resets the
// position to 0. Unknown or non-selectable keys are ignored and reported
// with false. Re-selecting the current collection keeps the position.
func (c *Controller) SelectCollection(key string) bool {
	if !slices.Contains(c.src.CollectionKeys(), key) {
		return false
	}
	if key != c.st.SelectedCollection {
		c.st.SelectedCollection = key
		c.st.Position = 0
	}
	c.refresh()
	return true
}

// SetPosition jumps to index i, clamped into the active list.
func (c *Controller) SetPosition(i int) {
	c.st.Position = clamp(i, len(c.active))
	c.refresh()
}

// Step moves by delta and stops at the first and last asset. Pointer,
// wheel, swipe and button input navigate this way.
func (c *Controller) Step(delta int) {
	c.SetPosition(c.st.Position + delta)
}

// StepWrap moves by delta and wraps around both ends. Keyboard input
// navigates this way.
func (c *Controller) StepWrap(delta int) {
	n := len(c.active)
	if n == 0 {
		return
	}
	c.st.Position = ((c.st.Position+delta)%n + n) % n
	c.refresh()
}

// HandleKey applies a keyboard key and reports whether it was recognized.
func (c *Controller) HandleKey(key string) bool {
	switch key {
	case KeyArrowUp:
		c.StepWrap(-1)
	case KeyArrowDown:
		c.StepWrap(+1)
	default:
		return false
	}
	return true
}

// SetPersistentOverlayMode switches the display mode toggle.
func (c *Controller) SetPersistentOverlayMode(on bool) {
	c.st.OverlayPersistent = on
	c.refresh()
}

// SetTransientOverlayMode sets the momentary press-and-hold reveal.
func (c *Controller) SetTransientOverlayMode(on bool) {
	c.st.OverlayTransient = on
	c.refresh()
}

// SetSidebarOpen shows or hides the collection list.
func (c *Controller) SetSidebarOpen(open bool) {
	c.st.SidebarOpen = open
}

// MarkLoaded records that url finished loading. Late completions for URLs
// that are no longer near the position are recorded all the same.
func (c *Controller) MarkLoaded(url string) {
	c.st.LoadedURLs[url] = struct{}{}
}

// MarkFailed records a failed load attempt. The loaded set only grows: a
// URL that never loaded stays not-ready and is not retried, and one that
// another attempt already loaded stays loaded. Callers log the failure.
func (c *Controller) MarkFailed(string) {}

// IsLoaded reports whether url has finished loading.
func (c *Controller) IsLoaded(url string) bool {
	_, ok := c.st.LoadedURLs[url]
	return ok
}

// ActiveList returns a copy of the current active list.
func (c *Controller) ActiveList() []string {
	return slices.Clone(c.active)
}

// CurrentURL returns the asset at the current position, or "" when the
// active list is empty.
func (c *Controller) CurrentURL() string {
	if c.st.Position < 0 || c.st.Position >= len(c.active) {
		return ""
	}
	return c.active[c.st.Position]
}

// CurrentHasOverlay reports whether the base image at the current position
// has an associated overlay.
func (c *Controller) CurrentHasOverlay() bool {
	images := c.src.Images(c.st.SelectedCollection)
	if c.st.Position < 0 || c.st.Position >= len(images) {
		return false
	}
	_, ok := c.src.OverlayFor(images[c.st.Position])
	return ok
}

// State returns a copy of the view state.
func (c *Controller) State() State {
	st := c.st
	st.LoadedURLs = make(map[string]struct{}, len(c.st.LoadedURLs))
	for u := range c.st.LoadedURLs {
		st.LoadedURLs[u] = struct{}{}
	}
	return st
}
