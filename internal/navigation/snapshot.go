package navigation

// Snapshot is the read-only view handed to the renderer.
type Snapshot struct {
	Collection        string      `json:"collection"`
	ActiveList        []string    `json:"active_list"`
	Loaded            []bool      `json:"loaded"`
	CurrentURL        string      `json:"current_url"`
	CurrentLoaded     bool        `json:"current_loaded"`
	PreviousURL       string      `json:"previous_url,omitempty"`
	Position          int         `json:"position"`
	Total             int         `json:"total"`
	DisplayMode       DisplayMode `json:"display_mode"`
	OverlayPersistent bool        `json:"overlay_persistent"`
	OverlayTransient  bool        `json:"overlay_transient"`
	SidebarOpen       bool        `json:"sidebar_open"`
	Note              string      `json:"note"`
}

// Snapshot captures the state for rendering.
func (c *Controller) Snapshot() Snapshot {
	loaded := make([]bool, len(c.active))
	for i, u := range c.active {
		loaded[i] = c.IsLoaded(u)
	}
	mode := DisplayNormal
	if c.st.OverlayActive() {
		mode = DisplayOverlay
	}
	current := c.CurrentURL()
	return Snapshot{
		Collection:        c.st.SelectedCollection,
		ActiveList:        c.ActiveList(),
		Loaded:            loaded,
		CurrentURL:        current,
		CurrentLoaded:     c.IsLoaded(current),
		PreviousURL:       c.st.PreviousURL,
		Position:          c.st.Position,
		Total:             len(c.active),
		DisplayMode:       mode,
		OverlayPersistent: c.st.OverlayPersistent,
		OverlayTransient:  c.st.OverlayTransient,
		SidebarOpen:       c.st.SidebarOpen,
		Note:              c.src.CollectionNote(c.st.SelectedCollection),
	}
}
