package viewer

import (
	"time"

	"github.com/ziadkadry99/casegallery/internal/gesture"
	"github.com/ziadkadry99/casegallery/internal/navigation"
)

// Client message types.
const (
	msgSelect      = "select"
	msgPosition    = "position"
	msgStep        = "step"
	msgKey         = "key"
	msgMode        = "mode"
	msgSidebar     = "sidebar"
	msgWheel       = "wheel"
	msgTouchStart  = "touch_start"
	msgTouchMove   = "touch_move"
	msgTouchEnd    = "touch_end"
	msgTouchCancel = "touch_cancel"
	msgPress       = "press"
	msgRelease     = "release"
	msgLoaded      = "loaded"
	msgLoadFailed  = "load_failed"
)

// clientMessage is the incoming WebSocket message format. Only the fields
// relevant to Type are read.
type clientMessage struct {
	Type       string  `json:"type"`
	Collection string  `json:"collection,omitempty"` // select
	Position   int     `json:"position,omitempty"`   // position
	Delta      int     `json:"delta,omitempty"`      // step
	Key        string  `json:"key,omitempty"`        // key
	Overlay    bool    `json:"overlay,omitempty"`    // mode
	Open       bool    `json:"open,omitempty"`       // sidebar
	DeltaY     float64 `json:"delta_y,omitempty"`    // wheel
	Timestamp  float64 `json:"timestamp,omitempty"`  // wheel, milliseconds
	X          float64 `json:"x,omitempty"`          // touch
	Y          float64 `json:"y,omitempty"`          // touch
	Touches    int     `json:"touches,omitempty"`    // touch
	OnAsset    bool    `json:"on_asset,omitempty"`   // touch_start
	URL        string  `json:"url,omitempty"`        // loaded, load_failed
}

func (m clientMessage) point() gesture.Point { return gesture.Point{X: m.X, Y: m.Y} }

func (m clientMessage) at() time.Duration {
	return time.Duration(m.Timestamp * float64(time.Millisecond))
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type      string               `json:"type"` // "snapshot" or "error"
	SessionID string               `json:"session_id"`
	State     *navigation.Snapshot `json:"state,omitempty"`
	Content   string               `json:"content,omitempty"`
}
