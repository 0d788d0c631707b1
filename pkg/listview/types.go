package listview

import (
	"time"

	"github.com/marcus/sortable/internal/models"
)

// FrameMsg advances row animations and re-runs auto-scroll while dragging
type FrameMsg time.Time

// LongPressMsg fires once the long-press delay has passed for a held row.
// Seq ties it to the press that scheduled it.
type LongPressMsg struct {
	ID  string
	Seq int
}

// ItemsFileChangedMsg is sent when the watched items file changes on disk
type ItemsFileChangedMsg struct{}

// ItemsLoadedMsg carries a freshly read items file
type ItemsLoadedMsg struct {
	Items []models.Item
	Error error
}

// HelpRenderedMsg carries the rendered help overlay
type HelpRenderedMsg struct {
	Content string
	Width   int
	Error   error
}

// ClearStatusMsg clears the footer status message
type ClearStatusMsg struct{}

// hitZone is the part of a row under the pointer
type hitZone int

const (
	zoneRow hitZone = iota
	zoneHandle
	zoneCheckbox
	zoneRemove
)

func (z hitZone) String() string {
	switch z {
	case zoneHandle:
		return "handle"
	case zoneCheckbox:
		return "checkbox"
	case zoneRemove:
		return "remove"
	default:
		return "row"
	}
}

// gesture tracks one left-button press from down to up
type gesture struct {
	active      bool
	id          string
	seq         int
	zone        hitZone
	pressX      int
	pressY      int
	lastX       int
	lastY       int
	moved       bool    // pointer left the press cell
	armed       bool    // long-press fired
	panY        int     // pointer line when the drag started
	translation float64 // vertical travel since the drag started, in lines
}

// Row layout columns: " ≡ [ ] Title ... × "
const (
	handleCol      = 1
	checkboxCol    = 3
	checkboxWidth  = 3
	titleCol       = 7
	removeMargin   = 3
	headerHeight   = 2
	footerHeight   = 1
	wheelStep      = 3
	statusDuration = 3 * time.Second
)
