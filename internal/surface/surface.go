// Package surface defines the contract between a drag-and-drop tab sheet
// and the remote rendering surface that displays it: the state pushed out
// every synchronization cycle, and sinks that receive it.
package surface

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/justyntemme/ddtabs/internal/dnd"
)

// TabState is one tab as the surface sees it.
type TabState struct {
	ID        string `json:"id"`
	Caption   string `json:"caption"`
	Closable  bool   `json:"closable"`
	Enabled   bool   `json:"enabled"`
	Draggable bool   `json:"draggable"`
}

// State is the full outbound state of one container.
type State struct {
	ID          string       `json:"id"`
	Enabled     bool         `json:"enabled"`
	DragMode    dnd.DragMode `json:"dragMode"`
	ShimEnabled bool         `json:"shimEnabled"`
	DropRatio   float64      `json:"dropRatio"`
	Tabs        []TabState   `json:"tabs"`
	Selected    int          `json:"selected"`

	// Draggable lists the content ids of the draggable children, in
	// child order. It is rebuilt from scratch on every push.
	Draggable []string `json:"draggable"`

	// AcceptCriterion is present only while the container accepts drops.
	AcceptCriterion *dnd.Descriptor `json:"acceptCriterion,omitempty"`
}

// AcceptsDrops reports whether the surface should offer the container as a
// drop target at all.
func (s State) AcceptsDrops() bool {
	return s.Enabled && s.AcceptCriterion != nil
}

// Probe evaluates the advertised criterion for a hover over tab with the
// pointer in zone, without asking the server. sourceID and itemID
// describe the drag in progress.
func (s State) Probe(sourceID, itemID, tabID string, zone dnd.VerticalZone) bool {
	if !s.AcceptsDrops() {
		return false
	}
	return s.AcceptCriterion.Evaluate(dnd.Probe{
		SourceID: sourceID,
		ItemID:   itemID,
		TargetID: s.ID,
		TabID:    tabID,
		Zone:     zone,
	})
}

// TabIndex returns the index of the tab with id, or -1.
func (s State) TabIndex(id string) int {
	for i, t := range s.Tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Surface receives state pushes.
type Surface interface {
	Push(s State) error
}

// Recorder keeps every pushed state in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *Recorder) Push(s State) error {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
	return nil
}

// States returns all recorded pushes.
func (r *Recorder) States() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State, len(r.states))
	copy(out, r.states)
	return out
}

// Last returns the most recent push.
func (r *Recorder) Last() (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return State{}, false
	}
	return r.states[len(r.states)-1], true
}

// Len returns the number of pushes recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// JSONSink writes each pushed state as one JSON document per line.
type JSONSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONSink returns a sink writing to w. indent is applied when non-empty.
func NewJSONSink(w io.Writer, indent string) *JSONSink {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return &JSONSink{enc: enc}
}

func (j *JSONSink) Push(s State) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.enc.Encode(s); err != nil {
		return fmt.Errorf("encode state %s: %w", s.ID, err)
	}
	return nil
}
