package cards

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/panyam/numcards/viz"
)

// Metric is the state of one card: its latest value and the history of
// values ordered by time.
type Metric struct {
	Value   float64      `json:"value"`
	History []viz.Sample `json:"history"`
}

// HasData reports whether m has any history to draw.
func (m *Metric) HasData() bool {
	return m != nil && len(m.History) > 0
}

// Snapshot maps card identifiers to metrics. A nil entry is a card with no
// data.
type Snapshot map[string]*Metric

// IDs returns the identifiers in sorted order.
func (s Snapshot) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DecodeSnapshot reads a snapshot in the JSON form
// {"id": {"value": 1, "history": [{"time": 0, "value": 1}]}}.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return s, nil
}
