package models

import (
	"bytes"
	"math"
	"strconv"
	"time"
)

// SnapshotEntry is one averaged series.
type SnapshotEntry struct {
	Category Category `json:"category"`
	SeriesID string   `json:"seriesId"`
	Key      string   `json:"key"`
	Value    float64  `json:"value"`
	Samples  int      `json:"samples"`
}

// FormatValue renders the value the way consumers parse it: integers for
// zero precision, otherwise the shortest float form with at least one
// decimal ("21.0", "36.85").
func (e SnapshotEntry) FormatValue() string {
	if e.Category.Precision() == 0 {
		v := e.Value
		if v == 0 {
			v = 0 // -0 prints as "0"
		}
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(e.Value, 'f', -1, 64)
	if math.Trunc(e.Value) == e.Value {
		s += ".0"
	}
	return s
}

// Snapshot is the output of one aggregation cycle.
//
// Example text form:
//
//	TS=1735409000
//	Tsensor_1=21.35
//	Hsensor_1=47
//	sensor-1=123.46
type Snapshot struct {
	CapturedAt time.Time       `json:"capturedAt"`
	Entries    []SnapshotEntry `json:"entries"`
}

// NewSnapshot builds an immutable snapshot; entries are copied.
func NewSnapshot(capturedAt time.Time, entries []SnapshotEntry) *Snapshot {
	copied := make([]SnapshotEntry, len(entries))
	copy(copied, entries)
	return &Snapshot{CapturedAt: capturedAt, Entries: copied}
}

// Text encodes the snapshot as "TS=<unix seconds>" followed by one
// "<key>=<value>" line per entry.
func (s *Snapshot) Text() []byte {
	var buf bytes.Buffer
	buf.WriteString("TS=")
	buf.WriteString(strconv.FormatInt(s.CapturedAt.Unix(), 10))
	buf.WriteByte('\n')
	for _, entry := range s.Entries {
		buf.WriteString(entry.Key)
		buf.WriteByte('=')
		buf.WriteString(entry.FormatValue())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Lookup returns the value of the entry with the given output key.
func (s *Snapshot) Lookup(key string) (SnapshotEntry, bool) {
	for _, entry := range s.Entries {
		if entry.Key == key {
			return entry, true
		}
	}
	return SnapshotEntry{}, false
}
