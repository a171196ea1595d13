package models

import "time"

// Payload maps a series id to its numeric reading for one category.
type Payload map[string]float64

// Record is one decoded sensor line. Categories absent from the line are
// absent from the map.
type Record map[Category]Payload

// TimestampedRecord is a record stamped with its arrival time.
type TimestampedRecord struct {
	ReceivedAt time.Time
	Record     Record
}

// PowerReading is the composite value reported per power series. Only
// RealPower feeds the averages.
type PowerReading struct {
	RealPower     *float64 `json:"realPower"`
	ApparentPower *float64 `json:"apparentPower,omitempty"`
	PowerFactor   *float64 `json:"powerFactor,omitempty"`
	Vrms          *float64 `json:"Vrms,omitempty"`
	Irms          *float64 `json:"Irms,omitempty"`
}
