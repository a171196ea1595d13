package models

import (
	"fmt"
	"strings"
)

// Category is a metric category: one top-level field of a sensor record.
type Category string

const (
	CategoryTemperature Category = "temperature"
	CategoryHumidity    Category = "humidity"
	CategoryPower       Category = "power"
)

// Categories lists the known categories in output order.
var Categories = []Category{CategoryTemperature, CategoryHumidity, CategoryPower}

// categoryAliases maps record field names onto categories. The emonTx
// firmware spells the temperature field "celcius".
var categoryAliases = map[string]Category{
	"temperature": CategoryTemperature,
	"celcius":     CategoryTemperature,
	"humidity":    CategoryHumidity,
	"power":       CategoryPower,
}

// ParseCategory resolves a record field name. Unknown names return false.
func ParseCategory(field string) (Category, bool) {
	category, ok := categoryAliases[field]
	return category, ok
}

// Precision is the number of decimals kept when rounding a mean.
func (c Category) Precision() int {
	switch c {
	case CategoryTemperature, CategoryPower:
		return 2
	case CategoryHumidity:
		return 0
	default:
		panic(fmt.Sprintf("invalid Category: %q", c))
	}
}

// OutputKey builds the snapshot key of a series.
//
//   - temperature: "T" + id, '-' replaced by '_'
//   - humidity:    "H" + id, '-' replaced by '_'
//   - power:       id verbatim
func (c Category) OutputKey(seriesID string) string {
	switch c {
	case CategoryTemperature:
		return "T" + strings.ReplaceAll(seriesID, "-", "_")
	case CategoryHumidity:
		return "H" + strings.ReplaceAll(seriesID, "-", "_")
	case CategoryPower:
		return seriesID
	default:
		panic(fmt.Sprintf("invalid Category: %q", c))
	}
}
