package decoders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"emontx-aggregator/internal/models"
	"emontx-aggregator/internal/shared/metrics"
)

// RecordDecoder turns one raw line into a record.
//
// A line looks like:
//
//	{"celcius":{"28-0316":21.5},"humidity":{"dht-1":47.2},"power":{"ct1":{"realPower":123.4,"apparentPower":150.2}}}
//
// Any malformation is reported as a decode error; callers skip the line.
//
//go:generate mockgen -source=record_decoder.go -destination=./mocks/record_decoder_mock.go -package=mocks
type RecordDecoder interface {
	Decode(line string) (models.Record, error)
}

type recordDecoder struct{}

func NewRecordDecoder() RecordDecoder {
	return &recordDecoder{}
}

func (d *recordDecoder) Decode(line string) (models.Record, error) {
	record, err := d.decode([]byte(line))
	if err != nil {
		metricLinesDecodedTotal.WithLabelValues(codeDecodeFailed).Inc()
		return nil, err
	}
	metricLinesDecodedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return record, nil
}

func (d *recordDecoder) decode(buf []byte) (models.Record, error) {
	buf = bytes.TrimSpace(buf)
	if len(buf) == 0 {
		return nil, errDecodeFailed("empty line", nil)
	}
	if buf[0] != '{' {
		return nil, errDecodeFailed("top level is not an object", nil)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil, errDecodeFailed("invalid json", err)
	}

	// Deterministic order so that an alias and its canonical name resolve the
	// same way on every line.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	record := make(models.Record, len(fields))
	for _, name := range names {
		category, ok := models.ParseCategory(name)
		if !ok {
			metricUnknownCategoriesTotal.WithLabelValues(name).Inc()
			continue
		}

		payload, err := d.decodePayload(category, fields[name])
		if err != nil {
			return nil, err
		}
		if existing, ok := record[category]; ok {
			for seriesID, value := range payload {
				existing[seriesID] = value
			}
			continue
		}
		record[category] = payload
	}

	return record, nil
}

func (d *recordDecoder) decodePayload(category models.Category, raw json.RawMessage) (models.Payload, error) {
	if category == models.CategoryPower {
		return d.decodePowerPayload(raw)
	}

	var values map[string]*float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errDecodeFailed(fmt.Sprintf("%s: expected an object of numbers", category), err)
	}
	if values == nil {
		return nil, errDecodeFailed(fmt.Sprintf("%s: expected an object of numbers", category), nil)
	}

	payload := make(models.Payload, len(values))
	for seriesID, value := range values {
		if value == nil {
			return nil, errDecodeFailed(fmt.Sprintf("%s.%s: null value", category, seriesID), nil)
		}
		payload[seriesID] = *value
	}
	return payload, nil
}

func (d *recordDecoder) decodePowerPayload(raw json.RawMessage) (models.Payload, error) {
	var readings map[string]*models.PowerReading
	if err := json.Unmarshal(raw, &readings); err != nil {
		return nil, errDecodeFailed("power: expected an object of readings", err)
	}
	if readings == nil {
		return nil, errDecodeFailed("power: expected an object of readings", nil)
	}

	payload := make(models.Payload, len(readings))
	for seriesID, reading := range readings {
		if reading == nil || reading.RealPower == nil {
			return nil, errDecodeFailed(fmt.Sprintf("power.%s: missing realPower", seriesID), nil)
		}
		payload[seriesID] = *reading.RealPower
	}
	return payload, nil
}
