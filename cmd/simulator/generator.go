package main

import (
	"encoding/json"
	"math"
)

var (
	temperatureIDs = []string{"28-0316a2794", "28-0417b1c03"}
	humidityIDs    = []string{"dht-1"}
	powerIDs       = []string{"ct1", "ct2", "ct3"}
)

type powerReading struct {
	RealPower     float64 `json:"realPower"`
	ApparentPower float64 `json:"apparentPower"`
	PowerFactor   float64 `json:"powerFactor"`
	Vrms          float64 `json:"Vrms"`
	Irms          float64 `json:"Irms"`
}

// reading is one emonTx frame as the firmware prints it, including the
// historical "celcius" spelling.
type reading struct {
	Celcius  map[string]float64      `json:"celcius"`
	Humidity map[string]float64      `json:"humidity"`
	Power    map[string]powerReading `json:"power"`
}

// generator produces a deterministic stream of readings; every
// malformedEvery-th line is garbage so consumers see the skip path.
type generator struct {
	malformedEvery int
	index          int
}

func (g *generator) next() ([]byte, bool) {
	g.index++
	if g.malformedEvery > 0 && g.index%g.malformedEvery == 0 {
		return []byte(`{"celcius":{"28-0316a2794":`), false
	}

	phase := float64(g.index) / 10
	r := reading{
		Celcius:  make(map[string]float64, len(temperatureIDs)),
		Humidity: make(map[string]float64, len(humidityIDs)),
		Power:    make(map[string]powerReading, len(powerIDs)),
	}
	for i, id := range temperatureIDs {
		r.Celcius[id] = round(20+float64(i)*1.5+math.Sin(phase+float64(i)), 3)
	}
	for i, id := range humidityIDs {
		r.Humidity[id] = round(45+5*math.Cos(phase+float64(i)), 1)
	}
	for i, id := range powerIDs {
		realPower := round(100*float64(i+1)+25*math.Sin(phase*float64(i+1)), 2)
		r.Power[id] = powerReading{
			RealPower:     realPower,
			ApparentPower: round(realPower*1.1, 2),
			PowerFactor:   0.91,
			Vrms:          238.4,
			Irms:          round(realPower*1.1/238.4, 3),
		}
	}

	line, err := json.Marshal(r)
	if err != nil {
		panic(err)
	}
	return line, true
}

func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
