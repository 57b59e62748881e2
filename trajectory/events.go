package trajectory

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// EventFlag is a bitset of the row kinds an EnrichedRow may carry.
type EventFlag uint8

const (
	EventZeroUp EventFlag = 1 << iota
	EventZeroDown
	EventMach
	EventRange
	EventApex

	EventZero EventFlag = EventZeroUp | EventZeroDown
	EventAll  EventFlag = EventRange | EventZero | EventMach | EventApex
)

// seenZero tracks the zero-crossing state machine. Transitions are
// monotonic within a single shot: once both crossings are seen, the state
// never rewinds.
type seenZero int

const (
	seenNone seenZero = iota
	seenUp
	seenDown
	seenBoth
)

func (s seenZero) withUp() seenZero {
	if s == seenDown || s == seenBoth {
		return seenBoth
	}
	return seenUp
}

func (s seenZero) withDown() seenZero {
	if s == seenUp || s == seenBoth {
		return seenBoth
	}
	return seenDown
}

// EnrichedRow augments a raw point with every quantity a range card needs:
// slant geometry, energy, drag magnitude, and the event flags that led the
// filter to emit it.
type EnrichedRow struct {
	Raw RawTrajPoint

	SlantHeightFt    float64
	DropFt           float64
	DropAngleRad     float64
	WindageFt        float64
	WindageAngleRad  float64
	EnergyFtLb       float64
	GameWeightLb     float64
	VelocityAngleRad float64
	DensityRatio     float64
	DragMagnitude    float64

	Flags EventFlag
}

// separateRowTimeDelta is the minimum time gap a new row must keep from
// every row already recorded before both are kept separate; closer than
// this, the rows are merged by OR-ing flags.
const separateRowTimeDelta = 1e-5

// FilterConfig carries the geometry and weight the EventFilter needs to
// enrich raw points and detect zero/apex/range/mach events.
type FilterConfig struct {
	LookAngleRad  float64
	WeightGr      float64
	RangeStepFt   float64
	TimeStepS     float64
	StartDistance float64 // first next_record_distance, typically RangeStepFt
}

// RunFilter walks seq in order, emitting one EnrichedRow per requested event plus
// one per range step, OR-ing flags for rows whose interpolated times land
// within separateRowTimeDelta of each other.
func RunFilter(seq *Sequence, atDensity func(altFt float64) float64, dragMagnitude func(p RawTrajPoint) float64, cfg FilterConfig, flags EventFlag) ([]EnrichedRow, error) {
	var rows []EnrichedRow
	state := seenNone
	nextRecordDistance := cfg.StartDistance
	if nextRecordDistance == 0 {
		nextRecordDistance = cfg.RangeStepFt
	}
	lastRangeRowTime := math.Inf(-1)

	if seq.Len() > 0 {
		first := seq.At(0)
		slant0 := first.Position.Y - first.Position.X*math.Tan(cfg.LookAngleRad)
		switch {
		case slant0 >= 0:
			state = state.withUp()
		case first.Velocity.Y < 0:
			state = state.withDown()
		}
	}

	n := seq.Len()
	for i := 1; i < n-1; i++ {
		prevPrev := seq.At(i - 1)
		prev := seq.At(i)
		cur := seq.At(i + 1)

		if flags&EventRange != 0 {
			if cur.Position.X >= nextRecordDistance && cur.TimeS-lastRangeRowTime >= cfg.TimeStepS {
				row, err := seq.GetAt(KeyPX, nextRecordDistance, prevPrev.TimeS)
				if err == nil {
					appendRow(&rows, enrich(row, cfg, atDensity, dragMagnitude, EventRange), lastRangeRowTime)
					lastRangeRowTime = row.TimeS
				}
				nextRecordDistance += cfg.RangeStepFt
			}
		}

		if flags&EventMach != 0 {
			m1 := prev.MachRatio - 1
			m2 := cur.MachRatio - 1
			if signChange(m1, m2) {
				row, err := seq.GetAt(KeyMach, 1.0, prevPrev.TimeS)
				if err == nil {
					appendRow(&rows, enrich(row, cfg, atDensity, dragMagnitude, EventMach), lastRangeRowTime)
				}
			}
		}

		if flags&EventApex != 0 {
			if signChange(prev.Velocity.Y, cur.Velocity.Y) && prev.Velocity.Y > 0 {
				row, err := seq.GetAt(KeyVY, 0.0, prevPrev.TimeS)
				if err == nil {
					appendRow(&rows, enrich(row, cfg, atDensity, dragMagnitude, EventApex), lastRangeRowTime)
				}
			}
		}

		if flags&EventZero != 0 && state != seenBoth {
			s1 := prev.Position.Y - prev.Position.X*math.Tan(cfg.LookAngleRad)
			s2 := cur.Position.Y - cur.Position.X*math.Tan(cfg.LookAngleRad)
			if signChange(s1, s2) {
				var flag EventFlag
				if s1 > s2 {
					flag = EventZeroDown
					state = state.withDown()
				} else {
					flag = EventZeroUp
					state = state.withUp()
				}
				if flags&flag != 0 {
					row, err := seq.GetAtSlantHeight(cfg.LookAngleRad, 0.0, prevPrev.TimeS)
					if err == nil {
						appendRow(&rows, enrich(row, cfg, atDensity, dragMagnitude, flag), lastRangeRowTime)
					}
				}
			}
		}
	}

	return rows, nil
}

func signChange(a, b float64) bool {
	return (a <= 0 && b > 0) || (a >= 0 && b < 0)
}

// appendRow inserts row in time order, OR-ing flags into an existing row
// within separateRowTimeDelta rather than creating a duplicate.
func appendRow(rows *[]EnrichedRow, row EnrichedRow, _ float64) {
	for i := range *rows {
		if floats.EqualWithinAbs((*rows)[i].Raw.TimeS, row.Raw.TimeS, separateRowTimeDelta) {
			(*rows)[i].Flags |= row.Flags
			return
		}
	}
	inserted := false
	for i, existing := range *rows {
		if row.Raw.TimeS < existing.Raw.TimeS {
			*rows = append(*rows, EnrichedRow{})
			copy((*rows)[i+1:], (*rows)[i:])
			(*rows)[i] = row
			inserted = true
			break
		}
	}
	if !inserted {
		*rows = append(*rows, row)
	}
}

func enrich(p RawTrajPoint, cfg FilterConfig, atDensity func(float64) float64, dragMagnitude func(RawTrajPoint) float64, flag EventFlag) EnrichedRow {
	slant := p.Position.Y*math.Cos(cfg.LookAngleRad) - p.Position.X*math.Sin(cfg.LookAngleRad)
	drop := p.Position.Y
	windage := p.Position.Z
	speed := p.Velocity.Magnitude()

	row := EnrichedRow{
		Raw:              p,
		SlantHeightFt:    slant,
		DropFt:           drop,
		DropAngleRad:     math.Atan2(p.Velocity.Y, p.Velocity.X),
		WindageFt:        windage,
		WindageAngleRad:  math.Atan2(p.Velocity.Z, p.Velocity.X),
		EnergyFtLb:       cfg.WeightGr * speed * speed / 450400,
		GameWeightLb:     cfg.WeightGr * cfg.WeightGr * speed * speed * speed * 1.5e-12,
		VelocityAngleRad: math.Atan2(p.Velocity.Y, math.Hypot(p.Velocity.X, p.Velocity.Z)),
		Flags:            flag,
	}
	if atDensity != nil {
		row.DensityRatio = atDensity(p.Position.Y)
	}
	if dragMagnitude != nil {
		row.DragMagnitude = dragMagnitude(p)
	}
	return row
}
