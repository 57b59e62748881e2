package trajectory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// HitResult is the ordered sequence of enriched rows produced by a single
// fired shot, plus the benign reason integration stopped.
type HitResult struct {
	Rows              []EnrichedRow
	TerminationReason TerminationReason
}

// Zeros returns the ZeroUp/ZeroDown rows, in the order they were recorded.
func (h *HitResult) Zeros() []EnrichedRow {
	var zeros []EnrichedRow
	for _, r := range h.Rows {
		if r.Flags&EventZero != 0 {
			zeros = append(zeros, r)
		}
	}
	return zeros
}

// Apex returns the Apex row, if one was recorded.
func (h *HitResult) Apex() (EnrichedRow, bool) {
	for _, r := range h.Rows {
		if r.Flags&EventApex != 0 {
			return r, true
		}
	}
	return EnrichedRow{}, false
}

// GetAt returns the first row whose raw component for key is within
// tolerance of value.
func (h *HitResult) GetAt(key Key, value, tolerance float64) (EnrichedRow, error) {
	for _, r := range h.Rows {
		if math.Abs(component(r.Raw, key)-value) <= tolerance {
			return r, nil
		}
	}
	return EnrichedRow{}, &NumericError{Reason: fmt.Sprintf("no row found near key=%v value=%v", key, value)}
}

// VelocityStats returns the mean and standard deviation of recorded row
// speeds, used by range-card summaries to report how much the shot's
// velocity varies across the recorded rows rather than just at one point.
func (h *HitResult) VelocityStats() (meanFps, stdDevFps float64) {
	if len(h.Rows) == 0 {
		return 0, 0
	}
	speeds := make([]float64, len(h.Rows))
	for i, r := range h.Rows {
		speeds[i] = r.Raw.Velocity.Magnitude()
	}
	return stat.Mean(speeds, nil), stat.StdDev(speeds, nil)
}

// DangerSpace returns the downrange interval around the row nearest rangeFt
// over which the bullet's slant height stays within half of targetHeightFt
// (above or below) of that row's slant height, i.e. a target of that height
// centred where the trajectory is at rangeFt. The edges are the positions of
// the outermost recorded rows that qualify; they are not interpolated.
func (h *HitResult) DangerSpace(rangeFt, targetHeightFt float64) (nearFt, farFt float64, err error) {
	if len(h.Rows) == 0 {
		return 0, 0, &NumericError{Reason: "empty trajectory"}
	}

	halfHeight := targetHeightFt / 2

	centerIdx := -1
	bestDelta := math.Inf(1)
	for i, r := range h.Rows {
		delta := math.Abs(r.Raw.Position.X - rangeFt)
		if delta < bestDelta {
			bestDelta = delta
			centerIdx = i
		}
	}
	if centerIdx < 0 {
		return 0, 0, &NumericError{Reason: "no rows to anchor danger space on"}
	}

	centerHeight := h.Rows[centerIdx].SlantHeightFt

	near := h.Rows[centerIdx].Raw.Position.X
	for i := centerIdx; i >= 0; i-- {
		if math.Abs(h.Rows[i].SlantHeightFt-centerHeight) > halfHeight {
			break
		}
		near = h.Rows[i].Raw.Position.X
	}

	far := h.Rows[centerIdx].Raw.Position.X
	for i := centerIdx; i < len(h.Rows); i++ {
		if math.Abs(h.Rows[i].SlantHeightFt-centerHeight) > halfHeight {
			break
		}
		far = h.Rows[i].Raw.Position.X
	}

	return near, far, nil
}
