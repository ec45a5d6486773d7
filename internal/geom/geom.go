// Package geom provides the planar geometry primitives the network builder
// needs: point-to-curve distance and arc-length projection. All math is planar;
// coordinate reference system conversion happens at the data-loading boundary.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Projection describes where a point falls relative to a linestring.
type Projection struct {
	// Distance is the perpendicular (shortest) distance from the point to the
	// linestring, in CRS units.
	Distance float64
	// Along is the arc-length position of the nearest point on the linestring,
	// measured from the start of the curve. Always in [0, Length(ls)].
	Along float64
}

// Length returns the planar length of ls.
func Length(ls orb.LineString) float64 {
	return planar.Length(ls)
}

// Project computes the projection of p onto ls.
//
// The nearest point is found segment by segment; Along accumulates the length
// of the segments before the nearest one plus the partial offset within it.
// A linestring with fewer than 2 points has no extent, so the projection is
// reported at Along 0 with the distance to its only point (or +Inf semantics
// are avoided by treating an empty linestring as infinitely far away).
func Project(ls orb.LineString, p orb.Point) Projection {
	if len(ls) == 0 {
		return Projection{Distance: math.MaxFloat64, Along: 0}
	}
	if len(ls) == 1 {
		return Projection{Distance: planar.Distance(ls[0], p), Along: 0}
	}

	best := Projection{Distance: math.MaxFloat64}
	var traversed float64

	for i := 0; i < len(ls)-1; i++ {
		a, b := ls[i], ls[i+1]
		segLen := planar.Distance(a, b)

		closest, t := closestOnSegment(a, b, p)
		d := planar.Distance(closest, p)
		if d < best.Distance {
			best.Distance = d
			best.Along = traversed + t*segLen
		}
		traversed += segLen
	}
	return best
}

// WithinBuffer reports whether p lies inside the region obtained by expanding
// ls by buffer on all sides, i.e. whether the point-to-curve distance is at
// most buffer.
func WithinBuffer(ls orb.LineString, p orb.Point, buffer float64) bool {
	return Project(ls, p).Distance <= buffer
}

// closestOnSegment returns the point on segment a-b nearest to p, and the
// parameter t in [0, 1] locating it between a and b. Degenerate (zero length)
// segments resolve to a with t = 0.
func closestOnSegment(a, b, p orb.Point) (orb.Point, float64) {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, 0
	}

	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return orb.Point{a[0] + t*dx, a[1] + t*dy}, t
}
