package geom

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func straightLine() orb.LineString {
	return orb.LineString{{0, 0}, {1000, 0}}
}

func TestLength(t *testing.T) {
	assert.Equal(t, 1000.0, Length(straightLine()))

	bent := orb.LineString{{0, 0}, {300, 0}, {300, 400}}
	assert.Equal(t, 700.0, Length(bent))
}

func TestProjectOntoStraightLine(t *testing.T) {
	ls := straightLine()

	proj := Project(ls, orb.Point{400, 10})
	assert.Equal(t, 10.0, proj.Distance)
	assert.Equal(t, 400.0, proj.Along)

	proj = Project(ls, orb.Point{0, 5})
	assert.Equal(t, 5.0, proj.Distance)
	assert.Equal(t, 0.0, proj.Along)

	proj = Project(ls, orb.Point{1000, 0})
	assert.Equal(t, 0.0, proj.Distance)
	assert.Equal(t, 1000.0, proj.Along)
}

func TestProjectBeyondEndpointsClampsToLine(t *testing.T) {
	ls := straightLine()

	proj := Project(ls, orb.Point{-30, 40})
	assert.Equal(t, 50.0, proj.Distance)
	assert.Equal(t, 0.0, proj.Along)

	proj = Project(ls, orb.Point{1030, 40})
	assert.Equal(t, 50.0, proj.Distance)
	assert.Equal(t, 1000.0, proj.Along)
}

func TestProjectAccumulatesArcLengthAcrossSegments(t *testing.T) {
	// L-shaped line: 300 east then 400 north, total length 700.
	ls := orb.LineString{{0, 0}, {300, 0}, {300, 400}}

	proj := Project(ls, orb.Point{310, 100})
	assert.Equal(t, 10.0, proj.Distance)
	assert.Equal(t, 400.0, proj.Along)
}

func TestProjectDegenerateLineStrings(t *testing.T) {
	proj := Project(orb.LineString{}, orb.Point{5, 5})
	assert.Equal(t, 0.0, proj.Along)

	proj = Project(orb.LineString{{3, 4}}, orb.Point{0, 0})
	assert.Equal(t, 5.0, proj.Distance)
	assert.Equal(t, 0.0, proj.Along)

	// Zero-length segment inside an otherwise normal line.
	ls := orb.LineString{{0, 0}, {0, 0}, {100, 0}}
	proj = Project(ls, orb.Point{50, 3})
	assert.Equal(t, 3.0, proj.Distance)
	assert.Equal(t, 50.0, proj.Along)
}

func TestWithinBuffer(t *testing.T) {
	ls := straightLine()

	assert.True(t, WithinBuffer(ls, orb.Point{500, 49}, 50))
	assert.True(t, WithinBuffer(ls, orb.Point{500, 50}, 50))
	assert.False(t, WithinBuffer(ls, orb.Point{500, 51}, 50))
	assert.False(t, WithinBuffer(ls, orb.Point{500, 200}, 50))
}
