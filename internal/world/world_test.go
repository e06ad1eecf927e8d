package world

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rustycast/pkg/geom"
)

// rect returns the four walls of an axis-aligned box in the order
// y0 edge, x1 edge, y1 edge, x0 edge.
func rect(x0, y0, x1, y1 float64) []Wall {
	return []Wall{
		{Seg: geom.Seg(x0, y0, x1, y0)},
		{Seg: geom.Seg(x1, y0, x1, y1)},
		{Seg: geom.Seg(x1, y1, x0, y1)},
		{Seg: geom.Seg(x0, y1, x0, y0)},
	}
}

func link(sectors []Sector, a, aw, b, bw int) {
	sectors[a].Walls[aw].Portal = &WallRef{Sector: b, Wall: bw}
	sectors[b].Walls[bw].Portal = &WallRef{Sector: a, Wall: aw}
}

// corridor builds n rooms of depth d stacked along -Y, each linked to the
// next through its y0 wall. The last room's far wall is solid.
func corridor(t *testing.T, n int, d float64) *World {
	t.Helper()
	sectors := make([]Sector, n)
	for k := range sectors {
		y1 := -float64(k) * d
		sectors[k] = Sector{
			Info:  SectorInfo{Floor: float64(k % 3), Ceiling: 20 - float64(k%2)},
			Walls: rect(-5, y1-d, 5, y1),
		}
	}
	for k := 0; k+1 < n; k++ {
		link(sectors, k, 0, k+1, 2)
	}
	w, err := New(sectors)
	require.NoError(t, err)
	return w
}

func TestCastRayStraightAtWall(t *testing.T) {
	w, err := New([]Sector{{
		Info:  SectorInfo{Floor: 0, Ceiling: 20},
		Walls: rect(-50, -10, 50, 50),
	}})
	require.NoError(t, err)

	hits, truncated := w.CastRay(0, geom.V(0, 0), 0, DefaultLimits())
	require.False(t, truncated)
	require.Len(t, hits, 1)

	h := hits[0]
	assert.InDelta(t, 0, h.Pos.X, 1e-9)
	assert.InDelta(t, -10, h.Pos.Y, 1e-9)
	assert.InDelta(t, 10, h.Dist, 1e-9)
	assert.InDelta(t, 50, h.Along, 1e-9)
	assert.Equal(t, 0, h.Wall)
	assert.False(t, h.Portal)
	_, ok := h.OutInfo()
	assert.False(t, ok)
}

func TestCastRayClosedSectorHitsOnce(t *testing.T) {
	w, err := New([]Sector{{
		Info: SectorInfo{Floor: 0, Ceiling: 10},
		Walls: []Wall{
			{Seg: geom.Seg(0, -20, 15, -5)},
			{Seg: geom.Seg(15, -5, 10, 15)},
			{Seg: geom.Seg(10, 15, -12, 12)},
			{Seg: geom.Seg(-12, 12, -16, -4)},
			{Seg: geom.Seg(-16, -4, 0, -20)},
		},
	}})
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		p := geom.V(rng.Float64()*16-8, rng.Float64()*16-8)
		require.True(t, w.Contains(0, p), "sample %v outside sector", p)
		angle := rng.Float64() * 2 * math.Pi
		hits, truncated := w.CastRay(0, p, angle, DefaultLimits())
		require.False(t, truncated)
		require.Len(t, hits, 1, "point %v angle %v", p, angle)
	}

	hits, _ := w.CastRay(0, geom.V(0, 0), 0, Limits{RayLength: 0.5})
	assert.Empty(t, hits, "ray shorter than the nearest wall sees nothing")
}

func TestCastRayPortalChaining(t *testing.T) {
	w := corridor(t, 5, 10)

	hits, truncated := w.CastRay(0, geom.V(0, -5), 0, DefaultLimits())
	require.False(t, truncated)
	require.Len(t, hits, 5)

	for i := 0; i+1 < len(hits); i++ {
		out, ok := hits[i].OutInfo()
		require.True(t, ok, "hit %d should be a portal", i)
		assert.Equal(t, out, hits[i+1].In, "hit %d -> %d", i, i+1)
		assert.Less(t, hits[i].Dist, hits[i+1].Dist)
		assert.Equal(t, i, hits[i].Sector)
	}
	last := hits[len(hits)-1]
	assert.False(t, last.Portal)
	assert.InDelta(t, 45, last.Dist, 1e-9)
}

func TestCastRayRespectsHopBudget(t *testing.T) {
	// Many paper-thin rooms in a row behave like a runaway portal chain.
	w := corridor(t, 100, 0.01)

	hits, truncated := w.CastRay(0, geom.V(0, -0.005), 0, Limits{RayLength: 1000, MaxHops: 64})
	assert.True(t, truncated)
	assert.Len(t, hits, 64)

	hits, truncated = w.CastRay(0, geom.V(0, -0.005), 0, Limits{RayLength: 1000, MaxHops: 200})
	assert.False(t, truncated)
	assert.Len(t, hits, 100)
}

func TestCastRayRespectsTotalLength(t *testing.T) {
	w := corridor(t, 10, 10)

	hits, truncated := w.CastRay(0, geom.V(0, -5), 0, Limits{RayLength: 30, MaxHops: 64})
	assert.False(t, truncated)
	require.Len(t, hits, 3)
	assert.True(t, hits[2].Portal)
}

func TestNearestCrossingTieBreak(t *testing.T) {
	s := Sector{Walls: rect(-10, -10, 10, 10)}
	seg := geom.Seg(0, 0, 20, -20)

	best, tt := nearestCrossing(&s, 1, seg, -1, false)
	assert.Equal(t, 0, best, "first enumerated wall wins an exact tie")
	assert.InDelta(t, 1, tt, 1e-12)

	s.Walls[0], s.Walls[1] = s.Walls[1], s.Walls[0]
	best, tt = nearestCrossing(&s, 1, seg, -1, false)
	assert.Equal(t, 0, best)
	assert.InDelta(t, 0, tt, 1e-12)
}

func threeRooms(t *testing.T) *World {
	t.Helper()
	sectors := []Sector{
		{Name: "mid", Info: SectorInfo{0, 20}, Walls: rect(-10, -10, 10, 10)},
		{Name: "west", Info: SectorInfo{2, 20}, Walls: rect(-30, -10, -10, 10)},
		{Name: "east", Info: SectorInfo{4, 18}, Walls: rect(10, -10, 30, 10)},
	}
	link(sectors, 0, 3, 1, 1)
	link(sectors, 0, 1, 2, 3)
	w, err := New(sectors)
	require.NoError(t, err)
	return w
}

func TestMoveObject(t *testing.T) {
	w := threeRooms(t)

	t.Run("inside", func(t *testing.T) {
		assert.Equal(t, 0, w.MoveObject(0, geom.V(0, 0), geom.V(5, 5)))
		assert.Equal(t, 0, w.MoveObject(0, geom.V(1, 1), geom.V(1, 1)))
	})
	t.Run("one portal", func(t *testing.T) {
		assert.Equal(t, 2, w.MoveObject(0, geom.V(9, 0), geom.V(11, 0)))
		assert.Equal(t, 1, w.MoveObject(0, geom.V(-9, 0), geom.V(-11, 0)))
		assert.Equal(t, 0, w.MoveObject(2, geom.V(11, 0), geom.V(9, 0)))
	})
	t.Run("solid wall ignored", func(t *testing.T) {
		assert.Equal(t, 0, w.MoveObject(0, geom.V(0, 9), geom.V(0, 11)))
	})
	t.Run("two portals in one step", func(t *testing.T) {
		assert.Equal(t, 2, w.MoveObject(1, geom.V(-15, 0), geom.V(15, 0)))
	})
	t.Run("only exits count", func(t *testing.T) {
		// A degenerate step that starts outside the middle room touches both
		// of its portals but only leaves through the far one.
		assert.Equal(t, 2, w.MoveObject(0, geom.V(-20, 0), geom.V(20, 0)))
		assert.Equal(t, 1, w.MoveObject(0, geom.V(20, 0), geom.V(-20, 0)))
	})
	t.Run("starting on a portal", func(t *testing.T) {
		// Already in the east room, standing on its shared wall.
		assert.Equal(t, 2, w.MoveObject(2, geom.V(10, 0), geom.V(10.4, 0)))
		assert.False(t, w.Blocked(2, geom.V(10, 0), geom.V(10.4, 0)))
		assert.Equal(t, 0, w.MoveObject(2, geom.V(10, 0), geom.V(9.6, 0)))
	})
}

// quadRooms builds four boxes meeting at the origin, each linked to its two
// neighbours: 0 spans -x -y, 1 spans +x -y, 2 spans -x +y, 3 spans +x +y.
func quadRooms(t *testing.T) *World {
	t.Helper()
	sectors := []Sector{
		{Name: "sw", Info: SectorInfo{0, 20}, Walls: rect(-10, -10, 0, 0)},
		{Name: "se", Info: SectorInfo{1, 20}, Walls: rect(0, -10, 10, 0)},
		{Name: "nw", Info: SectorInfo{2, 20}, Walls: rect(-10, 0, 0, 10)},
		{Name: "ne", Info: SectorInfo{3, 20}, Walls: rect(0, 0, 10, 10)},
	}
	link(sectors, 0, 1, 1, 3)
	link(sectors, 0, 2, 2, 0)
	link(sectors, 1, 2, 3, 0)
	link(sectors, 2, 1, 3, 3)
	w, err := New(sectors)
	require.NoError(t, err)
	return w
}

// diamondRooms is quadRooms turned by 45 degrees, so the shared corner at
// the origin lies on the y axis between rooms 0 (+y) and 2 (-y).
func diamondRooms(t *testing.T) *World {
	t.Helper()
	loop := func(pts ...geom.Vec2) []Wall {
		walls := make([]Wall, len(pts))
		for i := range pts {
			walls[i] = Wall{Seg: geom.LineSeg{A: pts[i], B: pts[(i+1)%len(pts)]}}
		}
		return walls
	}
	sectors := []Sector{
		{Name: "south", Info: SectorInfo{0, 20}, Walls: loop(geom.V(-5, 5), geom.V(0, 0), geom.V(5, 5), geom.V(0, 10))},
		{Name: "east", Info: SectorInfo{1, 20}, Walls: loop(geom.V(0, 0), geom.V(5, -5), geom.V(10, 0), geom.V(5, 5))},
		{Name: "north", Info: SectorInfo{2, 20}, Walls: loop(geom.V(-5, -5), geom.V(0, -10), geom.V(5, -5), geom.V(0, 0))},
		{Name: "west", Info: SectorInfo{3, 20}, Walls: loop(geom.V(-10, 0), geom.V(-5, -5), geom.V(0, 0), geom.V(-5, 5))},
	}
	link(sectors, 0, 1, 1, 3)
	link(sectors, 1, 0, 2, 2)
	link(sectors, 2, 3, 3, 1)
	link(sectors, 3, 2, 0, 0)
	w, err := New(sectors)
	require.NoError(t, err)
	return w
}

func TestTraversalThroughSharedCorner(t *testing.T) {
	t.Run("move diagonally across the corner", func(t *testing.T) {
		w := quadRooms(t)
		from, to := geom.V(-1, -1), geom.V(1, 1)
		got := w.MoveObject(0, from, to)
		assert.Equal(t, 3, got)
		assert.True(t, w.Contains(got, to))
		assert.False(t, w.Blocked(0, from, to))

		assert.Equal(t, 0, w.MoveObject(3, to, from))
		assert.Equal(t, 2, w.MoveObject(1, geom.V(1, -1), geom.V(-1, 1)))
	})

	t.Run("move straight through the corner", func(t *testing.T) {
		w := diamondRooms(t)
		got := w.MoveObject(0, geom.V(0, 1), geom.V(0, -1))
		assert.Equal(t, 2, got)
		assert.True(t, w.Contains(got, geom.V(0, -1)))
		assert.False(t, w.Blocked(0, geom.V(0, 1), geom.V(0, -1)))
	})

	t.Run("ray continues past the corner", func(t *testing.T) {
		w := diamondRooms(t)
		hits, truncated := w.CastRay(0, geom.V(0, 5), 0, DefaultLimits())
		require.False(t, truncated)
		require.Len(t, hits, 3)

		// Both corner walls of the south room tie; the first one leads west,
		// and the west room is left at once through its corner.
		assert.Equal(t, 0, hits[0].Sector)
		assert.Equal(t, 0, hits[0].Wall)
		assert.Equal(t, 3, hits[1].Sector)
		assert.Equal(t, 1, hits[1].Wall)
		assert.Equal(t, 2, hits[2].Sector)
		for i := 0; i+1 < len(hits); i++ {
			require.True(t, hits[i].Portal, "hit %d should be a portal", i)
			assert.Equal(t, hits[i].Out, hits[i+1].In)
			assert.InDelta(t, 5, hits[i].Dist, 1e-9)
		}
		last := hits[2]
		assert.False(t, last.Portal)
		assert.InDelta(t, 15, last.Dist, 1e-9)
		assert.True(t, last.Pos.ApproxEqual(geom.V(0, -10), 1e-9))
	})
}

func TestBlocked(t *testing.T) {
	w := threeRooms(t)

	assert.False(t, w.Blocked(0, geom.V(0, 0), geom.V(5, 5)))
	assert.True(t, w.Blocked(0, geom.V(0, 9), geom.V(0, 11)))
	assert.False(t, w.Blocked(0, geom.V(9, 0), geom.V(11, 0)))
	assert.True(t, w.Blocked(0, geom.V(9, 0), geom.V(31, 0)), "far wall of the east room")
}

func TestElevationAndLocate(t *testing.T) {
	w := threeRooms(t)

	assert.Equal(t, 0.0, w.Elevation(0))
	assert.Equal(t, 2.0, w.Elevation(1))
	assert.Equal(t, SectorInfo{4, 18}, w.Info(2))
	assert.Equal(t, 1, w.Locate(geom.V(-20, 3)))
	assert.Equal(t, -1, w.Locate(geom.V(0, 50)))
	assert.Equal(t, 3, w.Len())
}

func TestDirectionConvention(t *testing.T) {
	assert.True(t, Direction(0).ApproxEqual(geom.V(0, -1), 1e-12))
	assert.True(t, Direction(math.Pi/2).ApproxEqual(geom.V(1, 0), 1e-12))
}

func TestNewRejectsMalformedWorlds(t *testing.T) {
	box := func() []Wall { return rect(0, 0, 10, 10) }

	tests := []struct {
		name    string
		sectors []Sector
		want    error
	}{
		{"empty", nil, ErrEmptyWorld},
		{"floor above ceiling", []Sector{{Info: SectorInfo{5, 5}, Walls: box()}}, ErrInvalidSector},
		{"too few walls", []Sector{{Info: SectorInfo{0, 5}, Walls: box()[:2]}}, ErrInvalidSector},
		{"open loop", []Sector{{Info: SectorInfo{0, 5}, Walls: []Wall{
			{Seg: geom.Seg(0, 0, 10, 0)},
			{Seg: geom.Seg(10, 0, 10, 10)},
			{Seg: geom.Seg(9, 10, 0, 0)},
		}}}, ErrOpenLoop},
		{"concave", []Sector{{Info: SectorInfo{0, 5}, Walls: []Wall{
			{Seg: geom.Seg(0, 0, 10, 0)},
			{Seg: geom.Seg(10, 0, 10, 10)},
			{Seg: geom.Seg(10, 10, 5, 2)},
			{Seg: geom.Seg(5, 2, 0, 10)},
			{Seg: geom.Seg(0, 10, 0, 0)},
		}}}, ErrNotConvex},
		{"portal sector out of range", func() []Sector {
			s := []Sector{{Info: SectorInfo{0, 5}, Walls: box()}}
			s[0].Walls[0].Portal = &WallRef{Sector: 3, Wall: 0}
			return s
		}(), ErrBadPortal},
		{"portal wall out of range", func() []Sector {
			s := []Sector{
				{Info: SectorInfo{0, 5}, Walls: box()},
				{Info: SectorInfo{0, 5}, Walls: rect(0, -10, 10, 0)},
			}
			s[0].Walls[0].Portal = &WallRef{Sector: 1, Wall: 9}
			return s
		}(), ErrBadPortal},
		{"portal endpoints differ", func() []Sector {
			s := []Sector{
				{Info: SectorInfo{0, 5}, Walls: box()},
				{Info: SectorInfo{0, 5}, Walls: rect(0, -10, 10, 0)},
			}
			link(s, 0, 1, 1, 2)
			return s
		}(), ErrBadPortal},
		{"portal not reciprocal", func() []Sector {
			s := []Sector{
				{Info: SectorInfo{0, 5}, Walls: box()},
				{Info: SectorInfo{0, 5}, Walls: rect(0, -10, 10, 0)},
			}
			s[0].Walls[0].Portal = &WallRef{Sector: 1, Wall: 2}
			return s
		}(), ErrBadPortal},
		{"self portal", func() []Sector {
			s := []Sector{{Info: SectorInfo{0, 5}, Walls: box()}}
			s[0].Walls[0].Portal = &WallRef{Sector: 0, Wall: 2}
			return s
		}(), ErrBadPortal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.sectors)
			require.Error(t, err)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	sectors := []Sector{
		{Info: SectorInfo{0, 5}, Walls: rect(0, 0, 10, 10)},
		{Info: SectorInfo{0, 5}, Walls: rect(0, -10, 10, 0)},
	}
	link(sectors, 0, 0, 1, 2)
	w, err := New(sectors)
	require.NoError(t, err)

	sectors[0].Walls[0].Portal.Sector = 7
	sectors[1].Info.Floor = 99

	assert.Equal(t, 1, w.Sector(0).Walls[0].Portal.Sector)
	assert.Equal(t, 0.0, w.Elevation(1))
}
