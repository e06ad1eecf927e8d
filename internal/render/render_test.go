package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rustycast/internal/world"
	"rustycast/pkg/geom"
)

func rect(x0, y0, x1, y1 float64) []world.Wall {
	return []world.Wall{
		{Seg: geom.Seg(x0, y0, x1, y0)},
		{Seg: geom.Seg(x1, y0, x1, y1)},
		{Seg: geom.Seg(x1, y1, x0, y1)},
		{Seg: geom.Seg(x0, y1, x0, y0)},
	}
}

func link(s []world.Sector, a, aw, b, bw int) {
	s[a].Walls[aw].Portal = &world.WallRef{Sector: b, Wall: bw}
	s[b].Walls[bw].Portal = &world.WallRef{Sector: a, Wall: aw}
}

func boxWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.New([]world.Sector{{
		Info:  world.SectorInfo{Floor: 0, Ceiling: 20},
		Walls: rect(-50, -10, 50, 100),
	}})
	require.NoError(t, err)
	return w
}

// stepWorld is a room with a raised, lower-ceilinged room beyond a portal
// 40 units ahead of the spawn at (0, 20).
func stepWorld(t *testing.T) *world.World {
	t.Helper()
	s := []world.Sector{
		{Info: world.SectorInfo{Floor: 0, Ceiling: 30}, Walls: rect(-20, -20, 20, 40)},
		{Info: world.SectorInfo{Floor: 4, Ceiling: 24}, Walls: rect(-20, -60, 20, -20)},
	}
	link(s, 0, 0, 1, 2)
	w, err := world.New(s)
	require.NoError(t, err)
	return w
}

func brightConfig() Config {
	cfg := DefaultConfig()
	cfg.ShadeK = 1e6
	return cfg
}

// classify maps a rendered colour back to the surface whose tint it is
// closest to once brightness is normalised away.
func classify(c color.RGBA) surface {
	norm := func(c color.RGBA) [3]float64 {
		m := math.Max(float64(c.R), math.Max(float64(c.G), float64(c.B)))
		if m == 0 {
			return [3]float64{}
		}
		return [3]float64{float64(c.R) / m, float64(c.G) / m, float64(c.B) / m}
	}
	n := norm(c)
	best, bestD := surface(0), math.Inf(1)
	for s, tint := range tints {
		tn := norm(tint)
		d := 0.0
		for i := range n {
			d += (n[i] - tn[i]) * (n[i] - tn[i])
		}
		if d < bestD {
			best, bestD = surface(s), d
		}
	}
	return best
}

func wallSpan(f *Frame, x int) (first, last int) {
	first, last = -1, -1
	for y := 0; y < f.H; y++ {
		if classify(f.At(x, y)) == surfaceWall {
			if first < 0 {
				first = y
			}
			last = y
		}
	}
	return first, last
}

func TestWallSpanCenteredAndGrowsWhenCloser(t *testing.T) {
	w := boxWorld(t)
	r := New(brightConfig())
	f, err := NewFrame(320, 240, FormatRGBA32)
	require.NoError(t, err)

	prev := 0
	for _, y := range []float64{90, 50, 30} {
		st, err := r.Render(w, View{Pos: geom.V(0, y), Sector: 0}, f)
		require.NoError(t, err)
		assert.Equal(t, 320, st.Columns)
		assert.Zero(t, st.Truncated)

		first, last := wallSpan(f, 160)
		require.GreaterOrEqual(t, first, 0, "no wall in centre column at y=%v", y)
		height := last - first + 1
		center := float64(first+last+1) / 2
		assert.InDelta(t, 120, center, 1.5, "span [%d,%d] at y=%v", first, last, y)
		assert.Greater(t, height, prev, "viewer at y=%v", y)

		dist := y + 10
		assert.InDelta(t, 300*20/dist, float64(height), 2)
		prev = height
	}
}

func TestPortalSpans(t *testing.T) {
	w := stepWorld(t)
	r := New(brightConfig())
	f, err := NewFrame(320, 240, FormatRGBA32)
	require.NoError(t, err)

	st, err := r.Render(w, View{Pos: geom.V(0, 20), Sector: 0}, f)
	require.NoError(t, err)
	assert.Greater(t, st.Hits, 320)

	// Centre column, top to bottom: upper wall over the portal, the raised
	// room's ceiling, its far wall, its floor, the kick wall, our floor.
	want := map[int]surface{
		5:   surfaceUpper,
		40:  surfaceCeiling,
		100: surfaceWall,
		150: surfaceFloor,
		180: surfaceLower,
		220: surfaceFloor,
	}
	for y, s := range want {
		assert.Equal(t, s, classify(f.At(160, y)), "row %d", y)
	}
}

func TestEmptyRayFallsBackToSkyAndGround(t *testing.T) {
	w := boxWorld(t)
	cfg := brightConfig()
	cfg.Limits = world.Limits{RayLength: 1, MaxHops: 8}
	r := New(cfg)
	f, err := NewFrame(64, 48, FormatRGB24)
	require.NoError(t, err)

	st, err := r.Render(w, View{Pos: geom.V(0, 50), Sector: 0}, f)
	require.NoError(t, err)
	assert.Equal(t, 64, st.Empty)
	assert.Zero(t, st.Hits)

	for x := 0; x < f.W; x++ {
		assert.Equal(t, skyTop, f.At(x, 0))
		assert.Equal(t, groundFill, f.At(x, f.H-1))
	}
}

func TestTraversalBudgetIsCounted(t *testing.T) {
	const n = 100
	s := make([]world.Sector, n)
	for k := range s {
		y1 := -float64(k) * 0.01
		s[k] = world.Sector{Info: world.SectorInfo{Floor: 0, Ceiling: 20}, Walls: rect(-500, y1-0.01, 500, y1)}
	}
	for k := 0; k+1 < n; k++ {
		link(s, k, 0, k+1, 2)
	}
	w, err := world.New(s)
	require.NoError(t, err)

	cfg := brightConfig()
	cfg.Limits = world.Limits{RayLength: 1000, MaxHops: 8}
	r := New(cfg)
	f, err := NewFrame(32, 24, FormatRGBA32)
	require.NoError(t, err)

	v := View{Pos: geom.V(0, -0.005), Sector: 0}
	st, err := r.Render(w, v, f)
	require.NoError(t, err)
	assert.Equal(t, 32, st.Truncated)
	assert.Equal(t, 32*8, st.Hits)

	_, err = r.Render(w, v, f)
	require.NoError(t, err)
	assert.Equal(t, int64(64), r.TruncatedTotal())
}

func TestParallelMatchesSequential(t *testing.T) {
	w := stepWorld(t)
	v := View{Pos: geom.V(3, 25), Facing: 0.3, Look: 7, Sector: 0}

	seq, err := NewFrame(160, 120, FormatRGBA32)
	require.NoError(t, err)
	_, err = New(DefaultConfig().ScaledTo(160)).Render(w, v, seq)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 7, 500} {
		cfg := DefaultConfig().ScaledTo(160)
		cfg.Workers = workers
		par, err := NewFrame(160, 120, FormatRGBA32)
		require.NoError(t, err)
		st, err := New(cfg).Render(w, v, par)
		require.NoError(t, err)
		assert.Equal(t, 160, st.Columns, "workers=%d", workers)
		assert.Equal(t, seq.Digest(), par.Digest(), "workers=%d", workers)
	}
}

func TestPixelFormatsAgree(t *testing.T) {
	w := stepWorld(t)
	v := View{Pos: geom.V(-4, 30), Facing: -0.2, Sector: 0}
	r := New(DefaultConfig())

	var images [][]byte
	for _, format := range []PixelFormat{FormatRGB24, FormatRGBA32, FormatARGB32, FormatBGRA32} {
		f, err := NewFrame(320, 240, format)
		require.NoError(t, err)
		_, err = r.Render(w, v, f)
		require.NoError(t, err)
		images = append(images, f.Image().Pix)
	}
	for i := 1; i < len(images); i++ {
		assert.Equal(t, images[0], images[i], "format %d", i)
	}
}

func TestRenderRejectsBadSector(t *testing.T) {
	f, err := NewFrame(8, 8, FormatRGBA32)
	require.NoError(t, err)
	_, err = New(DefaultConfig()).Render(boxWorld(t), View{Sector: 3}, f)
	assert.ErrorIs(t, err, ErrBadSector)
}

func TestFrameConstruction(t *testing.T) {
	_, err := WrapFrame(make([]byte, 10), 2, 2, FormatRGBA32)
	assert.ErrorIs(t, err, ErrFrameSize)

	f, err := WrapFrame(make([]byte, 12), 2, 2, FormatRGB24)
	require.NoError(t, err)
	f.Set(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	f.Set(5, 5, color.RGBA{R: 9})
	assert.Equal(t, []byte{1, 2, 3}, f.Pix[9:12])
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0xFF}, f.At(1, 1))

	_, err = NewFrame(0, 4, FormatRGB24)
	assert.ErrorIs(t, err, ErrFrameSize)

	p, err := ParsePixelFormat("ARGB32")
	require.NoError(t, err)
	assert.Equal(t, FormatARGB32, p)
	_, err = ParsePixelFormat("yuv")
	assert.Error(t, err)
}

func TestShading(t *testing.T) {
	assert.Equal(t, 1.0, brightness(40, 10))
	assert.Equal(t, 0.5, brightness(40, 80))
	assert.Equal(t, 1.0, brightness(40, 0))
	assert.Equal(t, uint8(0), xorTexel(2.5, 2.5, 4))
	assert.Equal(t, uint8(1^2), xorTexel(0.25, 0.5, 4))
	assert.Equal(t, uint8(255), quantize(-0.1, 4))
}

func TestMapTransformFacesUp(t *testing.T) {
	for _, facing := range []float64{0, 0.8, math.Pi / 2, -2.4} {
		v := View{Pos: geom.V(12, -7), Facing: facing}
		m := MapTransform(v, 200, 100, 3)
		c := m.Apply(v.Pos)
		assert.True(t, c.ApproxEqual(geom.V(100, 50), 1e-9), "centre %v", c)
		ahead := m.Apply(v.Pos.Add(world.Direction(facing))).Sub(c)
		assert.True(t, ahead.ApproxEqual(geom.V(0, -3), 1e-9), "facing %v maps to %v", facing, ahead)
	}
}

func TestDrawMap(t *testing.T) {
	w := boxWorld(t)
	f, err := NewFrame(320, 240, FormatRGBA32)
	require.NoError(t, err)

	DrawMap(w, View{Pos: geom.V(0, 0), Sector: 0}, f, 1)
	assert.Equal(t, mapCurrent, f.At(160, 110), "wall 10 units ahead")
	assert.Equal(t, mapViewer, f.At(160, 118))
	assert.Equal(t, mapBackground, f.At(5, 5))

	DrawMap(w, View{Pos: geom.V(0, 0), Facing: math.Pi / 2, Sector: 0}, f, 1)
	got := []color.RGBA{f.At(160, 69), f.At(160, 70)}
	assert.Contains(t, got, mapCurrent, "east wall should be ahead when facing +X")
}

func TestClipSeg(t *testing.T) {
	s, ok := clipSeg(geom.Seg(-10, 5, 30, 5), 20, 10)
	require.True(t, ok)
	assert.True(t, s.A.ApproxEqual(geom.V(0, 5), 1e-9))
	assert.True(t, s.B.ApproxEqual(geom.V(20, 5), 1e-9))

	_, ok = clipSeg(geom.Seg(-10, -5, 30, -5), 20, 10)
	assert.False(t, ok)
}
