// Package maps loads sector maps from YAML or JSON documents and provides
// the built-in maps selectable by name.
package maps

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"rustycast/internal/world"
	"rustycast/pkg/geom"
)

// ErrDocument flags map documents that cannot be turned into a world.
var ErrDocument = errors.New("malformed map document")

// Document is the on-disk form of a map. Walls run between consecutive
// points of a sector, the last point closing back onto the first.
type Document struct {
	Spawn   *SpawnDoc   `json:"spawn,omitempty" yaml:"spawn,omitempty"`
	Sectors []SectorDoc `json:"sectors" yaml:"sectors"`
}

// SpawnDoc places the viewer. An empty Sector means "whichever sector
// contains the point".
type SpawnDoc struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Angle  float64 `json:"angle" yaml:"angle"`
	Sector string  `json:"sector,omitempty" yaml:"sector,omitempty"`
}

type SectorDoc struct {
	Name    string      `json:"name" yaml:"name"`
	Floor   float64     `json:"floor" yaml:"floor"`
	Ceiling float64     `json:"ceiling" yaml:"ceiling"`
	Points  [][]float64 `json:"points" yaml:"points"`
	Portals []PortalDoc `json:"portals,omitempty" yaml:"portals,omitempty"`
}

// PortalDoc opens wall Wall into sector To. When ToWall is omitted the
// target wall is the one with the same endpoints.
type PortalDoc struct {
	Wall   int    `json:"wall" yaml:"wall"`
	To     string `json:"to" yaml:"to"`
	ToWall *int   `json:"to_wall,omitempty" yaml:"to_wall,omitempty"`
}

// Start is a resolved spawn point.
type Start struct {
	Pos    geom.Vec2
	Facing float64
	Sector int
}

// Map is a loaded, validated map.
type Map struct {
	Name  string
	World *world.World
	Start Start
}

// LoadJSON decodes a document from JSON.
func LoadJSON(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadYAML decodes a document from YAML.
func LoadYAML(r io.Reader) (*Document, error) {
	var d Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Build resolves sector names and portal targets and validates the result.
func (d *Document) Build(name string) (*Map, error) {
	if len(d.Sectors) == 0 {
		return nil, fmt.Errorf("map %s: %w", name, world.ErrEmptyWorld)
	}

	index := make(map[string]int, len(d.Sectors))
	for i := range d.Sectors {
		n := d.Sectors[i].Name
		if n == "" {
			continue
		}
		if _, dup := index[n]; dup {
			return nil, fmt.Errorf("map %s: duplicate sector name %q: %w", name, n, ErrDocument)
		}
		index[n] = i
	}

	sectors := make([]world.Sector, len(d.Sectors))
	for i, sd := range d.Sectors {
		walls, err := sd.walls()
		if err != nil {
			return nil, fmt.Errorf("map %s: sector %s: %w", name, sd.label(i), err)
		}
		sectors[i] = world.Sector{
			Name:  sd.Name,
			Info:  world.SectorInfo{Floor: sd.Floor, Ceiling: sd.Ceiling},
			Walls: walls,
		}
	}

	var links [][2]world.WallRef
	for i, sd := range d.Sectors {
		for k, p := range sd.Portals {
			from, to, err := resolvePortal(sectors, index, i, p)
			if err != nil {
				return nil, fmt.Errorf("map %s: sector %s portal %d: %w", name, sd.label(i), k, err)
			}
			links = append(links, [2]world.WallRef{from, to})
		}
	}
	for _, l := range links {
		from, to := l[0], l[1]
		ref := to
		sectors[from.Sector].Walls[from.Wall].Portal = &ref
	}
	// A portal declared on one side only is mirrored onto the other.
	for _, l := range links {
		from, to := l[0], l[1]
		if mirror := &sectors[to.Sector].Walls[to.Wall]; mirror.Portal == nil {
			ref := from
			mirror.Portal = &ref
		}
	}

	w, err := world.New(sectors)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}
	start, err := d.start(w, index)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}
	return &Map{Name: name, World: w, Start: start}, nil
}

func (sd *SectorDoc) label(i int) string {
	if sd.Name != "" {
		return fmt.Sprintf("%q", sd.Name)
	}
	return fmt.Sprintf("#%d", i)
}

func (sd *SectorDoc) walls() ([]world.Wall, error) {
	pts := make([]geom.Vec2, len(sd.Points))
	for i, p := range sd.Points {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d has %d coordinates: %w", i, len(p), ErrDocument)
		}
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return nil, fmt.Errorf("point %d is not finite: %w", i, ErrDocument)
		}
		pts[i] = geom.V(p[0], p[1])
	}
	walls := make([]world.Wall, len(pts))
	for i := range pts {
		walls[i] = world.Wall{Seg: geom.LineSeg{A: pts[i], B: pts[(i+1)%len(pts)]}}
	}
	return walls, nil
}

func resolvePortal(sectors []world.Sector, index map[string]int, i int, p PortalDoc) (world.WallRef, world.WallRef, error) {
	from := world.WallRef{Sector: i, Wall: p.Wall}
	if p.Wall < 0 || p.Wall >= len(sectors[i].Walls) {
		return from, world.WallRef{}, fmt.Errorf("wall %d out of range: %w", p.Wall, world.ErrBadPortal)
	}
	target, ok := index[p.To]
	if !ok {
		return from, world.WallRef{}, fmt.Errorf("unknown sector %q: %w", p.To, world.ErrBadPortal)
	}
	to := world.WallRef{Sector: target, Wall: -1}
	if p.ToWall != nil {
		to.Wall = *p.ToWall
		if to.Wall < 0 || to.Wall >= len(sectors[target].Walls) {
			return from, to, fmt.Errorf("target wall %d out of range: %w", to.Wall, world.ErrBadPortal)
		}
		return from, to, nil
	}
	seg := sectors[i].Walls[p.Wall].Seg
	for j, wl := range sectors[target].Walls {
		if wl.Seg.SameEndpoints(seg, world.EndpointEpsilon) {
			to.Wall = j
			return from, to, nil
		}
	}
	return from, to, fmt.Errorf("no wall of %q matches wall %d: %w", p.To, p.Wall, world.ErrBadPortal)
}

func (d *Document) start(w *world.World, index map[string]int) (Start, error) {
	if d.Spawn == nil {
		return Start{Pos: centroid(w.Sector(0)), Sector: 0}, nil
	}
	sp := d.Spawn
	st := Start{Pos: geom.V(sp.X, sp.Y), Facing: sp.Angle, Sector: -1}
	if sp.Sector == "" {
		st.Sector = w.Locate(st.Pos)
		if st.Sector < 0 {
			return st, fmt.Errorf("spawn (%g, %g) is outside every sector: %w", sp.X, sp.Y, ErrDocument)
		}
		return st, nil
	}
	i, ok := index[sp.Sector]
	if !ok {
		return st, fmt.Errorf("spawn sector %q not found: %w", sp.Sector, ErrDocument)
	}
	if !w.Contains(i, st.Pos) {
		return st, fmt.Errorf("spawn (%g, %g) is outside sector %q: %w", sp.X, sp.Y, sp.Sector, ErrDocument)
	}
	st.Sector = i
	return st, nil
}

// centroid is the vertex average, which lies inside a convex sector.
func centroid(s world.Sector) geom.Vec2 {
	var c geom.Vec2
	for _, wl := range s.Walls {
		c = c.Add(wl.Seg.A)
	}
	return c.Scale(1 / float64(len(s.Walls)))
}
