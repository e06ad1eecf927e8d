package maps

import (
	"fmt"

	"rustycast/pkg/core"
)

const (
	doorHalfWidth = 6
	minRooms      = 4
	maxRooms      = 9
)

// Generate builds a row of rooms running away from the spawn point along
// -Y, joined by doorways of equal width. Room sizes and elevations come
// from seed; floors never change by more than one step between rooms.
func Generate(seed int64) (*Map, error) {
	rng := core.NewRNG(seed)
	n := rng.IntRange(minRooms, maxRooms)

	doc := &Document{Sectors: make([]SectorDoc, n)}
	near := 0.0
	floor := 0.0
	for k := range doc.Sectors {
		far := near - rng.FloatRange(15, 45)
		hw := rng.FloatRange(doorHalfWidth+4, 35)
		if k > 0 {
			floor += rng.Snap(-4, 4, 2)
		}
		ceiling := floor + rng.Snap(16, 40, 4)

		sd := SectorDoc{
			Name:    fmt.Sprintf("room%d", k),
			Floor:   floor,
			Ceiling: ceiling,
			Points: [][]float64{
				{-hw, far}, {-doorHalfWidth, far}, {doorHalfWidth, far}, {hw, far},
				{hw, near}, {doorHalfWidth, near}, {-doorHalfWidth, near}, {-hw, near},
			},
		}
		if k+1 < n {
			// Wall 1 is the far doorway; the next room mirrors it as wall 5.
			sd.Portals = []PortalDoc{{Wall: 1, To: fmt.Sprintf("room%d", k+1)}}
		}
		doc.Sectors[k] = sd
		near = far
	}
	first := doc.Sectors[0].Points
	doc.Spawn = &SpawnDoc{X: 0, Y: (first[0][1] + first[4][1]) / 2, Sector: "room0"}
	return doc.Build("generated")
}
