package socialgraph

// distanceModel computes the pairwise "social distance" used to rank
// candidate peers before tiered weighted sampling (spec.md §4.2).
type distanceModel struct {
	n     int
	coord []Coordinate // always len n; a zero Coordinate means "no coordinate"
}

// newDistanceModel builds the model for N users from optionally supplied
// coordinates. Users past len(coords) fall back to the pseudo-distance
// formula even when some coordinates are present, since the invariant is
// "if users carry spatial coordinates, use squared Euclidean" per-user.
func newDistanceModel(n int, coords []Coordinate) *distanceModel {
	c := make([]Coordinate, n)
	copy(c, coords)
	return &distanceModel{n: n, coord: c}
}

func (d *distanceModel) hasCoord(i int) bool {
	return i < len(d.coord) && (d.coord[i] != Coordinate{})
}

// dist returns the distance between users i and j, per spec.md §4.2:
// squared Euclidean distance when both carry coordinates, otherwise a
// deterministic pseudo-distance that biases clustering by id proximity:
//
//	(((i*2654435761 + j*2246822519) mod 2^32) / 2^32)^2 * N
func (d *distanceModel) dist(i, j int) float64 {
	if d.hasCoord(i) && d.hasCoord(j) {
		dx := d.coord[i].X - d.coord[j].X
		dy := d.coord[i].Y - d.coord[j].Y
		return dx*dx + dy*dy
	}
	return pseudoDistance(i, j, d.n)
}

const (
	pseudoMulA = 2654435761
	pseudoMulB = 2246822519
	pseudoMod  = 1 << 32
)

// pseudoDistance implements the deterministic hash-based distance from
// spec.md §4.2, producing a clustering bias among nearby ids without
// requiring spatial coordinates.
func pseudoDistance(i, j, n int) float64 {
	h := (uint64(i)*pseudoMulA + uint64(j)*pseudoMulB) % pseudoMod
	frac := float64(h) / float64(pseudoMod)
	return frac * frac * float64(n)
}
