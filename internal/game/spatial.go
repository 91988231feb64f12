package game

import "math"

// SpatialIndex is a uniform grid over static circles, keyed by integer cell
// coordinates. Objects are registered in every cell their bounding circle
// overlaps, so an object spanning a cell boundary is referenced from multiple
// cells. There is no removal: the course is built once and read-only for the
// session, which also makes concurrent reads safe without locking.
type SpatialIndex struct {
	cellSize float64
	cells    map[cellKey][]int

	// Per-object visit stamps for query deduplication, reused across queries.
	marks []uint32
	stamp uint32
}

type cellKey struct {
	X, Z int
}

func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = SpatialCellSize
	}
	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

// Insert registers object id with the given bounding circle. ids must be
// assigned densely from zero (they index the dedup stamp table).
func (s *SpatialIndex) Insert(id int, x, z, radius float64) {
	for len(s.marks) <= id {
		s.marks = append(s.marks, 0)
	}
	x0, z0 := s.cellOf(x-radius, z-radius)
	x1, z1 := s.cellOf(x+radius, z+radius)
	for cz := z0; cz <= z1; cz++ {
		for cx := x0; cx <= x1; cx++ {
			k := cellKey{X: cx, Z: cz}
			s.cells[k] = append(s.cells[k], id)
		}
	}
}

// Query appends to out the deduplicated ids registered in every cell
// overlapped by the circle at (x,z). The returned slice aliases out's backing
// array; callers reuse their buffer across frames.
func (s *SpatialIndex) Query(x, z, radius float64, out []int) []int {
	s.stamp++
	x0, z0 := s.cellOf(x-radius, z-radius)
	x1, z1 := s.cellOf(x+radius, z+radius)
	for cz := z0; cz <= z1; cz++ {
		for cx := x0; cx <= x1; cx++ {
			for _, id := range s.cells[cellKey{X: cx, Z: cz}] {
				if s.marks[id] == s.stamp {
					continue
				}
				s.marks[id] = s.stamp
				out = append(out, id)
			}
		}
	}
	return out
}

func (s *SpatialIndex) cellOf(x, z float64) (int, int) {
	return int(math.Floor(x / s.cellSize)), int(math.Floor(z / s.cellSize))
}
