package rules

// Coord addresses a cell on a square board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) In(size int) bool {
	return that.Row >= 0 && that.Row < size && that.Col >= 0 && that.Col < size
}

// Index flattens the coordinate for a board of the given width.
func (that Coord) Index(width int) int {
	return that.Row*width + that.Col
}

func FromIndex(index, width int) Coord {
	return Coord{Row: index / width, Col: index % width}
}

// Delta returns the signed row and column distance to other.
func (that Coord) Delta(other Coord) (int, int) {
	return other.Row - that.Row, other.Col - that.Col
}

// Midpoint is only meaningful when both deltas are even.
func (that Coord) Midpoint(other Coord) Coord {
	return Coord{Row: (that.Row + other.Row) / 2, Col: (that.Col + other.Col) / 2}
}

// IsDark reports whether (row+col) is odd, the playable squares of a checkerboard.
func (that Coord) IsDark() bool {
	return (that.Row+that.Col)%2 == 1
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
