package sphere

// Difficulty classifies a triangle by its mean edge length. Smaller
// triangles are harder: fewer cities fit inside.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Edge-length bands in km.
const (
	easyMinKm   = 3500.0
	mediumMinKm = 2000.0
)

// Classify maps a mean edge length in km to a difficulty band.
func Classify(meanEdgeKm float64) Difficulty {
	switch {
	case meanEdgeKm >= easyMinKm:
		return Easy
	case meanEdgeKm >= mediumMinKm:
		return Medium
	default:
		return Hard
	}
}

// Valid reports whether d is one of the known difficulty bands.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}
