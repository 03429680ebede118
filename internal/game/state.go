package game

import (
	"fmt"
	"time"

	"github.com/triangulate/api/internal/cityname"
	"github.com/triangulate/api/internal/projection"
	"github.com/triangulate/api/internal/sphere"
)

// State is the aggregate for one game session. It is not safe for
// concurrent use on its own; the Registry serializes access per game.
type State struct {
	cfg     Config
	stage   Stage
	turn    int // 1-based seat whose action is next
	version uint64

	vertices []City
	tri      sphere.Triangle
	triSet   bool

	// Secondary planar representation, built once on the 3rd vertex
	// and served to map clients via PlanarOutline. Never consulted
	// for scoring; sphere.Triangle is authoritative.
	proj   *projection.Projection
	planar projection.Polygon

	submissions [][]Submission
	scores      []int
	counts      []int
	names       []string

	// Normalized names of everything accepted so far, maintained
	// incrementally — one insert per accepted entry.
	used        map[string]struct{}
	vertexNames map[string]struct{}

	bestScore int
	createdAt time.Time
}

// projections is shared across games: concurrent sessions over the
// same region reuse one projection instead of rebuilding it per game.
var projections = projection.NewCache()

// New creates a game in the triangle stage with player 1 to act.
func New(cfg Config) (*State, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &State{
		cfg:         cfg,
		stage:       StageTriangle,
		turn:        1,
		submissions: make([][]Submission, cfg.Players),
		scores:      make([]int, cfg.Players),
		counts:      make([]int, cfg.Players),
		names:       make([]string, cfg.Players),
		used:        make(map[string]struct{}),
		vertexNames: make(map[string]struct{}),
		createdAt:   time.Now().UTC(),
	}, nil
}

func (s *State) Config() Config       { return s.cfg }
func (s *State) Stage() Stage         { return s.stage }
func (s *State) Turn() int            { return s.turn }
func (s *State) Version() uint64      { return s.version }
func (s *State) CreatedAt() time.Time { return s.createdAt }

// Triangle returns the finalized spherical triangle. ok is false while
// the game is still collecting vertices.
func (s *State) Triangle() (sphere.Triangle, bool) {
	return s.tri, s.triSet
}

// PlanarOutline returns the triangle corners under the equal-area
// projection centered on the centroid, as (x, y) meter pairs. Map
// clients use it to shade the interior; verdicts never do. ok is
// false while the triangle is incomplete.
func (s *State) PlanarOutline() ([][2]float64, bool) {
	if !s.triSet {
		return nil, false
	}
	return s.planar.Vertices(), true
}

// UsedNames returns a copy of the normalized names accepted so far.
func (s *State) UsedNames() map[string]bool {
	out := make(map[string]bool, len(s.used))
	for k := range s.used {
		out[k] = true
	}
	return out
}

func (s *State) checkSeat(seat int) error {
	if seat < 1 || seat > s.cfg.Players {
		return ErrInvalidSeat
	}
	return nil
}

// AddVertex accepts one triangle vertex from the seat whose turn it is.
// The third accepted vertex finalizes the triangle, builds the legacy
// planar polygon and moves the game to the scoring stage. A vertex
// whose name duplicates an earlier vertex, or whose position would make
// the triangle degenerate, is rejected with state unchanged.
func (s *State) AddVertex(seat int, c City) error {
	if err := s.checkSeat(seat); err != nil {
		return err
	}
	if s.stage != StageTriangle {
		return ErrWrongStage
	}
	if seat != s.turn {
		return ErrNotYourTurn
	}

	key := cityname.Normalize(c.Name)
	if _, dup := s.used[key]; dup {
		return ErrDuplicateCity
	}

	if len(s.vertices) == 2 {
		tri, err := sphere.NewTriangle(s.vertices[0].Point, s.vertices[1].Point, c.Point)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDegenerateVertex, err)
		}
		s.tri = tri
		s.triSet = true
		s.proj = projections.For(tri.Centroid())
		s.planar = s.proj.Project([]sphere.Point{
			s.vertices[0].Point, s.vertices[1].Point, c.Point,
		})
		s.stage = StageScoring
	}

	s.vertices = append(s.vertices, c)
	s.used[key] = struct{}{}
	s.vertexNames[key] = struct{}{}
	s.version++
	s.advanceTurn()
	return nil
}

// Submit accepts one scoring entry from the seat whose turn it is. The
// containment verdict always comes from the spherical triangle. An
// inside city with a known population scores; the turn advances and the
// submitted count increases for every accepted entry, inside or not.
// When every player has used all rounds the game moves to name entry.
func (s *State) Submit(seat int, c City) (Submission, error) {
	if err := s.checkSeat(seat); err != nil {
		return Submission{}, err
	}
	if s.stage != StageScoring {
		return Submission{}, ErrWrongStage
	}
	if seat != s.turn {
		return Submission{}, ErrNotYourTurn
	}

	key := cityname.Normalize(c.Name)
	if _, hit := s.vertexNames[key]; hit {
		return Submission{}, ErrVertexCollision
	}
	if _, dup := s.used[key]; dup {
		return Submission{}, ErrDuplicateCity
	}

	sub := Submission{
		City:   c,
		Inside: s.tri.Contains(c.Point),
		Player: seat,
		Order:  len(s.submissions[seat-1]) + 1,
	}
	s.submissions[seat-1] = append(s.submissions[seat-1], sub)
	s.used[key] = struct{}{}
	if sub.Inside && c.Population > 0 {
		s.scores[seat-1] += c.Population
	}
	s.counts[seat-1]++
	s.version++

	total := 0
	for _, n := range s.counts {
		total += n
	}
	if total >= s.cfg.Rounds*s.cfg.Players {
		s.stage = StageNames
	}
	s.advanceTurn()
	return sub, nil
}

// SetName records a player's display name during name entry. The last
// name finishes the game.
func (s *State) SetName(seat int, name string) error {
	if err := s.checkSeat(seat); err != nil {
		return err
	}
	if s.stage != StageNames {
		return ErrWrongStage
	}
	name = cityname.Short(name)
	if name == "" {
		return ErrEmptyName
	}
	s.names[seat-1] = name
	s.version++

	for _, n := range s.names {
		if n == "" {
			return nil
		}
	}
	s.stage = StageFinished
	return nil
}

// SetBestScore records the benchmark best-possible score once the game
// is finished. Efficiency in snapshots divides by it.
func (s *State) SetBestScore(best int) {
	s.bestScore = best
	s.version++
}

// advanceTurn moves to the next seat, skipping players who exhausted
// their rounds while scoring. Only called after an accepted mutation,
// so while scoring the turn always denotes a player with rounds left.
func (s *State) advanceTurn() {
	for i := 0; i < s.cfg.Players; i++ {
		s.turn = s.turn%s.cfg.Players + 1
		if s.stage != StageScoring || s.counts[s.turn-1] < s.cfg.Rounds {
			return
		}
	}
}
