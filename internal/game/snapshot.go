package game

import (
	"github.com/triangulate/api/internal/sphere"
)

// VertexView is a triangle vertex as exposed to clients.
type VertexView struct {
	Name  string       `json:"name"`
	Point sphere.Point `json:"point"`
}

// SubmissionView is a submission as exposed to clients. The verdict and
// population are withheld while play is blind.
type SubmissionView struct {
	Name       string        `json:"name"`
	Point      *sphere.Point `json:"point,omitempty"`
	Inside     *bool         `json:"inside,omitempty"`
	Population *int          `json:"population,omitempty"`
}

// PlayerView is one seat's public state.
type PlayerView struct {
	Seat        int              `json:"seat"`
	Name        string           `json:"name,omitempty"`
	Submitted   int              `json:"submitted"`
	Submissions []SubmissionView `json:"submissions"`
	Score       *int             `json:"score,omitempty"`
	Efficiency  *float64         `json:"efficiency,omitempty"`
}

// Snapshot is an immutable view of a game for one poll or event.
// Scores, verdicts and positions stay hidden until the game finishes —
// play is blind by design of the game, not an API limitation.
type Snapshot struct {
	Stage      Stage             `json:"stage"`
	Turn       int               `json:"turn"`
	Rounds     int               `json:"rounds"`
	Players    []PlayerView      `json:"players"`
	Vertices   []VertexView      `json:"vertices"`
	Difficulty sphere.Difficulty `json:"difficulty,omitempty"`
	MeanEdgeKm float64           `json:"meanEdgeKm,omitempty"`
	BestScore  *int              `json:"bestScore,omitempty"`
	Winners    []int             `json:"winners,omitempty"`
	Version    uint64            `json:"version"`
}

// Snapshot builds the client view of the current state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Stage:   s.stage,
		Turn:    s.turn,
		Rounds:  s.cfg.Rounds,
		Version: s.version,
	}
	for _, v := range s.vertices {
		snap.Vertices = append(snap.Vertices, VertexView{Name: v.Name, Point: v.Point})
	}
	if s.triSet {
		edge := s.tri.MeanEdgeKm()
		snap.MeanEdgeKm = edge
		snap.Difficulty = sphere.Classify(edge)
	}

	finished := s.stage == StageFinished
	for i := 0; i < s.cfg.Players; i++ {
		pv := PlayerView{
			Seat:        i + 1,
			Name:        s.names[i],
			Submitted:   s.counts[i],
			Submissions: []SubmissionView{},
		}
		for _, sub := range s.submissions[i] {
			sv := SubmissionView{Name: sub.Name}
			if finished {
				p, in, pop := sub.Point, sub.Inside, sub.Population
				sv.Point = &p
				sv.Inside = &in
				sv.Population = &pop
			}
			pv.Submissions = append(pv.Submissions, sv)
		}
		if finished {
			score := s.scores[i]
			pv.Score = &score
			if s.bestScore > 0 {
				eff := float64(score) / float64(s.bestScore)
				pv.Efficiency = &eff
			}
		}
		snap.Players = append(snap.Players, pv)
	}

	if finished {
		if s.bestScore > 0 {
			best := s.bestScore
			snap.BestScore = &best
		}
		snap.Winners = s.winners()
	}
	return snap
}

func (s *State) winners() []int {
	max := 0
	for _, sc := range s.scores {
		if sc > max {
			max = sc
		}
	}
	var w []int
	for i, sc := range s.scores {
		if sc == max {
			w = append(w, i+1)
		}
	}
	return w
}

// FinalScores returns per-seat scores for leaderboard persistence.
// Meaningful once the game is finished.
func (s *State) FinalScores() []int {
	out := make([]int, len(s.scores))
	copy(out, s.scores)
	return out
}

// PlayerNames returns the display names entered during name entry.
func (s *State) PlayerNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
