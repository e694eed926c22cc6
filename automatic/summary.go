package automatic

import (
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/cespare/xxhash"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/barragoon/stats"
	"github.com/domino14/barragoon/tiles"
)

const histogramBins = 15

// Summary aggregates the results of many games.
type Summary struct {
	RunID                  string     `yaml:"run_id,omitempty"`
	Games                  int        `yaml:"games"`
	LightWins              int        `yaml:"light_wins"`
	DarkWins               int        `yaml:"dark_wins"`
	Undecided              int        `yaml:"undecided"`
	DistinctFinalPositions int        `yaml:"distinct_final_positions"`
	MeanTurns              float64    `yaml:"mean_turns"`
	StdevTurns             float64    `yaml:"stdev_turns"`
	TurnsCI95              [2]float64 `yaml:"turns_ci95,flow"`
	MeanBranching          float64    `yaml:"mean_branching"`
	StdevBranching         float64    `yaml:"stdev_branching"`
	MaxBranching           int        `yaml:"max_branching"`
	RepeatedPositions      int        `yaml:"repeated_positions"`

	turns     stats.Running
	branching []float64
	finals    map[uint64]struct{}
}

// Add folds one game into the summary.
func (s *Summary) Add(r GameResult) {
	if s.finals == nil {
		s.finals = make(map[uint64]struct{})
	}
	s.Games++
	switch {
	case !r.Decided:
		s.Undecided++
	case r.Winner == tiles.Light:
		s.LightWins++
	default:
		s.DarkWins++
	}
	s.turns.Add(float64(r.Turns))
	s.RepeatedPositions += r.Repeats
	s.branching = append(s.branching, lo.Map(r.Branching, func(b int, _ int) float64 {
		return float64(b)
	})...)
	s.finals[xxhash.Sum64String(r.FinalFEN)] = struct{}{}
}

// Finish computes the derived fields.
func (s *Summary) Finish() {
	s.DistinctFinalPositions = len(s.finals)
	s.MeanTurns = s.turns.Mean()
	s.StdevTurns = s.turns.Stdev()
	s.TurnsCI95[0], s.TurnsCI95[1] = s.turns.ConfidenceInterval(95)
	s.MeanBranching, s.StdevBranching = stats.Describe(s.branching)
	if len(s.branching) > 0 {
		s.MaxBranching = int(lo.Max(s.branching))
	}
}

// YAML renders the summary.
func (s *Summary) YAML() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// WriteHistogram plots the branching factor over all turns played.
func (s *Summary) WriteHistogram(w io.Writer, width int) error {
	if len(s.branching) == 0 {
		_, err := io.WriteString(w, "no turns played\n")
		return err
	}
	h := histogram.Hist(histogramBins, s.branching)
	return histogram.Fprint(w, h, histogram.Linear(width))
}
