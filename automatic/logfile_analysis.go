package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/domino14/barragoon/stats"
)

// AnalyzeLogFile reads a log written by Run and returns a short report.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// gameID,turns,winner,finalfen,meanbranching,repeats
	turns := &stats.Running{}
	branching := &stats.Running{}
	wins := map[string]int{}
	gamesPlayed := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			continue
		}
		t, err := strconv.Atoi(record[1])
		if err != nil {
			return "", err
		}
		b, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return "", err
		}
		turns.Add(float64(t))
		branching.Add(b)
		wins[record[2]]++
		gamesPlayed++
	}
	if gamesPlayed == 0 {
		return "Games played: 0\n", nil
	}

	lo, hi := turns.ConfidenceInterval(95)
	report := fmt.Sprintf("Games played: %d\n", gamesPlayed)
	for _, w := range []string{"light", "dark", "none"} {
		report += fmt.Sprintf("Won by %s: %d (%.3f%%)\n", w, wins[w],
			100.0*float64(wins[w])/float64(gamesPlayed))
	}
	report += fmt.Sprintf("Turns: mean %.3f  stdev %.3f  95%% CI [%.3f, %.3f]\n",
		turns.Mean(), turns.Stdev(), lo, hi)
	report += fmt.Sprintf("Mean branching per game: mean %.3f  stdev %.3f\n",
		branching.Mean(), branching.Stdev())
	return report, nil
}
