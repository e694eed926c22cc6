package automatic

// Data collection for automatic games.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	GameCounter *expvar.Int
	IsPlaying   *expvar.Int
)

func init() {
	GameCounter = expvar.NewInt("barragoonGameCounter")
	IsPlaying = expvar.NewInt("barragoonIsPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

type job struct {
	id int
}

// Run plays numGames random games on threads workers, writes one CSV row
// per game to outputFilename and returns the collected summary. A
// cancelled ctx stops queueing; games already queued still finish.
func Run(ctx context.Context, numGames, threads, maxTurns int, outputFilename string) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	threads = max(threads, 1)

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	log.Debug().Str("run", runID).Msgf("Starting %v games, %v threads", numGames, threads)

	GameCounter.Set(0)
	jobs := make(chan job, 100)
	logChan := make(chan string, 100)
	results := make(chan GameResult, 100)
	errs := make(chan error, threads)
	var wg sync.WaitGroup
	wg.Add(threads)

	for i := 1; i <= threads; i++ {
		go func() {
			defer wg.Done()
			r := NewGameRunner(logChan, maxTurns)
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				res, err := r.PlayGame(j.id)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					// keep draining so the feeder is not blocked
					continue
				}
				GameCounter.Add(1)
				results <- res
			}
		}()
	}

	go func() {
	gameLoop:
		for i := 1; i <= numGames; i++ {
			select {
			case <-ctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				break gameLoop
			case jobs <- job{id: i}:
			}
			if i%1000 == 0 {
				log.Info().Msgf("Queued %v jobs", i)
			}
		}
		close(jobs)
		log.Debug().Msg("Finished queueing all jobs.")
		wg.Wait()
		log.Debug().Msg("All games finished.")
		close(logChan)
		close(results)
	}()

	loggerDone := make(chan error, 1)
	go func() {
		loggerDone <- writeLog(logfile, logChan)
	}()

	summary := &Summary{RunID: runID}
	for res := range results {
		summary.Add(res)
	}
	summary.Finish()
	if err := <-loggerDone; err != nil {
		return summary, err
	}
	select {
	case err := <-errs:
		return summary, err
	default:
	}
	log.Info().Str("run", runID).Int("games", summary.Games).Msg("autoplay-finished")
	return summary, nil
}

// writeLog writes the header and every row from rows, then closes w. It
// returns the header write and close errors together; row errors are
// only logged.
func writeLog(w io.WriteCloser, rows <-chan string) error {
	_, werr := io.WriteString(w, csvHeader)
	for msg := range rows {
		if _, err := io.WriteString(w, msg); err != nil {
			log.Err(err).Msg("writing-game-log")
		}
	}
	return errors.Join(werr, w.Close())
}
