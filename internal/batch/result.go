package batch

import "time"

// Result records the outcome of one track's pipeline run.
type Result struct {
	Index   int
	Path    string
	Title   string
	Output  string
	Pure    bool
	Skipped bool
	Elapsed time.Duration
	Err     error
}

// Summary aggregates a batch run. Elapsed totals cover successful tracks
// only; failures contribute to Failures and nothing else.
type Summary struct {
	Total     int
	Successes int
	Failures  int

	PureCount    int
	PureElapsed  time.Duration
	LyricCount   int
	LyricElapsed time.Duration

	WallClock time.Duration

	Results []Result
}

func summarize(results []Result, wallClock time.Duration) *Summary {
	s := &Summary{
		Total:     len(results),
		WallClock: wallClock,
		Results:   results,
	}
	for _, r := range results {
		if r.Err != nil {
			s.Failures++
			continue
		}
		s.Successes++
		if r.Pure {
			s.PureCount++
			s.PureElapsed += r.Elapsed
		} else {
			s.LyricCount++
			s.LyricElapsed += r.Elapsed
		}
	}
	return s
}

// AveragePure is the mean elapsed time per pure-instrumental track.
func (s *Summary) AveragePure() time.Duration {
	if s.PureCount == 0 {
		return 0
	}
	return s.PureElapsed / time.Duration(s.PureCount)
}

// AverageLyric is the mean elapsed time per lyric-bearing track.
func (s *Summary) AverageLyric() time.Duration {
	if s.LyricCount == 0 {
		return 0
	}
	return s.LyricElapsed / time.Duration(s.LyricCount)
}
