// Package statistics aggregates finished-game results from batch
// simulations into a printable summary.
package statistics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lox/oanquan/internal/game"
)

// Statistics accumulates results across games. Safe for concurrent Add
// calls, since simulations run games in parallel.
type Statistics struct {
	mu sync.Mutex

	Games      int
	Wins       map[game.Side]int
	Draws      int
	EndReasons map[string]int

	TotalRounds int
	TotalScore  map[game.Side]int

	Elapsed time.Duration
}

// New creates an empty statistics collector.
func New() *Statistics {
	return &Statistics{
		Wins:       make(map[game.Side]int),
		EndReasons: make(map[string]int),
		TotalScore: make(map[game.Side]int),
	}
}

// Add records one finished game.
func (s *Statistics) Add(result *game.GameResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Games++
	if result.Draw {
		s.Draws++
	} else {
		s.Wins[result.Winner]++
	}
	s.EndReasons[result.Reason]++
	s.TotalRounds += result.Rounds
	for side, score := range result.Score {
		s.TotalScore[side] += score
	}
}

// Validate checks internal consistency before reporting.
func (s *Statistics) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Wins[game.SideA]+s.Wins[game.SideB]+s.Draws != s.Games {
		return fmt.Errorf("wins (%d+%d) and draws (%d) do not sum to games (%d)",
			s.Wins[game.SideA], s.Wins[game.SideB], s.Draws, s.Games)
	}
	reasons := 0
	for _, n := range s.EndReasons {
		reasons += n
	}
	if reasons != s.Games {
		return fmt.Errorf("end reasons (%d) do not sum to games (%d)", reasons, s.Games)
	}
	return nil
}

// Summary renders a human-readable report.
func (s *Statistics) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Games:  %d\n", s.Games)
	if s.Games == 0 {
		return sb.String()
	}

	fmt.Fprintf(&sb, "Wins:   A %d (%.1f%%)  B %d (%.1f%%)  draws %d\n",
		s.Wins[game.SideA], pct(s.Wins[game.SideA], s.Games),
		s.Wins[game.SideB], pct(s.Wins[game.SideB], s.Games),
		s.Draws)
	fmt.Fprintf(&sb, "Rounds: %.1f avg\n", float64(s.TotalRounds)/float64(s.Games))
	fmt.Fprintf(&sb, "Score:  A %.1f avg  B %.1f avg\n",
		float64(s.TotalScore[game.SideA])/float64(s.Games),
		float64(s.TotalScore[game.SideB])/float64(s.Games))

	reasons := make([]string, 0, len(s.EndReasons))
	for r := range s.EndReasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	sb.WriteString("End reasons:\n")
	for _, r := range reasons {
		fmt.Fprintf(&sb, "  %-45s %d\n", r, s.EndReasons[r])
	}

	if s.Elapsed > 0 {
		fmt.Fprintf(&sb, "Elapsed: %s (%.0f games/sec)\n",
			s.Elapsed.Round(time.Millisecond),
			float64(s.Games)/s.Elapsed.Seconds())
	}
	return sb.String()
}

func pct(n, total int) float64 {
	return 100 * float64(n) / float64(total)
}
