package engine

import (
	"math"

	"github.com/brandeval/brandeval/internal/model"
)

// Aggregate combines the four sub-scores into one composite using the
// round-half-up arithmetic mean. The rule is intentionally simple: given the
// four stored sub-scores, the stored composite must always be reproducible.
func Aggregate(s model.ScoreSet) int {
	sum := s.Size + s.Subject + s.Creativity + s.Mood
	return int(math.Floor(float64(sum)/4 + 0.5))
}
