// Package words makes human-memorable three word identifiers such as
// "calm-thinks-moon".
package words

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultAttempts is how many candidates GenerateUnique draws by default.
const DefaultAttempts = 100

// ErrGenerationExhausted is returned when every drawn candidate collided.
var ErrGenerationExhausted = errors.New("words: identifier generation exhausted")

var adjectives = []string{
	"amber", "bold", "brave", "brisk", "calm", "clever", "cosy", "crisp",
	"daring", "eager", "fancy", "fuzzy", "gentle", "glad", "golden", "happy",
	"humble", "jolly", "keen", "kind", "lively", "lucky", "mellow", "merry",
	"misty", "noble", "odd", "plucky", "proud", "quick", "quiet", "rapid",
	"rosy", "rusty", "shy", "silent", "silver", "sleepy", "snowy", "solid",
	"steady", "sunny", "swift", "tidy", "tiny", "vivid", "warm", "wild",
	"wise", "witty", "young", "zesty",
}

var verbs = []string{
	"bakes", "builds", "calls", "carves", "chases", "climbs", "dances",
	"digs", "draws", "dreams", "drifts", "finds", "flies", "floats", "grows",
	"hums", "jumps", "keeps", "knits", "laughs", "leaps", "lifts", "marches",
	"mends", "paints", "plays", "reads", "rides", "roams", "runs", "sails",
	"seeks", "sings", "skips", "sleeps", "spins", "swims", "talks", "thinks",
	"tends", "walks", "waves", "weaves", "whistles", "writes", "yawns",
}

var nouns = []string{
	"acorn", "badger", "beacon", "brook", "canyon", "cedar", "cloud",
	"comet", "coral", "dune", "ember", "falcon", "fern", "fjord", "forest",
	"garden", "glacier", "harbor", "hollow", "island", "lake", "lantern",
	"meadow", "moon", "otter", "orchard", "pebble", "pine", "planet", "prairie",
	"quarry", "raven", "reef", "ridge", "river", "robin", "sparrow", "spruce",
	"star", "stone", "summit", "thistle", "tide", "valley", "willow", "wren",
}

// Generator draws identifiers from a random source.
type Generator struct {
	intN func(n int) int
}

// New returns a generator using src. A nil src is seeded from the clock.
func New(src rand.Source) *Generator {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32|1)
	}
	r := rand.New(src)
	return &Generator{intN: r.IntN}
}

// Next draws one identifier without checking for collisions.
func (g *Generator) Next() string {
	return fmt.Sprintf("%s-%s-%s",
		adjectives[g.intN(len(adjectives))],
		verbs[g.intN(len(verbs))],
		nouns[g.intN(len(nouns))],
	)
}

// GenerateUnique draws up to maxAttempts identifiers and returns the first
// one exists reports as unused. A maxAttempts below one uses
// DefaultAttempts.
func (g *Generator) GenerateUnique(exists func(id string) (bool, error), maxAttempts int) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = DefaultAttempts
	}
	for i := 0; i < maxAttempts; i++ {
		id := g.Next()
		taken, err := exists(id)
		if err != nil {
			return "", fmt.Errorf("words: check %s: %w", id, err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrGenerationExhausted, maxAttempts)
}
