package words

import (
	"errors"
	"math/rand/v2"
	"testing"

	"tableflip.dev/daylog/pkg/markup"
)

func seeded() *Generator {
	return New(rand.NewPCG(1, 2))
}

func TestNextIsAWordID(t *testing.T) {
	g := seeded()
	for i := 0; i < 50; i++ {
		if id := g.Next(); !markup.IsWordID(id) {
			t.Fatalf("%q is not a three word id", id)
		}
	}
}

func TestGenerateUniqueReturnsHundredthCandidate(t *testing.T) {
	ref := seeded()
	var want string
	for i := 0; i < 100; i++ {
		want = ref.Next()
	}

	calls := 0
	got, err := seeded().GenerateUnique(func(string) (bool, error) {
		calls++
		return calls < 100, nil
	}, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want the 100th candidate %q", got, want)
	}
	if calls != 100 {
		t.Fatalf("exists called %d times", calls)
	}
}

func TestGenerateUniqueExhausted(t *testing.T) {
	for _, attempts := range []int{1, 7, 100} {
		calls := 0
		_, err := seeded().GenerateUnique(func(string) (bool, error) {
			calls++
			return true, nil
		}, attempts)
		if !errors.Is(err, ErrGenerationExhausted) {
			t.Fatalf("expected ErrGenerationExhausted, got %v", err)
		}
		if calls != attempts {
			t.Fatalf("expected %d draws, got %d", attempts, calls)
		}
	}
}

func TestGenerateUniquePropagatesCheckErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := seeded().GenerateUnique(func(string) (bool, error) { return false, boom }, 3)
	if !errors.Is(err, boom) {
		t.Fatalf("expected check error, got %v", err)
	}
}
