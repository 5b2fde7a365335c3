package tetris

import (
	"time"

	"golang.org/x/exp/rand"
)

// Randomizer chooses the kind of each newly drawn piece.
type Randomizer interface {
	Draw(kinds []Kind) Kind
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// UniformRandomizer draws every piece independently and uniformly. Repeats are
// possible and nothing guarantees every kind shows up within a window.
type UniformRandomizer struct {
	rng *rand.Rand
}

// NewUniformRandomizer returns a uniform randomizer. A zero seed seeds from the clock.
func NewUniformRandomizer(seed uint64) *UniformRandomizer {
	return &UniformRandomizer{rng: newRand(seed)}
}

func (u *UniformRandomizer) Draw(kinds []Kind) Kind {
	return kinds[u.rng.Intn(len(kinds))]
}

// BagRandomizer deals every kind once, in shuffled order, before reshuffling.
type BagRandomizer struct {
	rng *rand.Rand
	bag []Kind
}

// NewBagRandomizer returns a shuffled-bag randomizer. A zero seed seeds from the clock.
func NewBagRandomizer(seed uint64) *BagRandomizer {
	return &BagRandomizer{rng: newRand(seed)}
}

func (b *BagRandomizer) Draw(kinds []Kind) Kind {
	if len(b.bag) == 0 {
		b.bag = append(b.bag[:0], kinds...)
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}
	k := b.bag[0]
	b.bag = b.bag[1:]
	return k
}
