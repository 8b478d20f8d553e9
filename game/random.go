package game

import (
	"encoding/binary"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// Source picks the secret word. *frand.RNG and *math/rand.Rand both
// satisfy it.
type Source interface {
	Intn(n int) int
}

// NewRandSource returns a ChaCha-based source. A zero seed draws a fresh
// seed from the system entropy pool; any other seed gives a reproducible
// sequence.
func NewRandSource(seed int64) *frand.RNG {
	if seed == 0 {
		return frand.New()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	log.Debug().Int64("seed", seed).Msg("seeded-rand-source")
	return frand.NewCustom(key[:], 1024, 12)
}
