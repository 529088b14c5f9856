package agent

import (
	"fmt"
	"hash/fnv"
)

var admiralFirstNames = []string{
	"Ada", "Boris", "Cora", "Dmitri", "Elena", "Farid", "Grace", "Hideo",
	"Ines", "Jarek", "Kira", "Lazlo", "Mira", "Nikolai", "Oona", "Petra",
}

var admiralSurnames = []string{
	"Akkerman", "Bellweather", "Castellan", "Drax", "Eriksen", "Falk",
	"Grimaldi", "Hale", "Ivanova", "Jax", "Kestrel", "Lazar", "Moreau",
	"Novik", "Orlov", "Pike",
}

// AdmiralName derives a display name for an AI player. It is a pure
// function of the game seed and the model id, so replays of the same
// matchup always face the same admiral.
func AdmiralName(seed int64, modelID string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d/%s", seed, modelID)
	sum := h.Sum64()

	first := admiralFirstNames[sum%uint64(len(admiralFirstNames))]
	last := admiralSurnames[(sum>>32)%uint64(len(admiralSurnames))]
	return fmt.Sprintf("Admiral %s %s", first, last)
}
