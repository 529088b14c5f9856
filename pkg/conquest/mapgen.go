package conquest

// starNames is the fixed display-name table. Names are assigned in id
// order starting from an offset derived from the seed, so a given seed
// always produces the same naming.
var starNames = []string{
	"Altair", "Betelgeuse", "Capella", "Deneb", "Electra",
	"Fomalhaut", "Gienah", "Hadar", "Izar", "Jabbah",
	"Kochab", "Lesath", "Mizar", "Naos", "Okul",
	"Polaris", "Quasar", "Rigel", "Sirius", "Thuban",
	"Unukalhai", "Vega", "Wezen", "Xamidimura", "Yildun",
	"Zosma", "Arcturus", "Bellatrix", "Castor", "Dubhe",
}

// ruWeights biases non-home star RU toward lower values.
// Index i holds the weight for RU i+1.
var ruWeights = [5]int{3, 3, 2, 1, 1}

// NewGame generates a starting galaxy from a seed. The same seed always
// yields a byte-identical game: every random draw goes through the game's
// own Rand in a fixed order.
func NewGame(seed int64) *Game {
	rng := NewRand(seed)

	g := &Game{
		Turn:        0,
		Phase:       PhaseRunning,
		Stars:       make(map[StarID]*Star),
		PlayerState: make(map[Owner]*Player),
		Rng:         rng,
	}

	numStars := MinStars + rng.UniformInt(MaxStars-MinStars+1)

	occupied := make(map[[2]int]bool)
	nameOffset := int(uint64(seed) % uint64(len(starNames)))

	place := func(idx int, x, y int) *Star {
		id := StarID(rune('A' + idx))
		s := &Star{
			ID:   id,
			Name: starNames[(nameOffset+idx)%len(starNames)],
			X:    x,
			Y:    y,
		}
		g.Stars[id] = s
		occupied[[2]int{x, y}] = true
		return s
	}

	// Homes first: two distinct cells at Manhattan distance >= 6.
	h1x, h1y := rng.UniformInt(GridWidth), rng.UniformInt(GridHeight)
	h2x, h2y := rng.UniformInt(GridWidth), rng.UniformInt(GridHeight)
	for manhattan(h1x, h1y, h2x, h2y) < MinHomeDistance {
		h2x, h2y = rng.UniformInt(GridWidth), rng.UniformInt(GridHeight)
	}

	for i, pid := range Players() {
		x, y := h1x, h1y
		if pid == P2 {
			x, y = h2x, h2y
		}
		home := place(i, x, y)
		home.BaseRU = HomeRU
		home.IsHome = true
		home.Owner = pid
		home.Stationed = HomeRU
		g.PlayerState[pid] = &Player{
			ID:      pid,
			Home:    home.ID,
			Visited: map[StarID]bool{home.ID: true},
		}
	}

	// Remaining stars land on any unoccupied cell; each starts as an NPC
	// garrison equal to its RU.
	for i := 2; i < numStars; i++ {
		x, y := rng.UniformInt(GridWidth), rng.UniformInt(GridHeight)
		for occupied[[2]int{x, y}] {
			x, y = rng.UniformInt(GridWidth), rng.UniformInt(GridHeight)
		}
		s := place(i, x, y)
		s.BaseRU = drawRU(rng)
		s.Owner = NPC
		s.Stationed = s.BaseRU
	}

	return g
}

// drawRU draws a resource value 1..5 from the weighted distribution.
func drawRU(rng *Rand) int {
	total := 0
	for _, w := range ruWeights {
		total += w
	}
	roll := rng.UniformInt(total)
	for i, w := range ruWeights {
		if roll < w {
			return i + 1
		}
		roll -= w
	}
	return 1
}
