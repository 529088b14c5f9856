package conquest

// checkVictory decides the game outcome from home-star ownership.
// Holding the opponent's home wins; both homes falling in the same turn
// is a mutual-conquest draw.
func checkVictory(g *Game) Winner {
	p1HomeLost := g.Stars[g.PlayerState[P1].Home].Owner == P2
	p2HomeLost := g.Stars[g.PlayerState[P2].Home].Owner == P1

	switch {
	case p1HomeLost && p2HomeLost:
		return WinnerDraw
	case p1HomeLost:
		return WinnerP2
	case p2HomeLost:
		return WinnerP1
	}
	return NoWinner
}
