package conquest

import "fmt"

// manhattan is the travel metric: a fleet crosses one grid cell per turn.
func manhattan(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Distance returns the Manhattan distance between two stars, which equals
// the number of turns a fleet needs to travel between them.
func (g *Game) Distance(a, b StarID) (int, error) {
	sa := g.Stars[a]
	if sa == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownStar, a)
	}
	sb := g.Stars[b]
	if sb == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownStar, b)
	}
	return manhattan(sa.X, sa.Y, sb.X, sb.Y), nil
}
