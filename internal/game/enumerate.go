package game

import "iter"

// EnumerateActions lazily yields every legal action for the current
// player: for each of the player's units, row-major, every coordinate in
// its 3x3 neighborhood (including itself, for SelfDestruct) is tried
// through ActionFromCoords and yielded if legal. Pass is never enumerated
// here; it is available to callers as an explicit fallback when no other
// action is wanted.
func (s *State) EnumerateActions() iter.Seq[Action] {
	return func(yield func(Action) bool) {
		for from := range s.Board.PlayerCoords(s.Player) {
			for to := range from.RectAround(1).RectIter() {
				if !s.Board.InBounds(to) {
					continue
				}
				a, err := s.ActionFromCoords(from, to)
				if err != nil {
					continue
				}
				if !yield(a) {
					return
				}
			}
		}
	}
}
