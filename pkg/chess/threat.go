package chess

// checkInfo is the result of scanning every checkable direction from a
// king's square: whether the king is in check, which squares a defending
// move must land on to resolve a single check, which pieces are pinned (and
// to which squares they may still move), and which squares a pawn may not
// vacate via en passant because doing so would expose the king along a rank
// shared with a rook or queen (the classic double-removal discovered check).
type checkInfo struct {
	checkers      []Position
	blockSquares  map[Position]bool
	pinned        map[Position]map[Position]bool
	cantEnPassant map[Position]bool
}

func (ci *checkInfo) inCheck() bool      { return len(ci.checkers) > 0 }
func (ci *checkInfo) doubleCheck() bool  { return len(ci.checkers) > 1 }
func (ci *checkInfo) pinRay(pos Position) (map[Position]bool, bool) {
	r, ok := ci.pinned[pos]
	return r, ok
}

// scanCheck walks every checkable direction from kingPos, classifying rays
// by how many pieces (of either color) lie on them before a same-direction
// enemy attacker, per square.
func scanCheck(b *Board, kingPos Position, side Color) *checkInfo {
	ci := &checkInfo{
		blockSquares:  map[Position]bool{},
		pinned:        map[Position]map[Position]bool{},
		cantEnPassant: map[Position]bool{},
	}

	for _, id := range checkableDirs {
		dir := directionTable[id]
	rays:
		for _, ray := range dir.Rays(b, kingPos, side) {
			var blockers []Position
			for _, sq := range ray {
				piece := b.Get(sq)
				if piece == nil {
					continue
				}
				blockers = append(blockers, sq)
				isMatch := piece.Color != side && piece.Kind.Has(id)

				switch len(blockers) {
				case 1:
					if isMatch {
						ci.checkers = append(ci.checkers, kingPos)
						ci.blockSquares[sq] = true
						for _, blockSq := range ray {
							ci.blockSquares[blockSq] = true
							if blockSq == sq {
								break
							}
						}
						continue rays
					}
					// not an attacker: keep scanning for a pin behind it

				case 2:
					if isMatch {
						ci.pinned[blockers[0]] = rayUpTo(ray, sq)
						continue rays
					}
					// two non-attacking blockers: keep scanning for the
					// discovered-check-via-double-removal en passant case

				default:
					// third occupied square past two non-attacking blockers:
					// only a matching attacker here disables en passant for
					// both of them. Either way the ray is resolved.
					if isMatch && len(blockers) == 3 {
						ci.cantEnPassant[blockers[0]] = true
						ci.cantEnPassant[blockers[1]] = true
					}
					continue rays
				}
			}
		}
	}
	return ci
}

func rayUpTo(ray Ray, stop Position) map[Position]bool {
	set := map[Position]bool{}
	for _, sq := range ray {
		set[sq] = true
		if sq == stop {
			break
		}
	}
	return set
}

// squareAttacked reports whether sq is attacked by a piece of color by,
// treating vacated as empty regardless of what actually occupies it (used
// to re-check king destinations as if the king had already left its origin
// square).
func squareAttacked(b *Board, sq Position, by Color, vacated Position, hasVacated bool) bool {
	for _, id := range checkableDirs {
		dir := directionTable[id]
		for _, ray := range dir.Rays(b, sq, by.Opponent()) {
			for _, cur := range ray {
				if hasVacated && cur == vacated {
					continue
				}
				piece := b.Get(cur)
				if piece == nil {
					continue
				}
				if piece.Color == by && piece.Kind.Has(id) {
					return true
				}
				break
			}
		}
	}
	return false
}
