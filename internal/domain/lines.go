package domain

// MaybeWinnerForRow reports the player owning every cell of row. Rows outside
// the board never have a winner.
func (e *Engine) MaybeWinnerForRow(row int) (Player, bool) {
	if row < 0 || row >= e.size {
		return CrossPlayer, false
	}
	return e.lineWinner(index(row, 0, e.size), 1)
}

// MaybeWinnerForColumn reports the player owning every cell of col. Columns
// outside the board never have a winner.
func (e *Engine) MaybeWinnerForColumn(col int) (Player, bool) {
	if col < 0 || col >= e.size {
		return CrossPlayer, false
	}
	return e.lineWinner(index(0, col, e.size), e.size)
}

func (e *Engine) maybeWinnerForDiagonal() (Player, bool) {
	return e.lineWinner(0, e.size+1)
}

func (e *Engine) maybeWinnerForAntiDiagonal() (Player, bool) {
	return e.lineWinner(e.size-1, e.size-1)
}

// maybeWinner scans rows, then columns, then both diagonals and returns the
// first full line found.
func (e *Engine) maybeWinner() (Player, bool) {
	for i := 0; i < e.size; i++ {
		if p, ok := e.MaybeWinnerForRow(i); ok {
			return p, true
		}
	}
	for i := 0; i < e.size; i++ {
		if p, ok := e.MaybeWinnerForColumn(i); ok {
			return p, true
		}
	}
	if p, ok := e.maybeWinnerForDiagonal(); ok {
		return p, true
	}
	return e.maybeWinnerForAntiDiagonal()
}

// lineWinner checks the size cells starting at start and advancing by step.
func (e *Engine) lineWinner(start, step int) (Player, bool) {
	for _, p := range []Player{CirclePlayer, CrossPlayer} {
		mark := p.Mark()
		all := true
		for i := 0; i < e.size; i++ {
			if e.fields[start+i*step] != mark {
				all = false
				break
			}
		}
		if all {
			return p, true
		}
	}
	return CrossPlayer, false
}
