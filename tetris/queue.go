package tetris

// Queue holds the lookahead of upcoming pieces and the held piece.
type Queue struct {
	catalog    *Catalog
	rng        Randomizer
	lookahead  int
	boardWidth int

	next    []*Piece
	held    *Piece
	canHold bool
}

// NewQueue returns a filled queue.
func NewQueue(catalog *Catalog, rng Randomizer, lookahead, boardWidth int) *Queue {
	q := &Queue{
		catalog:    catalog,
		rng:        rng,
		lookahead:  lookahead,
		boardWidth: boardWidth,
		canHold:    true,
	}
	q.Fill()
	return q
}

// Fill tops the lookahead up to its configured length.
func (q *Queue) Fill() {
	for len(q.next) < q.lookahead {
		q.next = append(q.next, SpawnPiece(q.catalog.RandomTemplate(q.rng), q.boardWidth))
	}
}

// Next pops the front of the lookahead and refills it before returning.
func (q *Queue) Next() *Piece {
	q.Fill()
	p := q.next[0]
	q.next[0] = nil
	q.next = q.next[1:]
	q.Fill()
	return p
}

// Peek returns copies of the upcoming pieces, soonest first.
func (q *Queue) Peek() []*Piece {
	out := make([]*Piece, len(q.next))
	for i, p := range q.next {
		out[i] = p.Clone()
	}
	return out
}

// Held returns the held piece or nil.
func (q *Queue) Held() *Piece { return q.held }

func (q *Queue) CanHold() bool { return q.canHold }

// Hold stores a fresh copy of active and returns the previously held piece,
// re-spawned, or nil when nothing was held. ok is false while holding is
// locked, in which case nothing changes.
func (q *Queue) Hold(active *Piece) (previous *Piece, ok bool) {
	if !q.canHold || active == nil {
		return nil, false
	}
	if q.held != nil {
		previous = SpawnPiece(q.held.template, q.boardWidth)
	}
	q.held = SpawnPiece(active.template, q.boardWidth)
	q.canHold = false
	return previous, true
}

// Unlock re-enables holding; called when a piece locks.
func (q *Queue) Unlock() {
	q.canHold = true
}

// Reset drops the held piece and redraws the lookahead.
func (q *Queue) Reset() {
	clear(q.next)
	q.next = q.next[:0]
	q.held = nil
	q.canHold = true
	q.Fill()
}
