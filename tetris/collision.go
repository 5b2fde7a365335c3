package tetris

import "fmt"

// Offset is a translation tried when a rotation collides in place.
type Offset struct {
	DX, DY int
}

// KickTable supplies the ordered offsets to probe when rotating a piece of
// kind from rotation state from to state to fails in place.
type KickTable interface {
	Kicks(kind Kind, from, to int) []Offset
}

// FixedKicks applies the same ordered offsets to every piece and rotation.
type FixedKicks []Offset

func (f FixedKicks) Kicks(Kind, int, int) []Offset { return f }

// DefaultKicks probes right, left, up, two right, two left.
var DefaultKicks = FixedKicks{{1, 0}, {-1, 0}, {0, -1}, {2, 0}, {-2, 0}}

// SRSKicks holds the Super Rotation System clockwise kick data, with rows
// growing downward. The in-place test is implied and omitted.
type SRSKicks struct{}

var srsJLSTZ = [4][]Offset{
	{{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},  // 0->R
	{{1, 0}, {1, 1}, {0, -2}, {1, -2}},    // R->2
	{{1, 0}, {1, -1}, {0, 2}, {1, 2}},     // 2->L
	{{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // L->0
}

var srsI = [4][]Offset{
	{{-2, 0}, {1, 0}, {-2, 1}, {1, -2}}, // 0->R
	{{-1, 0}, {2, 0}, {-1, -2}, {2, 1}}, // R->2
	{{2, 0}, {-1, 0}, {2, -1}, {-1, 2}}, // 2->L
	{{1, 0}, {-2, 0}, {1, 2}, {-2, -1}}, // L->0
}

func (SRSKicks) Kicks(kind Kind, from, to int) []Offset {
	if kind == O || from < 0 || from > 3 || to != (from+1)%4 {
		return nil
	}
	if kind == I {
		return srsI[from]
	}
	return srsJLSTZ[from]
}

// KickTableByName resolves the config names "fixed" and "srs".
func KickTableByName(name string) (KickTable, error) {
	switch name {
	case "", "fixed":
		return DefaultKicks, nil
	case "srs":
		return SRSKicks{}, nil
	}
	return nil, fmt.Errorf("unknown kick table %q", name)
}

// Collides reports whether p overlaps a wall, the floor or a locked cell.
// Cells above the top row only count against the side walls.
func Collides(p *Piece, b *Board) bool {
	for cell := range p.Cells() {
		if cell.X < 0 || cell.X >= b.width || cell.Y >= b.height {
			return true
		}
		if cell.Y >= 0 && b.cells[cell.Y*b.width+cell.X] != Empty {
			return true
		}
	}
	return false
}

// TryMove translates p by dx, dy if the destination is free.
func TryMove(p *Piece, b *Board, dx, dy int) bool {
	p.Translate(dx, dy)
	if Collides(p, b) {
		p.Translate(-dx, -dy)
		return false
	}
	return true
}

// TryRotate advances p to its next rotation, probing kicks in order when the
// rotation collides in place. On failure p is left unchanged.
func TryRotate(p *Piece, b *Board, kicks KickTable) bool {
	from := p.rotation
	origin := p.Position

	p.AdvanceRotation()
	if !Collides(p, b) {
		return true
	}

	if kicks != nil {
		for _, k := range kicks.Kicks(p.Kind(), from, p.rotation) {
			p.Position = Point{X: origin.X + k.DX, Y: origin.Y + k.DY}
			if !Collides(p, b) {
				return true
			}
		}
	}

	p.rotation = from
	p.Position = origin
	return false
}

// DropDistance returns how many rows p can fall before it would collide.
func DropDistance(p *Piece, b *Board) int {
	probe := p.Clone()
	d := 0
	for {
		probe.Translate(0, 1)
		if Collides(probe, b) {
			return d
		}
		d++
	}
}
