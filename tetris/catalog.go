package tetris

import (
	"errors"
	"fmt"
)

// Template is the immutable description of a piece kind: its canonical shape
// and the ordered list of rotation states, rotation 0 being the canonical one.
type Template struct {
	kind      Kind
	rotations []Shape
}

// NewTemplate builds a template from an explicit rotation list.
func NewTemplate(kind Kind, rotations ...Shape) (*Template, error) {
	if kind == Empty {
		return nil, errors.New("template: kind must not be Empty")
	}
	if len(rotations) == 0 {
		return nil, fmt.Errorf("template %v: no rotations", kind)
	}
	size := rotations[0].Size()
	for i, r := range rotations {
		if r.Size() == 0 {
			return nil, fmt.Errorf("template %v: rotation %d is empty", kind, i)
		}
		if r.Size() != size {
			return nil, fmt.Errorf("template %v: rotation %d is %dx%d, want %dx%d", kind, i, r.Size(), r.Size(), size, size)
		}
	}
	return &Template{kind: kind, rotations: rotations}, nil
}

// rotatingTemplate precomputes the four clockwise states of a canonical grid.
func rotatingTemplate(kind Kind, grid [][]int) *Template {
	shape := MustShape(grid)
	rotations := []Shape{shape}
	for i := 1; i < 4; i++ {
		shape = shape.rotateClockwise()
		rotations = append(rotations, shape)
	}
	return &Template{kind: kind, rotations: rotations}
}

func (t *Template) Kind() Kind { return t.kind }

// Shape returns the canonical (spawn) shape.
func (t *Template) Shape() Shape { return t.rotations[0] }

// Size returns the bounding box edge shared by every rotation.
func (t *Template) Size() int { return t.rotations[0].Size() }

// Rotations returns the number of distinct rotation states.
func (t *Template) Rotations() int { return len(t.rotations) }

// Rotation returns rotation state i, wrapping modulo the rotation count.
func (t *Template) Rotation(i int) Shape {
	n := len(t.rotations)
	return t.rotations[((i%n)+n)%n]
}

// Catalog is an immutable set of templates, one per kind.
type Catalog struct {
	templates []*Template
	kinds     []Kind
	maxSize   int
}

// NewCatalog validates and assembles a catalog.
func NewCatalog(templates ...*Template) (*Catalog, error) {
	if len(templates) == 0 {
		return nil, errors.New("catalog: no templates")
	}
	c := &Catalog{}
	seen := make(map[Kind]bool, len(templates))
	for _, t := range templates {
		if t == nil {
			return nil, errors.New("catalog: nil template")
		}
		if seen[t.kind] {
			return nil, fmt.Errorf("catalog: duplicate template for %v", t.kind)
		}
		seen[t.kind] = true
		c.templates = append(c.templates, t)
		c.kinds = append(c.kinds, t.kind)
		c.maxSize = max(c.maxSize, t.Size())
	}
	return c, nil
}

var standardCatalog = func() *Catalog {
	o, _ := NewTemplate(O, MustShape([][]int{
		{1, 1},
		{1, 1},
	}))
	c, err := NewCatalog(
		rotatingTemplate(I, [][]int{
			{0, 0, 0, 0},
			{1, 1, 1, 1},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}),
		o,
		rotatingTemplate(T, [][]int{
			{0, 1, 0},
			{1, 1, 1},
			{0, 0, 0},
		}),
		rotatingTemplate(S, [][]int{
			{0, 1, 1},
			{1, 1, 0},
			{0, 0, 0},
		}),
		rotatingTemplate(Z, [][]int{
			{1, 1, 0},
			{0, 1, 1},
			{0, 0, 0},
		}),
		rotatingTemplate(J, [][]int{
			{1, 0, 0},
			{1, 1, 1},
			{0, 0, 0},
		}),
		rotatingTemplate(L, [][]int{
			{0, 0, 1},
			{1, 1, 1},
			{0, 0, 0},
		}),
	)
	if err != nil {
		panic(err)
	}
	return c
}()

// StandardCatalog returns the seven tetrominoes in SRS orientation.
func StandardCatalog() *Catalog {
	return standardCatalog
}

// TemplateFor returns the template of kind, or nil if the catalog lacks it.
func (c *Catalog) TemplateFor(kind Kind) *Template {
	for _, t := range c.templates {
		if t.kind == kind {
			return t
		}
	}
	return nil
}

// RandomTemplate draws a template using r.
func (c *Catalog) RandomTemplate(r Randomizer) *Template {
	return c.TemplateFor(r.Draw(c.kinds))
}

// Kinds returns the catalog kinds in declaration order.
func (c *Catalog) Kinds() []Kind {
	return append([]Kind(nil), c.kinds...)
}

// MaxSize returns the largest bounding box among the templates.
func (c *Catalog) MaxSize() int {
	return c.maxSize
}
