package compose

// DynamicCanvas is an ordered group of layers without a size of its own. Its extent follows
// from its children, and it is placed on a [Canvas] as one unit with [Canvas.AddDynamicCanvas].
type DynamicCanvas struct {
	layers   []positionedLayer
	consumed bool
}

// NewDynamicCanvas returns an empty group.
func NewDynamicCanvas() *DynamicCanvas {
	return new(DynamicCanvas)
}

// AddLayer appends layer to the group, consuming it. Layers paint in the order they're added.
func (g *DynamicCanvas) AddLayer(layer *Layer, x, y Position) error {
	if g.consumed {
		return ErrConsumed
	}
	img, err := layer.take()
	if err != nil {
		return err
	}
	g.layers = append(g.layers, positionedLayer{img: img, x: x, y: y})
	return nil
}

// Len is the number of layers in the group.
func (g *DynamicCanvas) Len() int {
	return len(g.layers)
}

// Width is the furthest right edge of any child, or 0 if every child ends left of the origin.
// A centered child counts as if it sat at 0.
func (g *DynamicCanvas) Width() int {
	return extent(g.layers, func(pl positionedLayer) (Position, int) {
		return pl.x, pl.size().X
	})
}

// Height is the furthest bottom edge of any child, or 0 if every child ends above the origin.
// A centered child counts as if it sat at 0.
func (g *DynamicCanvas) Height() int {
	return extent(g.layers, func(pl positionedLayer) (Position, int) {
		return pl.y, pl.size().Y
	})
}

// Dimensions returns Width and Height.
func (g *DynamicCanvas) Dimensions() (width, height int) {
	return g.Width(), g.Height()
}

func extent(layers []positionedLayer, axis func(positionedLayer) (Position, int)) int {
	var far int
	for _, pl := range layers {
		pos, size := axis(pl)
		edge := size
		if !pos.IsCenter() {
			edge += pos.Resolve(0)
		}
		if edge > far {
			far = edge
		}
	}
	return far
}
