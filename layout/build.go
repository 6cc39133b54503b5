package layout

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"github.com/sirupsen/logrus"

	"github.com/BeatGlow/compose"
	"github.com/BeatGlow/compose/codec"
	"github.com/BeatGlow/compose/draw"
	"github.com/BeatGlow/compose/pixel"
	"github.com/BeatGlow/compose/text"
)

// DefaultTextSize is the size in points of text nodes that don't set one.
const DefaultTextSize = 12

// Build the document into a canvas, ready to be rasterized. Fonts are loaded on first use.
func (doc *Document) Build() (*compose.Canvas, error) {
	b := &builder{
		dir:   doc.Dir,
		paths: doc.Fonts,
		fonts: make(map[string]*truetype.Font),
		log:   compose.Logger(),
	}
	return b.canvas(doc, "canvas")
}

// Render loads, builds and rasterizes the document at path.
func Render(path string) (*compose.Layer, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	c, err := doc.Build()
	if err != nil {
		return nil, err
	}
	return c.Rasterize()
}

type builder struct {
	dir   string
	paths map[string]string
	fonts map[string]*truetype.Font
	log   logrus.FieldLogger
}

func (b *builder) path(name string) string {
	if b.dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(b.dir, name)
}

func (b *builder) font(name string) (*truetype.Font, error) {
	if name == "" {
		name = DefaultFont
	}
	if f, ok := b.fonts[name]; ok {
		return f, nil
	}

	var (
		f   *truetype.Font
		err error
	)
	if path, ok := b.paths[name]; ok {
		f, err = text.LoadFont(b.path(path))
	} else if name == DefaultFont {
		f, err = text.DefaultFont()
	} else {
		return nil, fmt.Errorf("%w %q", ErrFont, name)
	}
	if err != nil {
		return nil, err
	}

	b.log.WithField("font", name).Debug("loaded font")
	b.fonts[name] = f
	return f, nil
}

func (b *builder) canvas(doc *Document, path string) (*compose.Canvas, error) {
	c, err := compose.NewCanvas(doc.Width, doc.Height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i := range doc.Layers {
		var (
			n = &doc.Layers[i]
			p = fmt.Sprintf("%s.layers[%d]", path, i)
		)
		if n.Group != nil {
			g, err := b.group(n, p)
			if err != nil {
				return nil, err
			}
			if err = c.AddDynamicCanvas(g, n.X.Position, n.Y.Position); err != nil {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
			continue
		}

		l, err := b.layer(n, p)
		if err != nil {
			return nil, err
		}
		if err = c.AddLayer(l, n.X.Position, n.Y.Position); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if doc.Mask != nil {
		m, err := b.mask(doc.Mask, doc.Width, doc.Height)
		if err != nil {
			return nil, fmt.Errorf("%s.mask: %w", path, err)
		}
		if err = c.SetMask(m); err != nil {
			return nil, fmt.Errorf("%s.mask: %w", path, err)
		}
	}
	return c, nil
}

func (b *builder) group(n *Node, path string) (*compose.DynamicCanvas, error) {
	g := compose.NewDynamicCanvas()
	for i := range n.Group {
		var (
			child = &n.Group[i]
			p     = fmt.Sprintf("%s.group[%d]", path, i)
		)
		if child.Group != nil {
			return nil, fmt.Errorf("%s: %w", p, ErrNest)
		}
		l, err := b.layer(child, p)
		if err != nil {
			return nil, err
		}
		if err = g.AddLayer(l, child.X.Position, child.Y.Position); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	w, h := g.Dimensions()
	b.log.WithFields(logrus.Fields{
		"node":   path,
		"layers": g.Len(),
		"size":   image.Pt(w, h),
	}).Debug("built group")
	return g, nil
}

func (b *builder) layer(n *Node, path string) (*compose.Layer, error) {
	kind, err := n.kind()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var l *compose.Layer
	switch kind {
	case "image":
		if l, err = compose.Open(b.path(n.Image)); err != nil {
			break
		}
		if n.Resize > 0 {
			err = l.Resize(n.Resize)
		}

	case "text":
		var f *truetype.Font
		if f, err = b.font(n.Font); err != nil {
			break
		}
		size := n.Size
		if size == 0 {
			size = DefaultTextSize
		}
		var img *image.NRGBA
		img, err = text.Render(n.Text, text.Style{
			Font:  f,
			Size:  size,
			Color: n.Color.Or(color.Black),
		})
		l = compose.FromBuffer(img)

	case "box":
		if n.Box.Width <= 0 || n.Box.Height <= 0 {
			err = ErrShape
			break
		}
		var (
			img = pixel.New(n.Box.Width, n.Box.Height)
			c   = n.Color.Or(color.Black)
		)
		switch {
		case n.Outline:
			draw.RoundedRectangle(img, img.Bounds(), n.Radius, c)
		case n.Radius > 0:
			draw.RoundedBox(img, img.Bounds(), n.Radius, c)
		default:
			draw.Box(img, img.Bounds(), c)
		}
		l = compose.FromBuffer(img)

	case "circle":
		if n.Circle < 0 {
			err = ErrShape
			break
		}
		var (
			img    = pixel.New(2*n.Circle+1, 2*n.Circle+1)
			center = image.Pt(n.Circle, n.Circle)
		)
		if n.Outline {
			draw.Circle(img, center, n.Circle, n.Color.Or(color.Black))
		} else {
			draw.FilledCircle(img, center, n.Circle, n.Color.Or(color.Black))
		}
		l = compose.FromBuffer(img)

	case "line":
		var (
			v     = n.Line
			start = image.Pt(max(-v.X, 0), max(-v.Y, 0))
			img   = pixel.New(abs(v.X)+1, abs(v.Y)+1)
		)
		draw.Line(img, start, start.Add(image.Pt(v.X, v.Y)), n.Color.Or(color.Black))
		l = compose.FromBuffer(img)

	case "canvas":
		var c *compose.Canvas
		if c, err = b.canvas(n.Canvas, path+".canvas"); err != nil {
			return nil, err
		}
		l, err = c.Rasterize()

	case "group":
		err = ErrNest
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	b.log.WithFields(logrus.Fields{
		"node": path,
		"kind": kind,
		"size": l.Bounds().Size(),
	}).Debug("built layer")
	return l, nil
}

func (b *builder) mask(m *Mask, width, height int) (*image.NRGBA, error) {
	if m.Image != "" {
		return codec.Open(b.path(m.Image))
	}
	if m.Circle <= 0 {
		return nil, ErrMask
	}
	img := pixel.New(width, height)
	draw.FilledCircle(img, image.Pt(width/2, height/2), m.Circle, color.Black)
	return img, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
