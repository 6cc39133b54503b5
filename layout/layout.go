// Package layout describes a composition in YAML and builds it into a [compose.Canvas].
//
// A document sets the canvas size, optional fonts and mask, and a list of layers:
//
//	width: 2000
//	height: 2000
//	fonts:
//	  bold: fonts/GothamBold.ttf
//	layers:
//	  - image: imgs/bg.png
//	  - text: WEB SECURITY
//	    font: bold
//	    size: 172
//	    color: "#c428c6"
//	    x: center
//	    y: 1277
//	  - line: {x: 1800, y: 0}
//	    color: "#c428c6"
//	    x: 100
//	    y: 1700
//	  - group:
//	      - text: DEC
//	      - text: "16"
//	        x: center
//	        y: 55
//	    x: 200
//	    y: 1755
//	  - canvas:
//	      width: 1150
//	      height: 1150
//	      mask: {circle: 575}
//	      layers:
//	        - image: imgs/avatar.jpg
//	          resize: 2000
//	          x: -560
//	          y: -40
//	    x: 1091
//	    y: 276
//
// Paths are relative to the directory of the document.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Errors
var (
	ErrSize  = errors.New("layout: width and height must be positive")
	ErrKind  = errors.New("layout: layer must set exactly one of image, text, box, circle, line, group or canvas")
	ErrNest  = errors.New("layout: groups can't contain groups")
	ErrMask  = errors.New("layout: mask must set exactly one of circle or image")
	ErrFont  = errors.New("layout: unknown font")
	ErrShape = errors.New("layout: shape sizes must be positive")
)

// DefaultFont is the font name that always resolves to Go Regular.
const DefaultFont = "default"

// Document is a canvas description.
type Document struct {
	Width  int               `yaml:"width"`
	Height int               `yaml:"height"`
	Fonts  map[string]string `yaml:"fonts,omitempty"`
	Mask   *Mask             `yaml:"mask,omitempty"`
	Layers []Node            `yaml:"layers"`

	// Dir resolves relative paths.
	Dir string `yaml:"-"`
}

// Mask cuts out the flattened canvas.
type Mask struct {
	// Circle is the radius of a disc centered on the canvas.
	Circle int `yaml:"circle,omitempty"`

	// Image is the path of a mask image; only its alpha channel is used.
	Image string `yaml:"image,omitempty"`
}

// Size of a box.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Vector is the offset from the start of a line to its end.
type Vector struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Node is one layer, group or nested canvas. Exactly one of Image, Text, Box, Circle, Line,
// Group or Canvas must be set.
type Node struct {
	X Position `yaml:"x,omitempty"`
	Y Position `yaml:"y,omitempty"`

	// Image path, optionally resized to Resize pixels wide.
	Image  string `yaml:"image,omitempty"`
	Resize int    `yaml:"resize,omitempty"`

	// Text rendered with Font at Size points.
	Text string  `yaml:"text,omitempty"`
	Font string  `yaml:"font,omitempty"`
	Size float64 `yaml:"size,omitempty"`

	// Box is a filled rectangle with optionally rounded corners.
	Box    *Size `yaml:"box,omitempty"`
	Radius int   `yaml:"radius,omitempty"`

	// Circle is the radius of a filled disc.
	Circle int `yaml:"circle,omitempty"`

	// Outline draws only the edge of a box or circle.
	Outline bool `yaml:"outline,omitempty"`

	// Line is drawn one pixel wide. The node is placed by the top-left corner of the
	// line's bounding box.
	Line *Vector `yaml:"line,omitempty"`

	// Color of text and shapes, black if unset.
	Color Color `yaml:"color,omitempty"`

	// Group places its nodes as one unit.
	Group []Node `yaml:"group,omitempty"`

	// Canvas is rasterized on its own and placed as a single layer.
	Canvas *Document `yaml:"canvas,omitempty"`
}

func (n *Node) kind() (string, error) {
	var kinds []string
	if n.Image != "" {
		kinds = append(kinds, "image")
	}
	if n.Text != "" {
		kinds = append(kinds, "text")
	}
	if n.Box != nil {
		kinds = append(kinds, "box")
	}
	if n.Circle != 0 {
		kinds = append(kinds, "circle")
	}
	if n.Line != nil {
		kinds = append(kinds, "line")
	}
	if n.Group != nil {
		kinds = append(kinds, "group")
	}
	if n.Canvas != nil {
		kinds = append(kinds, "canvas")
	}
	if len(kinds) != 1 {
		return "", fmt.Errorf("%w, got %v", ErrKind, kinds)
	}
	return kinds[0], nil
}

// Parse a YAML document. Relative paths resolve against the working directory.
func Parse(data []byte) (*Document, error) {
	doc := new(Document)
	if err := yaml.UnmarshalStrict(data, doc); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if err := doc.validate("canvas", false); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load and parse the YAML document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Dir = filepath.Dir(path)
	return doc, nil
}

func (doc *Document) validate(path string, nested bool) error {
	if doc.Width <= 0 || doc.Height <= 0 {
		return fmt.Errorf("%s: %w, got %dx%d", path, ErrSize, doc.Width, doc.Height)
	}
	if nested && len(doc.Fonts) > 0 {
		return fmt.Errorf("%s: fonts can only be declared at the top level", path)
	}
	if m := doc.Mask; m != nil {
		if (m.Circle > 0) == (m.Image != "") || m.Circle < 0 {
			return fmt.Errorf("%s.mask: %w", path, ErrMask)
		}
	}
	for i := range doc.Layers {
		if err := doc.Layers[i].validate(fmt.Sprintf("%s.layers[%d]", path, i), false); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) validate(path string, grouped bool) error {
	kind, err := n.kind()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if n.Outline && kind != "box" && kind != "circle" {
		return fmt.Errorf("%s: only boxes and circles can be outlined", path)
	}
	switch kind {
	case "image":
		if n.Resize < 0 {
			return fmt.Errorf("%s: resize must not be negative", path)
		}
	case "text":
		if n.Size < 0 {
			return fmt.Errorf("%s: size must not be negative", path)
		}
	case "box":
		if n.Box.Width <= 0 || n.Box.Height <= 0 || n.Radius < 0 {
			return fmt.Errorf("%s: %w", path, ErrShape)
		}
	case "circle":
		if n.Circle < 0 {
			return fmt.Errorf("%s: %w", path, ErrShape)
		}
	case "group":
		if grouped {
			return fmt.Errorf("%s: %w", path, ErrNest)
		}
		for i := range n.Group {
			if err := n.Group[i].validate(fmt.Sprintf("%s.group[%d]", path, i), true); err != nil {
				return err
			}
		}
	case "canvas":
		return n.Canvas.validate(path+".canvas", true)
	}
	return nil
}
