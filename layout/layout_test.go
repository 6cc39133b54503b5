package layout

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BeatGlow/compose"
	"github.com/BeatGlow/compose/codec"
	"github.com/BeatGlow/compose/pixel"
)

var (
	testBlack = color.NRGBA{A: 0xff}
	testRed   = color.NRGBA{R: 0xff, A: 0xff}
	testBlue  = color.NRGBA{B: 0xff, A: 0xff}
)

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(`
width: 200
height: 100
fonts:
  bold: fonts/bold.ttf
mask:
  circle: 50
layers:
  - box: {width: 5, height: 145}
    color: "#c428c6"
    x: 400
    y: -3
  - text: DEC
    font: bold
    size: 42
    x: center
    y: Center
  - group:
      - circle: 3
      - image: a.png
        resize: 20
        x: center
`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Width != 200 || doc.Height != 100 {
		t.Errorf("expected 200x100, got %dx%d", doc.Width, doc.Height)
	}
	if v := doc.Fonts["bold"]; v != "fonts/bold.ttf" {
		t.Errorf("expected font path, got %q", v)
	}
	if doc.Mask == nil || doc.Mask.Circle != 50 {
		t.Errorf("expected a circle mask, got %+v", doc.Mask)
	}
	if v := len(doc.Layers); v != 3 {
		t.Fatalf("expected 3 layers, got %d", v)
	}

	box := doc.Layers[0]
	if box.X.Position != compose.Coord(400) || box.Y.Position != compose.Coord(-3) {
		t.Errorf("expected box at (400,-3), got (%s,%s)", box.X, box.Y)
	}
	if want := (color.NRGBA{0xc4, 0x28, 0xc6, 0xff}); !box.Color.Valid || box.Color.NRGBA != want {
		t.Errorf("expected color %v, got %+v", want, box.Color)
	}

	label := doc.Layers[1]
	if !label.X.IsCenter() || !label.Y.IsCenter() {
		t.Errorf("expected text centered on both axes, got (%s,%s)", label.X, label.Y)
	}

	group := doc.Layers[2]
	if v := len(group.Group); v != 2 {
		t.Fatalf("expected 2 group members, got %d", v)
	}
	if group.X.Position != compose.Coord(0) {
		t.Errorf("expected default position 0, got %s", group.X)
	}
	if !group.Group[1].X.IsCenter() || group.Group[1].Resize != 20 {
		t.Errorf("unexpected group member %+v", group.Group[1])
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		want error
		path string
	}{
		{"size", "width: 0\nheight: 10\n", ErrSize, "canvas"},
		{"two kinds", "width: 1\nheight: 1\nlayers:\n  - text: a\n    circle: 2\n", ErrKind, "canvas.layers[0]"},
		{"no kind", "width: 1\nheight: 1\nlayers:\n  - x: 3\n", ErrKind, "canvas.layers[0]"},
		{"nested group", "width: 1\nheight: 1\nlayers:\n  - group:\n      - group:\n          - text: a\n", ErrNest, "canvas.layers[0].group[0]"},
		{"mask", "width: 1\nheight: 1\nmask: {circle: 3, image: m.png}\n", ErrMask, "canvas.mask"},
		{"box", "width: 1\nheight: 1\nlayers:\n  - box: {width: 0, height: 3}\n", ErrShape, "canvas.layers[0]"},
		{"canvas", "width: 1\nheight: 1\nlayers:\n  - canvas: {width: 1, height: -1}\n", ErrSize, "canvas.layers[0].canvas"},
	}
	for _, test := range testCases {
		t.Run(test.name, func(it *testing.T) {
			_, err := Parse([]byte(test.doc))
			if !errors.Is(err, test.want) {
				it.Fatalf("expected %v, got %v", test.want, err)
			}
			if !strings.HasPrefix(err.Error(), test.path+":") {
				it.Errorf("expected the error to name %s, got %q", test.path, err)
			}
		})
	}
}

func TestParseInvalidValues(t *testing.T) {
	for _, doc := range []string{
		"width: 1\nheight: 1\nlayers:\n  - text: a\n    x: middle\n",
		"width: 1\nheight: 1\nlayers:\n  - text: a\n    color: \"#12345\"\n",
		"width: 1\nheight: 1\nunknown: 3\n",
		"width: 1\nheight: 1\nlayers:\n  - text: a\n    outline: true\n",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected an error parsing %q", doc)
		}
	}
}

func TestParseColor(t *testing.T) {
	for s, want := range map[string]color.NRGBA{
		"#000":      {0, 0, 0, 0xff},
		"#fA0":      {0xff, 0xaa, 0x00, 0xff},
		"c428c6":    {0xc4, 0x28, 0xc6, 0xff},
		"#11223344": {0x11, 0x22, 0x33, 0x44},
	} {
		v, err := ParseColor(s)
		if err != nil {
			t.Errorf("%s: %v", s, err)
			continue
		}
		if v.NRGBA != want || !v.Valid {
			t.Errorf("%s: expected %v, got %+v", s, want, v)
		}
	}
	for _, s := range []string{"", "#12", "#gggggg", "#1234567"} {
		if _, err := ParseColor(s); err == nil {
			t.Errorf("%q: expected an error", s)
		}
	}
	if v := (Color{}).Or(testRed); v != testRed {
		t.Errorf("expected the default for an unset color, got %v", v)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()

	photo := pixel.New(40, 20)
	pixel.Fill(photo, testBlue)
	if err := codec.Save(filepath.Join(dir, "photo.png"), photo); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "poster.yaml")
	if err := os.WriteFile(path, []byte(`
width: 100
height: 60
layers:
  - box: {width: 100, height: 60}
    color: "#fff"
  # group is 20x10; the box sits at ((100-20)/2)/2 = 20 horizontally
  - group:
      - box: {width: 20, height: 10}
        color: "#f00"
    x: center
    y: 2
  - image: photo.png
    resize: 20
    x: 70
    y: 40
  - circle: 2
    x: 0
    y: 50
  - text: Hi
    size: 10
    x: center
    y: center
  - canvas:
      width: 11
      height: 11
      mask: {circle: 5}
      layers:
        - box: {width: 11, height: 11}
    x: 85
    y: 0
`), 0o644); err != nil {
		t.Fatal(err)
	}

	layer, err := Render(path)
	if err != nil {
		t.Fatal(err)
	}
	img := layer.Image()
	if v := img.Bounds().Size(); v != image.Pt(100, 60) {
		t.Fatalf("expected 100x60, got %s", v)
	}

	for _, test := range []struct {
		p    image.Point
		want color.NRGBA
	}{
		{image.Pt(0, 0), color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{image.Pt(20, 2), testRed},
		{image.Pt(39, 11), testRed},
		{image.Pt(19, 2), color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{image.Pt(40, 2), color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{image.Pt(70, 40), testBlue},
		{image.Pt(89, 49), testBlue},
		{image.Pt(90, 49), color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{image.Pt(2, 52), testBlack},
		{image.Pt(90, 5), testBlack},
		{image.Pt(85, 0), color.NRGBA{0xff, 0xff, 0xff, 0xff}},
	} {
		if v := img.NRGBAAt(test.p.X, test.p.Y); v != test.want {
			t.Errorf("pixel %s is %v, expected %v", test.p, v, test.want)
		}
	}

	var dark int
	for y := 20; y < 40; y++ {
		for x := 30; x < 70; x++ {
			if v := img.NRGBAAt(x, y); v.R < 0x80 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("expected the centered text to be drawn")
	}
}

func TestRenderShapes(t *testing.T) {
	doc, err := Parse([]byte(`
width: 40
height: 20
layers:
  - box: {width: 10, height: 6}
    outline: true
    color: "#f00"
  - box: {width: 10, height: 8}
    radius: 2
    outline: true
    color: "#f00"
    x: 12
  - circle: 3
    outline: true
    color: "#00f"
    x: 25
  - line: {x: 5, y: -3}
    color: "#00f"
    y: 10
`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := doc.Build()
	if err != nil {
		t.Fatal(err)
	}
	layer, err := c.Rasterize()
	if err != nil {
		t.Fatal(err)
	}
	img := layer.Image()

	for _, test := range []struct {
		name string
		p    image.Point
		want color.NRGBA
	}{
		{"box corner", image.Pt(0, 0), testRed},
		{"box edge", image.Pt(9, 5), testRed},
		{"box inside", image.Pt(5, 3), pixel.Transparent},
		{"rounded corner", image.Pt(12, 0), pixel.Transparent},
		{"rounded edge", image.Pt(17, 0), testRed},
		{"rounded side", image.Pt(12, 4), testRed},
		{"rounded inside", image.Pt(16, 4), pixel.Transparent},
		{"circle top", image.Pt(28, 0), testBlue},
		{"circle left", image.Pt(25, 3), testBlue},
		{"circle inside", image.Pt(28, 3), pixel.Transparent},
		{"line start", image.Pt(0, 13), testBlue},
		{"line end", image.Pt(5, 10), testBlue},
		{"line bounding box", image.Pt(0, 10), pixel.Transparent},
	} {
		if v := img.NRGBAAt(test.p.X, test.p.Y); v != test.want {
			t.Errorf("%s: pixel %s is %v, expected %v", test.name, test.p, v, test.want)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name string
		doc  string
		path string
		want error
	}{
		{"missing image", "width: 10\nheight: 10\nlayers:\n  - image: nope.png\n", "canvas.layers[0]", nil},
		{"unknown font", "width: 10\nheight: 10\nlayers:\n  - group:\n      - text: a\n        font: bold\n", "canvas.layers[0].group[0]", ErrFont},
		{"mask image", "width: 10\nheight: 10\nlayers:\n  - canvas:\n      width: 2\n      height: 2\n      mask: {image: nope.png}\n", "canvas.layers[0].canvas.mask", nil},
	}
	for _, test := range testCases {
		t.Run(test.name, func(it *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(test.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(test.doc), 0o644); err != nil {
				it.Fatal(err)
			}
			_, err := Render(path)
			if err == nil {
				it.Fatal("expected an error")
			}
			if !strings.HasPrefix(err.Error(), test.path+":") {
				it.Errorf("expected the error to name %s, got %q", test.path, err)
			}
			if test.want != nil && !errors.Is(err, test.want) {
				it.Errorf("expected %v, got %v", test.want, err)
			}
		})
	}
}

func TestRenderMissingImageIsDecodeError(t *testing.T) {
	doc, err := Parse([]byte("width: 10\nheight: 10\nlayers:\n  - image: /nonexistent/nope.png\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = doc.Build()
	var decodeErr *compose.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("expected a DecodeError, got %v", err)
	}
}
