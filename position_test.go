package compose

import "testing"

func TestPositionResolve(t *testing.T) {
	testCases := []struct {
		pos       Position
		available int
		want      int
	}{
		{Coord(0), 100, 0},
		{Coord(-560), 100, -560},
		{Coord(767), -5, 767},
		{Center, 100 - 10, 45},
		{Center, 100 - 11, 44},
		{Center, 0, 0},
		{Center, -5, -2},
		{Center, 10 - 100, -45},
	}
	for _, test := range testCases {
		if v := test.pos.Resolve(test.available); v != test.want {
			t.Errorf("%s.Resolve(%d): expected %d, got %d", test.pos, test.available, test.want, v)
		}
	}
}

func TestPositionString(t *testing.T) {
	if v := Center.String(); v != "center" {
		t.Errorf("expected center, got %q", v)
	}
	if v := Coord(-3).String(); v != "-3" {
		t.Errorf("expected -3, got %q", v)
	}
	if Coord(0).IsCenter() || !Center.IsCenter() {
		t.Error("IsCenter mismatch")
	}
}
