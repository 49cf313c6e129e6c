package palette

import (
	"image/color"
	"testing"
)

func TestParse(t *testing.T) {
	cases := map[string]color.RGBA{
		"red":       {255, 0, 0, 255},
		" Lime ":    {0, 255, 0, 255},
		"#00ff00":   {0, 255, 0, 255},
		"#11223380": {0x11, 0x22, 0x33, 0x80},
		"steelblue": {70, 130, 180, 255},
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
	for _, bad := range []string{"", "#12", "#zzzzzz", "notacolor"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) expected error", bad)
		}
	}
}

func TestEnsureAddsOnce(t *testing.T) {
	col := color.RGBA{1, 2, 3, 255}
	before := Len()
	idx := Ensure(col, "")
	if idx != before {
		t.Fatalf("index = %d, want %d", idx, before)
	}
	if again := Ensure(col, "other"); again != idx {
		t.Fatalf("second ensure = %d", again)
	}
	if Name(col) != "#010203" {
		t.Fatalf("name = %q", Name(col))
	}
	if At(idx) != col || Index(col) != idx {
		t.Fatal("lookup mismatch")
	}
}

func TestAtClamps(t *testing.T) {
	if At(-5) != At(0) {
		t.Error("negative index not clamped")
	}
	if At(1<<20) != At(Len()-1) {
		t.Error("large index not clamped")
	}
}
