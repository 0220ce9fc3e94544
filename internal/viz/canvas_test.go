package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got := c.Grid[0][0]; got != blank|0x1 {
		t.Errorf("cell 0 = %U, want %U", got, blank|0x1)
	}
	if got := c.Grid[0][1]; got != blank|0x80 {
		t.Errorf("cell 1 = %U, want %U", got, blank|0x80)
	}
	if !c.IsSet(3, 3) || c.IsSet(2, 2) {
		t.Error("IsSet disagrees with Set")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 2)
	c.FillDisc(2, 3, 2, "#ff0000")
	c.Clear()

	for i, row := range c.Grid {
		for j, r := range row {
			if r != blank || c.Tint[i][j] != "" {
				t.Fatalf("cell (%d,%d) not cleared", i, j)
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 2)
	c.DrawLine(0, 0, 19, 0, "")
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 0) {
			t.Fatalf("pixel %d not set", x)
		}
	}
	if c.IsSet(0, 1) {
		t.Error("line leaked into next row")
	}
}

func TestCanvasFillDisc(t *testing.T) {
	c := NewCanvas(10, 5)
	color := lipgloss.Color("#00ff00")
	c.FillDisc(10, 10, 3, color)

	if !c.IsSet(10, 10) || !c.IsSet(13, 10) || !c.IsSet(10, 7) {
		t.Error("disc missing center or rim")
	}
	if c.IsSet(13, 13) {
		t.Error("disc covers the bounding box corner")
	}
	if c.Tint[10/4][10/2] != color {
		t.Errorf("tint = %q, want %q", c.Tint[2][5], color)
	}

	c.Clear()
	c.FillDisc(4, 4, 0, "")
	if !c.IsSet(4, 4) {
		t.Error("zero radius disc should mark its center")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 3)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if l != strings.Repeat(string(rune(blank)), 4) {
			t.Errorf("unexpected line %q", l)
		}
	}

	c.SetColor(0, 0, "#ff0000")
	if !strings.Contains(c.Render(), string(rune(blank|0x1))) {
		t.Error("Render lost the set cell")
	}
}
