package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestChoicesNumberKey(t *testing.T) {
	c := NewChoices("Bạn chọn gì?", []string{"Đi trái", "Đi phải", "Đứng yên"})

	c, _ = c.Update(key("2"))
	if !c.Done() || c.Chosen != 1 {
		t.Fatalf("expected choice 1, got %d", c.Chosen)
	}

	// Further keys are ignored once chosen.
	c, _ = c.Update(key("3"))
	if c.Chosen != 1 {
		t.Errorf("choice changed after done: %d", c.Chosen)
	}
}

func TestChoicesOutOfRangeNumber(t *testing.T) {
	c := NewChoices("", []string{"A", "B"})
	c, _ = c.Update(key("5"))
	if c.Done() {
		t.Error("expected no choice for out-of-range key")
	}
}

func TestChoicesArrowsAndEnter(t *testing.T) {
	c := NewChoices("", []string{"A", "B", "C"})
	c, _ = c.Update(key("down"))
	c, _ = c.Update(key("down"))
	c, _ = c.Update(key("down"))
	c, _ = c.Update(key("enter"))
	if c.Chosen != 2 {
		t.Errorf("expected 2, got %d", c.Chosen)
	}
	if !strings.Contains(c.View(40), "3)  C") {
		t.Error("expected numbered options in view")
	}
}

func TestMenuGridNavigation(t *testing.T) {
	var picked string
	items := make([]MenuItem, 5)
	for i, l := range []string{"a", "b", "c", "d", "e"} {
		items[i] = MenuItem{Label: l, Action: func() tea.Cmd { picked = l; return nil }}
	}
	m := NewMenu(items, 3)

	m, _ = m.Update(key("right"))
	m, _ = m.Update(key("down"))
	if m.Selected != 4 {
		t.Fatalf("expected 4, got %d", m.Selected)
	}
	m, _ = m.Update(key("right"))
	if m.Selected != 4 {
		t.Errorf("right past the last item moved to %d", m.Selected)
	}
	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("left"))
	m.Update(key("enter"))
	if picked != "a" {
		t.Errorf("expected a, got %q", picked)
	}
}

func TestStepProgressPercent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{12, 10, 1},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := NewStepProgress(tt.done, tt.total, 30).Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestTextInputCollapsesWhitespace(t *testing.T) {
	in := NewTextInput("theme", 40)
	for _, r := range "  Biển   cả " {
		in, _ = in.Update(key(string(r)))
	}
	if got := in.Value(); got != "Biển cả" {
		t.Errorf("Value() = %q, want %q", got, "Biển cả")
	}

	in.Reset()
	if in.Value() != "" || !in.Focused() {
		t.Errorf("after Reset: value %q focused %v", in.Value(), in.Focused())
	}
}
