package vtcore

import "testing"

func TestBlankCell(t *testing.T) {
	c := BlankCell(Indexed(4))
	if c.Codepoint != ' ' {
		t.Errorf("expected space, got %q", c.Codepoint)
	}
	if c.Bg != Indexed(4) {
		t.Errorf("expected bg index 4, got %+v", c.Bg)
	}
	if c.Width != 1 {
		t.Errorf("expected width 1, got %d", c.Width)
	}
}

func TestCellReset(t *testing.T) {
	c := Cell{Codepoint: 'A', Attrs: AttrBold, Width: 1}
	c.Reset()
	if c.Codepoint != ' ' {
		t.Errorf("expected space after reset, got %q", c.Codepoint)
	}
	if c.HasAttr(AttrBold) {
		t.Error("expected no attrs after reset")
	}
	if c.Fg != Default || c.Bg != Default {
		t.Error("expected default colors after reset")
	}
}

func TestCellAttrs(t *testing.T) {
	var c Cell

	c.SetAttr(AttrBold)
	if !c.HasAttr(AttrBold) {
		t.Error("expected bold attr")
	}

	c.SetAttr(AttrItalic)
	if !c.HasAttr(AttrBold) || !c.HasAttr(AttrItalic) {
		t.Error("expected both attrs")
	}

	c.ClearAttr(AttrBold)
	if c.HasAttr(AttrBold) {
		t.Error("expected bold attr cleared")
	}
	if !c.HasAttr(AttrItalic) {
		t.Error("expected italic attr to remain")
	}
}

func TestCellWideAndSpacer(t *testing.T) {
	wide := Cell{Codepoint: '中', Width: 2}
	if !wide.IsWide() {
		t.Error("expected wide cell")
	}
	if wide.IsSpacer() {
		t.Error("wide cell is not a spacer")
	}

	spacer := Cell{Width: 0}
	if !spacer.IsSpacer() {
		t.Error("expected spacer cell")
	}
	if spacer.IsWide() {
		t.Error("spacer is not wide")
	}
}

func TestCellIsBlank(t *testing.T) {
	blank := BlankCell(Default)
	if !blank.IsBlank() {
		t.Error("expected blank cell")
	}
	nonBlank := Cell{Codepoint: 'x', Width: 1}
	if nonBlank.IsBlank() {
		t.Error("expected non-blank cell")
	}
	zero := Cell{Width: 1}
	if !zero.IsBlank() {
		t.Error("zero-value codepoint with width 1 should count as blank")
	}
}
