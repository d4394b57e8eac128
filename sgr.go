package vtcore

// applySGR processes a full CSI...m parameter list, updating the cursor's
// SGR template. Bare "CSI m" (no params at all) is equivalent to "CSI 0m"
// (reset), per the universal convention every VT-family terminal follows.
func (g *Grid) applySGR(params [][]int) {
	if len(params) == 0 {
		g.resetSGR()
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		code := 0
		if len(p) > 0 {
			code = p[0]
		}
		switch {
		case code == 0:
			g.resetSGR()
		case code == 1:
			g.cursor.TemplateAttrs |= AttrBold
		case code == 2:
			g.cursor.TemplateAttrs |= AttrDim
		case code == 3:
			g.cursor.TemplateAttrs |= AttrItalic
		case code == 4:
			g.setUnderline(p)
		case code == 5 || code == 6:
			g.cursor.TemplateAttrs |= AttrBlink
		case code == 7:
			g.cursor.TemplateAttrs |= AttrReverse
		case code == 8:
			g.cursor.TemplateAttrs |= AttrHidden
		case code == 9:
			g.cursor.TemplateAttrs |= AttrStrikethrough
		case code == 21:
			g.cursor.TemplateAttrs |= AttrUnderline | AttrDoubleUnderline
			g.cursor.UnderlineStyle = UnderlineDouble
		case code == 22:
			g.cursor.TemplateAttrs &^= AttrBold | AttrDim
		case code == 23:
			g.cursor.TemplateAttrs &^= AttrItalic
		case code == 24:
			g.cursor.TemplateAttrs &^= AttrUnderline | AttrDoubleUnderline
			g.cursor.UnderlineStyle = UnderlineNone
		case code == 25:
			g.cursor.TemplateAttrs &^= AttrBlink
		case code == 27:
			g.cursor.TemplateAttrs &^= AttrReverse
		case code == 28:
			g.cursor.TemplateAttrs &^= AttrHidden
		case code == 29:
			g.cursor.TemplateAttrs &^= AttrStrikethrough
		case code >= 30 && code <= 37:
			g.cursor.TemplateFg = Indexed(uint8(code - 30))
			g.cursor.FgBasicIndex = int8(code - 30)
		case code == 38:
			i = g.setExtendedColor(params, i, true)
		case code == 39:
			g.cursor.TemplateFg = Default
			g.cursor.FgBasicIndex = -1
		case code >= 40 && code <= 47:
			g.cursor.TemplateBg = Indexed(uint8(code - 40))
		case code == 48:
			i = g.setExtendedColor(params, i, false)
		case code == 49:
			g.cursor.TemplateBg = Default
		case code == 53:
			g.cursor.TemplateAttrs |= AttrOverline
		case code == 55:
			g.cursor.TemplateAttrs &^= AttrOverline
		case code == 58:
			i = g.setUnderlineColor(params, i)
		case code == 59:
			g.cursor.TemplateUl = Default
		case code >= 90 && code <= 97:
			g.cursor.TemplateFg = Indexed(uint8(code-90) + 8)
			g.cursor.FgBasicIndex = -1
		case code >= 100 && code <= 107:
			g.cursor.TemplateBg = Indexed(uint8(code-100) + 8)
		}
	}
}

func (g *Grid) resetSGR() {
	g.cursor.TemplateFg = Default
	g.cursor.TemplateBg = Default
	g.cursor.TemplateUl = Default
	g.cursor.TemplateAttrs = 0
	g.cursor.UnderlineStyle = UnderlineNone
	g.cursor.FgBasicIndex = -1
}

// setUnderline handles SGR 4 in both its bare form (single underline) and
// its colon sub-parameter form (CSI 4:n m selecting a specific style).
func (g *Grid) setUnderline(p []int) {
	style := UnderlineSingle
	if len(p) > 1 {
		switch p[1] {
		case 0:
			g.cursor.TemplateAttrs &^= AttrUnderline | AttrDoubleUnderline
			g.cursor.UnderlineStyle = UnderlineNone
			return
		case 1:
			style = UnderlineSingle
		case 2:
			style = UnderlineDouble
		case 3:
			style = UnderlineCurly
		case 4:
			style = UnderlineDotted
		case 5:
			style = UnderlineDashed
		}
	}
	g.cursor.TemplateAttrs |= AttrUnderline
	if style == UnderlineDouble {
		g.cursor.TemplateAttrs |= AttrDoubleUnderline
	} else {
		g.cursor.TemplateAttrs &^= AttrDoubleUnderline
	}
	g.cursor.UnderlineStyle = style
}

// setExtendedColor handles SGR 38/48 (foreground/background), which take
// either colon sub-parameters (CSI 38:5:n m or CSI 38:2:r:g:b m, with an
// optional colorspace-ID field between "2" and r in some encoders) or the
// legacy semicolon form where the mode and components are separate
// top-level parameters. It returns the index of the last top-level
// parameter it consumed, so the caller's loop can skip over them.
func (g *Grid) setExtendedColor(params [][]int, i int, foreground bool) int {
	p := params[i]
	if len(p) > 1 {
		// Colon form: everything lives in this one parameter's sub-list.
		color, ok := decodeColorSubParams(p[1:])
		if !ok {
			return i
		}
		if foreground {
			g.cursor.TemplateFg = color
			g.cursor.FgBasicIndex = -1
		} else {
			g.cursor.TemplateBg = color
		}
		return i
	}
	// Legacy semicolon form: mode and components are separate params.
	if i+1 >= len(params) {
		return i
	}
	mode := paramAt(params, i+1)
	switch mode {
	case 5:
		if i+2 >= len(params) {
			return i + 1
		}
		idx := paramAt(params, i+2)
		color := Indexed(uint8(idx))
		if foreground {
			g.cursor.TemplateFg = color
			g.cursor.FgBasicIndex = -1
		} else {
			g.cursor.TemplateBg = color
		}
		return i + 2
	case 2:
		if i+4 >= len(params) {
			return len(params) - 1
		}
		r, gg, b := paramAt(params, i+2), paramAt(params, i+3), paramAt(params, i+4)
		color := RGB(uint8(r), uint8(gg), uint8(b))
		if foreground {
			g.cursor.TemplateFg = color
			g.cursor.FgBasicIndex = -1
		} else {
			g.cursor.TemplateBg = color
		}
		return i + 4
	}
	return i + 1
}

// setUnderlineColor handles SGR 58, the underline-color analogue of
// 38/48 (ITU T.416). Unlike 38/48, real terminals only ever see this in
// colon form, but the legacy semicolon form is accepted too for symmetry.
func (g *Grid) setUnderlineColor(params [][]int, i int) int {
	p := params[i]
	if len(p) > 1 {
		color, ok := decodeColorSubParams(p[1:])
		if ok {
			g.cursor.TemplateUl = color
		}
		return i
	}
	if i+1 >= len(params) {
		return i
	}
	mode := paramAt(params, i+1)
	switch mode {
	case 5:
		if i+2 >= len(params) {
			return i + 1
		}
		g.cursor.TemplateUl = Indexed(uint8(paramAt(params, i+2)))
		return i + 2
	case 2:
		if i+4 >= len(params) {
			return len(params) - 1
		}
		r, gg, b := paramAt(params, i+2), paramAt(params, i+3), paramAt(params, i+4)
		g.cursor.TemplateUl = RGB(uint8(r), uint8(gg), uint8(b))
		return i + 4
	}
	return i + 1
}

// decodeColorSubParams decodes the sub-parameter tail of a colon-form
// 38/48/58 sequence: either [5, n] (indexed) or [2, r, g, b] (truecolor),
// tolerating an optional colorspace-ID field some encoders insert between
// "2" and r (making it [2, cs, r, g, b]).
func decodeColorSubParams(sub []int) (Color, bool) {
	if len(sub) == 0 {
		return Color{}, false
	}
	switch sub[0] {
	case 5:
		if len(sub) < 2 {
			return Color{}, false
		}
		return Indexed(uint8(sub[1])), true
	case 2:
		switch len(sub) {
		case 4:
			return RGB(uint8(sub[1]), uint8(sub[2]), uint8(sub[3])), true
		case 5:
			return RGB(uint8(sub[2]), uint8(sub[3]), uint8(sub[4])), true
		}
	}
	return Color{}, false
}
