package vtcore

import "sort"

// runeRange is an inclusive [lo, hi] span of codepoints sharing a width
// classification.
type runeRange struct{ lo, hi rune }

// wideRanges lists the East-Asian-Width-aware spans that are unconditionally
// double-width: Hangul Jamo, the Hangul syllable block, CJK radicals/
// punctuation/ideographs (BMP and the two supplementary planes), Hiragana/
// Katakana, Yi syllables, CJK compatibility ideographs, fullwidth forms, and
// the common emoji blocks. Kept sorted by lo so IsWide can binary search it.
var wideRanges = []runeRange{
	{0x1100, 0x115F}, // Hangul Jamo
	{0x2E80, 0x2FDF}, // CJK Radicals Supplement .. Kangxi Radicals
	{0x2FF0, 0x303E}, // Ideographic Description Characters .. CJK Symbols/Punctuation
	{0x3041, 0x33FF}, // Hiragana .. CJK Compatibility
	{0x3400, 0x4DBF}, // CJK Unified Ideographs Extension A
	{0x4E00, 0x9FFF}, // CJK Unified Ideographs
	{0xA000, 0xA4CF}, // Yi Syllables, Yi Radicals
	{0xA960, 0xA97F}, // Hangul Jamo Extended-A
	{0xAC00, 0xD7A3}, // Hangul Syllables
	{0xF900, 0xFAFF}, // CJK Compatibility Ideographs
	{0xFF01, 0xFF60}, // Fullwidth Forms (punctuation/letters)
	{0xFFE0, 0xFFE6}, // Fullwidth Signs
	{0x1F1E6, 0x1F1FF}, // Regional Indicator Symbols (flag pairs)
	{0x1F300, 0x1F5FF}, // Misc Symbols and Pictographs
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F680, 0x1F6FF}, // Transport and Map Symbols
	{0x1F900, 0x1F9FF}, // Supplemental Symbols and Pictographs
	{0x1FA00, 0x1FAFF}, // Symbols and Pictographs Extended-A
	{0x20000, 0x2FFFD}, // CJK Unified Ideographs Extension B..F (plane 2)
	{0x30000, 0x3FFFD}, // CJK Unified Ideographs Extension G+ (plane 3)
}

// singletons2600, singletons2300, and singletons2B00 are the enumerated
// wide codepoints within the otherwise-narrow Miscellaneous Symbols,
// Miscellaneous Technical, and Misc Symbols and Arrows blocks respectively —
// spans where only specific emoji-rendered glyphs are double-width and the
// rest of the block is not. Sorted ascending for binary search.
var singletons2600 = []rune{
	0x2600, 0x2601, 0x2602, 0x2603, 0x2604, 0x260E, 0x2611, 0x2614, 0x2615,
	0x2618, 0x261D, 0x2620, 0x2622, 0x2623, 0x2626, 0x262A, 0x262E, 0x262F,
	0x2638, 0x2639, 0x263A, 0x2640, 0x2642, 0x2648, 0x2649, 0x264A, 0x264B,
	0x264C, 0x264D, 0x264E, 0x264F, 0x2650, 0x2651, 0x2652, 0x2653, 0x265F,
	0x2660, 0x2663, 0x2665, 0x2666, 0x2668, 0x267B, 0x267E, 0x267F, 0x2692,
	0x2693, 0x2694, 0x2695, 0x2696, 0x2697, 0x2699, 0x269B, 0x269C, 0x26A0,
	0x26A1, 0x26AA, 0x26AB, 0x26B0, 0x26B1, 0x26BD, 0x26BE, 0x26C4, 0x26C5,
	0x26C8, 0x26CE, 0x26CF, 0x26D1, 0x26D3, 0x26D4, 0x26E9, 0x26EA, 0x26F0,
	0x26F1, 0x26F2, 0x26F3, 0x26F4, 0x26F5, 0x26F7, 0x26F8, 0x26F9, 0x26FA,
	0x26FD, 0x2702, 0x2705, 0x2708, 0x2709, 0x270A, 0x270B, 0x270C, 0x270D,
	0x270F, 0x2712, 0x2714, 0x2716, 0x271D, 0x2721, 0x2728, 0x2734,
	0x2744, 0x2747, 0x274C, 0x274E, 0x2753, 0x2754, 0x2755, 0x2757, 0x2763,
	0x2764, 0x2795, 0x2796, 0x2797, 0x27A1, 0x27B0, 0x27BF,
}

var singletons2300 = []rune{
	0x231A, 0x231B, 0x23E9, 0x23EA, 0x23EB, 0x23EC, 0x23ED, 0x23EE, 0x23EF,
	0x23F0, 0x23F1, 0x23F2, 0x23F3, 0x23F8, 0x23F9, 0x23FA,
}

var singletons2B00 = []rune{
	0x2B05, 0x2B06, 0x2B07, 0x2B1B, 0x2B1C, 0x2B50, 0x2B55,
}

// wideSingletons is the handful of isolated wide codepoints outside any of
// the above ranges.
var wideSingletons = []rune{
	0x1F004, 0x1F0CF, 0x1F18E,
}

func inRanges(r rune, ranges []runeRange) bool {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].hi >= r })
	return i < len(ranges) && ranges[i].lo <= r
}

func inSingletons(r rune, set []rune) bool {
	i := sort.Search(len(set), func(i int) bool { return set[i] >= r })
	return i < len(set) && set[i] == r
}

// IsWide reports whether r renders as a double-width (2-column) glyph.
func IsWide(r rune) bool {
	if r < 0x1100 {
		return false
	}
	switch {
	case r >= 0x2600 && r <= 0x27BF:
		return inSingletons(r, singletons2600)
	case r >= 0x2300 && r <= 0x23FF:
		return inSingletons(r, singletons2300)
	case r >= 0x2B00 && r <= 0x2B5F:
		return inSingletons(r, singletons2B00)
	}
	if inRanges(r, wideRanges) {
		return true
	}
	if inSingletons(r, wideSingletons) {
		return true
	}
	if r >= 0x1F191 && r <= 0x1F19A {
		return true
	}
	if r >= 0x1F200 && r <= 0x1F251 {
		return true
	}
	return false
}

// RuneWidth returns the column width of r: 2 for wide glyphs, 1 otherwise.
// Unlike a classic wcwidth, this never returns 0 — combining marks are not
// merged into a preceding cell (an explicit non-goal) and occupy their own
// narrow cell like any other character.
func RuneWidth(r rune) int {
	if IsWide(r) {
		return 2
	}
	return 1
}

// StringWidth returns the sum of RuneWidth over every rune in s.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}
