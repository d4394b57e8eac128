package vtcore

import "testing"

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r        rune
		expected int
	}{
		{'A', 1},
		{'a', 1},
		{'1', 1},
		{' ', 1},
		{'中', 2},
		{'日', 2},
		{'本', 2},
		{'한', 2},
		{'글', 2},
		{'가', 2},
		{'Ａ', 2}, // Fullwidth A
		{0, 1},
	}

	for _, tt := range tests {
		got := RuneWidth(tt.r)
		if got != tt.expected {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.expected)
		}
	}
}

func TestIsWide(t *testing.T) {
	tests := []struct {
		r        rune
		expected bool
	}{
		{'A', false},
		{'a', false},
		{' ', false},
		{'中', true},
		{'日', true},
		{'한', true},
		{'가', true},
		{'Ａ', true}, // Fullwidth A
		{'0', false},
		{0x231A, true},  // watch, singleton in Misc Technical block
		{0x2328, false}, // keyboard symbol in same block, not enumerated wide
		{0x2B1B, true},  // black large square
		{0x2705, true},  // check mark, within the 2600-27BF singleton table
		{0x2708, true},  // airplane
		{0x1F600, true}, // emoticon block
		{0x1F1FA, true}, // regional indicator U
	}

	for _, tt := range tests {
		got := IsWide(tt.r)
		if got != tt.expected {
			t.Errorf("IsWide(%q) = %v, want %v", tt.r, got, tt.expected)
		}
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		s        string
		expected int
	}{
		{"Hello", 5},
		{"中文", 4},
		{"Hello中文", 9},
		{"", 0},
		{"한글", 4},
	}

	for _, tt := range tests {
		got := StringWidth(tt.s)
		if got != tt.expected {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.s, got, tt.expected)
		}
	}
}
