package textutil

import "testing"

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{"empty", "", 0},
		{"plain prose", "three simple words", 3},
		{"heading markers stripped", "# Title\n\nBody text here", 4},
		{"emphasis stripped", "some **bold** and _italic_ text", 5},
		{"list markers stripped", "- first item\n- second item\n1. third item", 6},
		{"code fence removed", "before\n```\ncode inside fence\n```\nafter", 2},
		{"whitespace only", "   \n\t  ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.markdown); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.markdown, got, tt.want)
			}
		})
	}
}
