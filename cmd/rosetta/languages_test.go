package main

import "testing"

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{"en_XX", "English"},
		{"fr_XX", "French"},
		{"zh_CN", "Chinese"},
		{"ar_AR", "Arabic"},
	}
	for _, tt := range tests {
		if got := displayName(tt.code); got != tt.want {
			t.Fatalf("displayName(%q): got %q want %q", tt.code, got, tt.want)
		}
	}
}
