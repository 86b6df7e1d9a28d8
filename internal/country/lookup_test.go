package country

import "testing"

func TestCode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"united states", "United States", "US", true},
		{"surrounding spaces", "  France ", "FR", true},
		{"germany", "Germany", "DE", true},
		{"japan", "Japan", "JP", true},
		{"case insensitive", "united kingdom", "GB", true},
		{"exact table name", "Congo", "CG", true},
		{"full name", "Democratic Republic of the Congo", "CD", true},
		{"unknown", "Atlantis", "", false},
		{"partial name", "Korea", "", false},
		{"missing space", "Unitedstates", "", false},
		{"punctuated alias", "U.S.A.", "", false},
		{"alpha-3 code", "USA", "", false},
		{"alpha-2 code", "US", "", false},
		{"constituent country", "England", "", false},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Code(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("Code(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
