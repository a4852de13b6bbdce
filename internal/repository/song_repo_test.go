package repository

import "testing"

func TestLikeEscaperNeutralizesMetacharacters(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain prefix untouched", "Yellow", "Yellow"},
		{"percent escaped", "100% Pure", `100\% Pure`},
		{"underscore escaped", "under_score", `under\_score`},
		{"backslash escaped first", `back\slash`, `back\\slash`},
		{"all metacharacters", `\%_`, `\\\%\_`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := likeEscaper.Replace(tt.input); got != tt.expect {
				t.Errorf("Replace(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
