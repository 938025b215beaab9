package csvline

import (
	"reflect"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"two fields", "x,y", []string{"x", "y"}},
		{"single field", "only", []string{"only"}},
		{"quoted comma", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"trims fields", "  seoi nage ,  shoulder throw  ", []string{"seoi nage", "shoulder throw"}},
		{"empty input", "", []string{""}},
		{"trailing comma", "a,", []string{"a", ""}},
		{"leading comma", ",b", []string{"", "b"}},
		{"doubled quote is two toggles", `a,"say ""hajime""",b`, []string{"a", "say hajime", "b"}},
		{"quote inside field toggles", `o"soto, gari",x`, []string{"osoto, gari", "x"}},
		{"unbalanced quote swallows rest", `a,"b,c,d`, []string{"a", "b,c,d"}},
		{"whitespace inside quotes trimmed", `" rei ",bow`, []string{"rei", "bow"}},
		{"unicode", "柔道,judo", []string{"柔道", "judo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLineNeverEmpty(t *testing.T) {
	for _, line := range []string{"", ",", `"`, `""`, " "} {
		if got := ParseLine(line); len(got) == 0 {
			t.Errorf("ParseLine(%q) returned no fields", line)
		}
	}
}
