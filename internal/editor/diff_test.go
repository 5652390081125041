package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffLines(t *testing.T) {
	tests := []struct {
		name   string
		before []string
		after  []string
		want   LineDelta
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, LineDelta{}},
		{"new file", []string{""}, []string{"int main() {", "}"}, LineDelta{Added: 2, Removed: 1}},
		{"append line", []string{"a"}, []string{"a", "b"}, LineDelta{Added: 1}},
		{"delete line", []string{"a", "b", "c"}, []string{"a", "c"}, LineDelta{Removed: 1}},
		{"change line", []string{"a", "b", "c"}, []string{"a", "B", "c"}, LineDelta{Added: 1, Removed: 1}},
		{"empty before", nil, []string{"x"}, LineDelta{Added: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diffLines(tt.before, tt.after)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want == LineDelta{}, got.IsZero())
		})
	}
}
