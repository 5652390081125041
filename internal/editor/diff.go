package editor

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDelta counts lines added and removed between two snapshots.
type LineDelta struct {
	Added   int
	Removed int
}

// IsZero reports whether the snapshots were identical.
func (d LineDelta) IsZero() bool {
	return d.Added == 0 && d.Removed == 0
}

// diffLines compares two documents line by line.
func diffLines(before, after []string) LineDelta {
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var delta LineDelta
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			delta.Added += n
		case diffmatchpatch.DiffDelete:
			delta.Removed += n
		}
	}
	return delta
}

// joinLines terminates every line with "\n", matching the saved file format.
func joinLines(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
