package testdump

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// DiffError holds a colored cmp.Diff of the snapshot and the received value.
type DiffError struct {
	diff string
}

func (d *DiffError) Error() string {
	return d.diff
}

// ANSIDiff returns a *DiffError when x and y differ.
func ANSIDiff(x, y any, opts ...cmp.Option) error {
	diff := cmp.Diff(x, y, opts...)
	if diff == "" {
		return nil
	}

	return &DiffError{diff: ansiDiff(diff)}
}

func ansiDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "-"):
			lines[i] = red(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = green(line)
		}
	}

	header := []string{
		"\n",
		red("  Snapshot(-)"),
		green("  Received(+)"),
		"\n",
	}

	return strings.Join(append(header, lines...), "\n")
}

func color(code int, s string) string {
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", code, s)
}

func red(s string) string {
	return color(31, s)
}

func green(s string) string {
	return color(32, s)
}
