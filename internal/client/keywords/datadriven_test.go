package keywords

import (
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

type tagged []string

func (t tagged) GetKeywords() []string { return t }

func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			return runCmd(t, d)
		})
	})
}

func runCmd(t *testing.T, d *datadriven.TestData) string {
	t.Helper()
	switch d.Cmd {
	case "extract":
		var batch []tagged
		for _, line := range inputLines(d) {
			batch = append(batch, tagged(parseList(line)))
		}
		return render(Extract(batch))
	case "merge":
		lines := inputLines(d)
		if len(lines) != 2 {
			d.Fatalf(t, "merge expects two input lines, got %d", len(lines))
		}
		return render(Merge(parseList(lines[0]), parseList(lines[1])))
	case "fromquery":
		return render(FromQuery(d.Input))
	case "summary":
		shown := 2
		for _, arg := range d.CmdArgs {
			if arg.Key == "shown" && len(arg.Vals) == 1 {
				n, err := strconv.Atoi(arg.Vals[0])
				if err != nil {
					d.Fatalf(t, "bad shown %q: %v", arg.Vals[0], err)
				}
				shown = n
			}
		}
		out := Summary(parseList(d.Input), shown)
		if out == "" {
			return "(empty)\n"
		}
		return out + "\n"
	default:
		d.Fatalf(t, "unknown command %q", d.Cmd)
		return ""
	}
}

func inputLines(d *datadriven.TestData) []string {
	if d.Input == "" {
		return nil
	}
	return strings.Split(d.Input, "\n")
}

// parseList reads a comma separated line; "<none>" is an empty list.
func parseList(line string) []string {
	if line == "<none>" || line == "" {
		return nil
	}
	return strings.Split(line, ",")
}

func render(keywords []string) string {
	if len(keywords) == 0 {
		return "(empty)\n"
	}
	return strings.Join(keywords, "\n") + "\n"
}
