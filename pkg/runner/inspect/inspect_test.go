package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/gridsheet/pkg/commands/options"
	"tableflip.dev/gridsheet/pkg/config"
	"tableflip.dev/gridsheet/pkg/sheet"
)

func fixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.tsv")
	text := "name\tage\r\nada\t36\r\nalan\t\r\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestReport(t *testing.T) {
	cfg := config.Default()
	i := &Inspect{Path: fixture(t), Sheet: sheet.Options{FirstRowIsHeader: true, Width: 10}, Config: cfg}
	r, err := i.Report()
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if r.Name != "people.tsv" || r.Rows != 2 || len(r.Columns) != 2 {
		t.Fatalf("report = %+v", r)
	}
	age := r.Columns[1]
	if age.Title != "age" || age.Name != "B" || age.Width != 10 || age.Offset != 10 || age.Filled != 1 {
		t.Fatalf("age column = %+v", age)
	}
	if r.Width != 20+cfg.BlankMargin {
		t.Fatalf("width = %d", r.Width)
	}
}

func TestDoJSON(t *testing.T) {
	var buf bytes.Buffer
	i := &Inspect{
		Path:   fixture(t),
		Config: config.Default(),
		Output: &options.OutputOptions{JSON: true, Out: &buf},
	}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	var r Report
	if err := json.Unmarshal(buf.Bytes(), &r); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if r.Rows != 3 || r.Columns[0].Title != "A" {
		t.Fatalf("report = %+v", r)
	}
}

func TestDoTable(t *testing.T) {
	var buf bytes.Buffer
	i := &Inspect{
		Path:   fixture(t),
		Sheet:  sheet.Options{FirstRowIsHeader: true},
		Config: config.Default(),
		Output: &options.OutputOptions{Out: &buf},
	}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	for _, want := range []string{"people.tsv", "2 rows", "name", "age", "Offset"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestMissingFile(t *testing.T) {
	i := &Inspect{Path: filepath.Join(t.TempDir(), "none.tsv"), Config: config.Default()}
	if err := i.Do(context.Background()); err == nil {
		t.Fatalf("expected an error")
	}
}
