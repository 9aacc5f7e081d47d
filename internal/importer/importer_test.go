package importer_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/globeview/globeview/internal/importer"
	"github.com/globeview/globeview/internal/model"
	"github.com/globeview/globeview/internal/store"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reports.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportFileMapsColumns(t *testing.T) {
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	long := strings.Repeat("x", 150)
	csv := "title,category,coordinates,time_filter,source_name,source_type,source_link,description\n" +
		"Convoy sighted,Conflict,\"(35.6762,139.6503)\",2h ago,OSINT Watch,osint,https://example.com/a," + long + "\n" +
		",Conflict,,,,,,no title row\n" +
		"Ports reopened,Economy,,,Reuters,media,https://example.com/b,short\n"

	count, err := importer.ImportFile(s, writeCSV(t, csv), logger)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported rows, got %d", count)
	}

	updates, _ := s.ListUpdates(store.Filter{})
	first := updates[0]

	if first.Title != "Convoy sighted" || first.Category != "Conflict" {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.Location.Lat != 35.6762 || first.Location.Lng != 139.6503 {
		t.Fatalf("coordinates not parsed: %+v", first.Location)
	}
	if first.Time != "2h ago" {
		t.Fatalf("expected time_filter to carry over, got %q", first.Time)
	}
	if first.Status != model.StatusActive {
		t.Fatalf("expected imported rows active, got %q", first.Status)
	}
	if len(first.Excerpt) != 103 || !strings.HasSuffix(first.Excerpt, "...") {
		t.Fatalf("expected 100-char excerpt with ellipsis, got %d chars", len(first.Excerpt))
	}

	// Missing coordinates fall back to the origin; missing time_filter
	// falls back to LIVE.
	second := updates[1]
	if second.Location != (model.Location{}) {
		t.Fatalf("expected origin fallback, got %+v", second.Location)
	}
	if second.Time != "LIVE" {
		t.Fatalf("expected LIVE fallback, got %q", second.Time)
	}
}

func TestImportFileExcerptKeepsRunesIntact(t *testing.T) {
	s, _ := store.Open(t.TempDir())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	multibyte := strings.Repeat("é", 150)
	csv := "title,category,coordinates,time_filter,source_name,source_type,source_link,description\n" +
		"Accents everywhere,Politics,,,Wire,media,https://example.com/c," + multibyte + "\n"

	if _, err := importer.ImportFile(s, writeCSV(t, csv), logger); err != nil {
		t.Fatalf("import: %v", err)
	}

	updates, _ := s.ListUpdates(store.Filter{})
	excerpt := updates[0].Excerpt

	if !utf8.ValidString(excerpt) {
		t.Fatalf("excerpt is not valid UTF-8: %q", excerpt)
	}
	if got := len([]rune(excerpt)); got != 103 {
		t.Fatalf("expected 100 runes plus ellipsis, got %d runes", got)
	}
	if !strings.HasSuffix(excerpt, "é...") {
		t.Fatal("expected intact final rune before ellipsis")
	}
}

func TestImportFileMissingFile(t *testing.T) {
	s, _ := store.Open(t.TempDir())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if _, err := importer.ImportFile(s, "does-not-exist.csv", logger); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseCoordinates(t *testing.T) {
	cases := []struct {
		in   string
		want model.Location
	}{
		{"(35.6762,139.6503)", model.Location{Lat: 35.6762, Lng: 139.6503}},
		{"(-1.29, 36.82)", model.Location{Lat: -1.29, Lng: 36.82}},
		{"garbage", model.Location{}},
		{"", model.Location{}},
	}
	for _, c := range cases {
		if got := importer.ParseCoordinates(c.in); got != c.want {
			t.Errorf("ParseCoordinates(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestIconLookups(t *testing.T) {
	if got := importer.IconForSourceType("osint"); got != "globe" {
		t.Errorf("osint icon = %q", got)
	}
	if got := importer.IconForSourceType("unknown"); got != "info-circle" {
		t.Errorf("unknown source icon = %q", got)
	}
	if got := importer.IconForCategory("Conflict"); got != "fire" {
		t.Errorf("conflict icon = %q", got)
	}
	if got := importer.IconForCategory("Mystery"); got != "info-circle" {
		t.Errorf("unknown category icon = %q", got)
	}
}
