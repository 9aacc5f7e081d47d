// Package importer loads intelligence updates from the breaking-report
// CSV files.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/globeview/globeview/internal/model"
	"github.com/globeview/globeview/internal/store"
)

// Files are the fixed-name CSVs the import command reads from the
// working directory.
var Files = []string{
	"35_BREAKING_Intelligence_Reports.csv",
	"Additional_50_BREAKING_Intelligence_Reports.csv",
}

const maxExcerpt = 100

// coordsPattern matches the "(lat,lng)" coordinate column format.
var coordsPattern = regexp.MustCompile(`\(([^,]+),([^)]+)\)`)

// ImportFile reads one CSV file and creates an active update per valid
// row. Rows missing a title or category are skipped with a warning,
// never failing the batch. The number of imported records is returned.
func ImportFile(st *store.Store, path string, logger *slog.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed csv row", "file", path, "line", line, "error", err)
			continue
		}

		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			}
		}

		if row["title"] == "" || row["category"] == "" {
			logger.Warn("skipping csv row without title or category", "file", path, "line", line)
			continue
		}

		update := model.IntelligenceUpdate{
			Title:      row["title"],
			Category:   row["category"],
			Location:   ParseCoordinates(row["coordinates"]),
			Time:       timeFilterOrLive(row["time_filter"]),
			Source:     row["source_name"],
			SourceType: row["source_type"],
			SourceIcon: IconForSourceType(row["source_type"]),
			Excerpt:    excerpt(row["description"]),
			Content:    row["description"],
			SourceURL:  row["source_link"],
			Icon:       IconForCategory(row["category"]),
			Status:     model.StatusActive,
		}

		if _, err := st.CreateUpdate(update); err != nil {
			return imported, fmt.Errorf("import row %d: %w", line, err)
		}
		imported++
	}

	return imported, nil
}

// ParseCoordinates parses the "(lat,lng)" column format, falling back
// to the origin when it cannot.
func ParseCoordinates(s string) model.Location {
	m := coordsPattern.FindStringSubmatch(s)
	if len(m) != 3 {
		return model.Location{}
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(m[2]), 64)
	if err1 != nil || err2 != nil {
		return model.Location{}
	}
	return model.Location{Lat: lat, Lng: lng}
}

func timeFilterOrLive(s string) string {
	if s == "" {
		return "LIVE"
	}
	return s
}

func excerpt(description string) string {
	// Truncate on rune boundaries so a multi-byte character is never
	// split mid-sequence.
	if runes := []rune(description); len(runes) > maxExcerpt {
		description = string(runes[:maxExcerpt])
	}
	return description + "..."
}

// IconForSourceType maps a source type to its display icon.
func IconForSourceType(sourceType string) string {
	switch strings.ToUpper(sourceType) {
	case "VERIFIED":
		return "shield-check"
	case "MEDIA":
		return "newspaper"
	case "ANALYSIS":
		return "chart-bar"
	case "OSINT":
		return "globe"
	default:
		return "info-circle"
	}
}

// IconForCategory maps a category to its display icon.
func IconForCategory(category string) string {
	switch category {
	case "Conflict":
		return "fire"
	case "Economy":
		return "chart-line"
	case "Humanitarian":
		return "heart"
	case "Security":
		return "lock"
	case "Diplomacy":
		return "handshake"
	case "Technology":
		return "microchip"
	case "Environment":
		return "leaf"
	case "Politics":
		return "landmark"
	default:
		return "info-circle"
	}
}
