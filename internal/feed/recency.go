package feed

import (
	"fmt"
	"time"

	"github.com/globeview/globeview/internal/model"
)

// LiveWindow is how long the index-0 record keeps its "LIVE" label
// after ingestion.
const LiveWindow = 20 * time.Second

// IngestStride is the synthetic age gap between consecutive records in
// a freshly stamped batch. Not derived from any real event time.
const IngestStride = 8 * time.Minute

// Label derives the recency label for a record at the given list index.
// It is pure in (now, ts, index); a previously stored label is never
// trusted.
func Label(now, ts time.Time, index int) string {
	elapsed := int(now.Sub(ts).Seconds())
	switch {
	case index == 0 && elapsed < int(LiveWindow.Seconds()):
		return "LIVE"
	case elapsed < 60:
		return fmt.Sprintf("%ds ago", elapsed)
	case elapsed < 3600:
		return fmt.Sprintf("%dm ago", elapsed/60)
	default:
		return fmt.Sprintf("%dh ago", elapsed/3600)
	}
}

// Stamp assigns synthetic recency to a freshly sampled batch: the item
// at position i gets timestamp now - i*IngestStride, so recency
// strictly decreases down the list and index 0 is "LIVE". The input is
// copied, not mutated.
func Stamp(batch []model.IntelligenceUpdate, now time.Time) []model.IntelligenceUpdate {
	out := make([]model.IntelligenceUpdate, len(batch))
	for i, u := range batch {
		age := time.Duration(i) * IngestStride
		u.Timestamp = now.Add(-age)
		switch {
		case i == 0:
			u.Time = "LIVE"
		case age < time.Hour:
			u.Time = fmt.Sprintf("%dm ago", int(age.Minutes()))
		default:
			u.Time = fmt.Sprintf("%dh ago", int(age.Hours()))
		}
		u.Date = ""
		u.CreatedAt = u.Timestamp
		u.UpdatedAt = u.Timestamp
		out[i] = u
	}
	return out
}

// Relabel recomputes the Time label of every record from its timestamp.
// A record with a zero timestamp passes through unchanged; that is a
// defined no-op, not an error. The input is copied, not mutated.
func Relabel(events []model.IntelligenceUpdate, now time.Time) []model.IntelligenceUpdate {
	out := make([]model.IntelligenceUpdate, len(events))
	for i, u := range events {
		if !u.Timestamp.IsZero() {
			u.Time = Label(now, u.Timestamp, i)
		}
		out[i] = u
	}
	return out
}
