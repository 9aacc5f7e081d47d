package model

import "time"

// Update statuses. Only active records are eligible for the public feed;
// deleted is a soft delete, the record stays in the file.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
	StatusDeleted  = "deleted"
)

// Known update categories. Anything else falls back to default styling
// on the client, so it is not rejected here.
var Categories = []string{
	"conflict", "security", "economy", "diplomacy",
	"humanitarian", "politics", "technology", "environment",
}

// Known source types.
var SourceTypes = []string{"verified", "osint", "analysis", "media"}

// Location is a point on the map in degrees. Ranges are not validated.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IntelligenceUpdate is a single event shown on the live feed and the map.
type IntelligenceUpdate struct {
	ID         int            `json:"id"`
	Title      string         `json:"title"`
	Category   string         `json:"category"`
	Location   Location       `json:"location"`
	Date       string         `json:"date"`
	Time       string         `json:"time"`
	Source     string         `json:"source"`
	SourceType string         `json:"sourceType"`
	SourceIcon string         `json:"sourceIcon"`
	Excerpt    string         `json:"excerpt"`
	Content    string         `json:"content"`
	SourceURL  string         `json:"sourceUrl,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Icon       string         `json:"icon"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	WebhookID  int            `json:"webhookId,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Tags       []Tag          `json:"tags"`
	Status     string         `json:"status"`
}

// Tag is unique by name and created on first use.
type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Webhook authenticates inbound creation of updates via HMAC-SHA256
// over the raw request body.
type Webhook struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Secret      string     `json:"secret"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastTrigger *time.Time `json:"lastTrigger,omitempty"`
}

// AnalysisReport is a long-form article. Reports are seed data and are
// not touched by the sampler or the rotation loop.
type AnalysisReport struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Position     string    `json:"position"`
	Date         string    `json:"date"`
	Category     string    `json:"category"`
	Content      string    `json:"content"`
	Excerpt      string    `json:"excerpt"`
	Slug         string    `json:"slug"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	ReadTime     string    `json:"readTime"`
	CommentsList []Comment `json:"commentsList,omitempty"`
}

// Comment lives in the in-memory thread of one report. IDs are only
// unique within a thread and nothing survives a restart.
type Comment struct {
	ID          int       `json:"id"`
	AuthorName  string    `json:"authorName"`
	AuthorImage string    `json:"authorImage,omitempty"`
	Content     string    `json:"content"`
	Date        time.Time `json:"date"`
	Likes       int       `json:"likes"`
	IsAI        bool      `json:"isAI"`
}

// WebhookPayload is the body accepted by the webhook ingestion endpoint.
type WebhookPayload struct {
	Title      string         `json:"title"`
	Category   string         `json:"category"`
	Location   Location       `json:"location"`
	Date       string         `json:"date"`
	Time       string         `json:"time"`
	Source     string         `json:"source"`
	SourceType string         `json:"sourceType"`
	SourceIcon string         `json:"sourceIcon"`
	Excerpt    string         `json:"excerpt"`
	Content    string         `json:"content"`
	SourceURL  string         `json:"sourceUrl"`
	Icon       string         `json:"icon"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
}
