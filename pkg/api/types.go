package api

import (
	"strings"
	"time"
)

// Note is a stored note. Body holds the raw markup text.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a Note with timestamps and version set.
func NewNote(title, body string, now time.Time) Note {
	return Note{
		ID:        NewID(),
		Title:     title,
		Body:      body,
		Version:   1,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// Touch updates UpdatedAt (call before persisting an update).
func (n *Note) Touch(now time.Time) { n.UpdatedAt = now.UTC() }

// PrinterSettings is the persisted printer selection.
type PrinterSettings struct {
	DefaultPrinter    string    `json:"default_printer"`
	PaperWidth        int       `json:"paper_width"`
	AvailablePrinters []string  `json:"available_printers"`
	LastSaved         time.Time `json:"last_saved,omitempty"`
}

// DefaultPaperWidth is the character width of 80 mm thermal paper.
const DefaultPaperWidth = 48

// DefaultPrinterSettings is used until settings are first saved.
func DefaultPrinterSettings() PrinterSettings {
	return PrinterSettings{PaperWidth: DefaultPaperWidth, AvailablePrinters: []string{}}
}

type SortField string

const (
	SortLastModified SortField = "lastModified"
	SortTitle        SortField = "title"
	SortSize         SortField = "size"
)

type SortOrder string

const (
	OrderDesc SortOrder = "desc"
	OrderAsc  SortOrder = "asc"
)

// ParseSortField accepts lastModified, title or size (case-insensitive).
func ParseSortField(s string) (SortField, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lastmodified", "modified", "updated":
		return SortLastModified, true
	case "title":
		return SortTitle, true
	case "size":
		return SortSize, true
	default:
		return "", false
	}
}

// ParseSortOrder accepts asc or desc (case-insensitive).
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return OrderDesc, true
	case "asc":
		return OrderAsc, true
	default:
		return "", false
	}
}

// ListQuery filters and orders notes for listing.
type ListQuery struct {
	// Search is a fuzzy term matched against title and body.
	Search string
	Sort   SortField
	Order  SortOrder
	// Since and Until bound UpdatedAt when non-zero.
	Since time.Time
	Until time.Time
	Limit int
}
