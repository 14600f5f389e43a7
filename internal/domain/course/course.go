package course

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Course is one catalogue entry
type Course struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Status    Status          `json:"status"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Hours     int             `json:"hours"`
	StartsOn  string          `json:"starts_on"`
	CreatedAt time.Time       `json:"created_at"`
}

// Status represents the publication state of a course
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Statuses lists every valid status in display order
var Statuses = []Status{StatusDraft, StatusPublished, StatusArchived}

// Categories offered by the catalogue
var Categories = []string{"management", "finance", "it", "languages", "safety"}

// Cell renders one column for table output
func (c Course) Cell(column string) string {
	switch column {
	case "id":
		return strconv.FormatInt(c.ID, 10)
	case "code":
		return c.Code
	case "title":
		return c.Title
	case "category":
		return c.Category
	case "status":
		return string(c.Status)
	case "price":
		return c.Price.StringFixed(2) + " " + c.Currency
	case "hours":
		return strconv.Itoa(c.Hours)
	case "starts_on":
		return c.StartsOn
	case "created_at":
		return c.CreatedAt.Format(time.DateOnly)
	}
	return ""
}
