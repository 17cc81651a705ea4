package submission

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
	maxLocationLen    = 200
	maxTags           = 20

	dateLayout = "2006-01-02"
)

var timeLayouts = []string{"15:04", "15:04:05"}

// CreateInput holds the parameters for creating a submission.
type CreateInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	// Date is an optional calendar date (YYYY-MM-DD).
	Date string
	// Time is an optional time of day (HH:MM or HH:MM:SS).
	Time string
	// TBA marks the date as "to be announced"; Date and Time must be empty.
	TBA   bool
	Tags  []string
	Votes int
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs domain.FieldErrors

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs.Add("title", "required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		errs.Add("title", "max 200 characters")
	}

	category := strings.TrimSpace(i.Category)
	if category == "" {
		errs.Add("category", "required")
	} else if !domain.Category(category).IsValid() {
		errs.Add("category", "must be one of event, opportunity, announcement")
	}

	if utf8.RuneCountInString(strings.TrimSpace(i.Description)) > maxDescriptionLen {
		errs.Add("description", "max 5000 characters")
	}
	if utf8.RuneCountInString(strings.TrimSpace(i.Location)) > maxLocationLen {
		errs.Add("location", "max 200 characters")
	}

	if d := strings.TrimSpace(i.Date); d != "" {
		if _, err := time.Parse(dateLayout, d); err != nil {
			errs.Add("date", "must be YYYY-MM-DD")
		}
	}
	if tm := strings.TrimSpace(i.Time); tm != "" {
		if _, ok := parseClock(tm); !ok {
			errs.Add("time", "must be HH:MM")
		}
	}
	if i.TBA && (strings.TrimSpace(i.Date) != "" || strings.TrimSpace(i.Time) != "") {
		errs.Add("date", "must be empty when tba is set")
	}

	if len(domain.NormalizeTags(i.Tags)) > maxTags {
		errs.Add("tags", "max 20 tags")
	}

	if i.Votes < 0 {
		errs.Add("votes", "must be non-negative")
	}

	return errs.Err()
}

// occursAt combines the optional date and time of day in loc. Without a
// date the current day is used; without either, the current instant.
// Returns nil for TBA submissions. Input must already be validated.
func (i CreateInput) occursAt(now time.Time, loc *time.Location) *time.Time {
	if i.TBA {
		return nil
	}

	date := strings.TrimSpace(i.Date)
	clock := strings.TrimSpace(i.Time)
	now = now.In(loc)

	if date == "" && clock == "" {
		t := now.UTC()
		return &t
	}

	year, month, day := now.Date()
	if date != "" {
		d, _ := time.Parse(dateLayout, date)
		year, month, day = d.Date()
	}

	var hour, minute, sec int
	if clock != "" {
		c, _ := parseClock(clock)
		hour, minute, sec = c.Clock()
	}

	t := time.Date(year, month, day, hour, minute, sec, 0, loc).UTC()
	return &t
}

func parseClock(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BrowseInput holds the feed filter parameters.
type BrowseInput struct {
	Tab   string
	Query string
}
