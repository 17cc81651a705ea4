package domain

import "strings"

// Category is the closed set of kinds a submission can be posted as.
type Category string

const (
	CategoryEvent        Category = "event"
	CategoryOpportunity  Category = "opportunity"
	CategoryAnnouncement Category = "announcement"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryEvent, CategoryOpportunity, CategoryAnnouncement:
		return true
	}
	return false
}

// Tab is the category filter selector used when browsing the feed.
type Tab string

const (
	TabAll           Tab = "all"
	TabEvents        Tab = "events"
	TabOpportunities Tab = "opportunities"
	TabAnnouncements Tab = "announcements"
)

// tabCategories is the fixed tab-to-category table. TabAll has no
// category predicate and no entry.
var tabCategories = map[Tab]Category{
	TabEvents:        CategoryEvent,
	TabOpportunities: CategoryOpportunity,
	TabAnnouncements: CategoryAnnouncement,
}

func (t Tab) String() string { return string(t) }

func (t Tab) IsValid() bool {
	if t == TabAll {
		return true
	}
	_, ok := tabCategories[t]
	return ok
}

// Matches reports whether a submission of category c belongs under tab t.
// An unrecognized tab matches nothing.
func (t Tab) Matches(c Category) bool {
	if t == TabAll {
		return true
	}
	want, ok := tabCategories[t]
	return ok && want == c
}

// ParseTab converts user input into a Tab. Empty input means TabAll.
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabAll, nil
	}
	t := Tab(s)
	if !t.IsValid() {
		return "", NewValidationError("tab", "must be one of all, events, opportunities, announcements")
	}
	return t, nil
}
