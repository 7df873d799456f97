package domain

import "time"

// ZoneSheet holds the properties shown for a single zone.
type ZoneSheet struct {
	ID           string
	DisplayName  string
	StandardName string
	DaylightName string
	StandardAbbr string
	DaylightAbbr string
	BaseOffset   string
	SupportsDST  bool
	SortKey      string

	// state of the zone at At
	At          time.Time
	CurrentName string
	IsDST       bool
}
