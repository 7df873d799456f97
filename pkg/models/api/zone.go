package api

import "time"

type Zone struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	StandardName string `json:"standard_name"`
	DaylightName string `json:"daylight_name"`
	StandardAbbr string `json:"standard_abbr"`
	DaylightAbbr string `json:"daylight_abbr"`
	BaseOffset   string `json:"base_utc_offset"`
	SupportsDST  bool   `json:"supports_dst"`
	SortKey      string `json:"sort_key"`
}

type Transition struct {
	At           time.Time `json:"at"`
	OffsetBefore string    `json:"offset_before"`
	OffsetAfter  string    `json:"offset_after"`
	NameBefore   string    `json:"name_before"`
	NameAfter    string    `json:"name_after"`
	Delta        string    `json:"delta"`
	Daylight     bool      `json:"daylight"`
}

type ZoneAdjustments struct {
	Zone        string       `json:"zone"`
	Year        int          `json:"year"`
	Years       int          `json:"years"`
	Transitions []Transition `json:"transitions"`
}

type Error struct {
	Message string `json:"message"`
}
