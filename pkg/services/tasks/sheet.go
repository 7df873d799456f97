package tasks

import (
	"time"

	"github.com/de-tools/tzlab/pkg/models/domain"
	"github.com/de-tools/tzlab/pkg/zones"
)

// Sheet collects the properties of z, and its state at the given instant.
func Sheet(z *zones.Zone, at time.Time) *domain.ZoneSheet {
	return &domain.ZoneSheet{
		ID:           z.ID,
		DisplayName:  z.DisplayName,
		StandardName: z.StandardName,
		DaylightName: z.DaylightName,
		StandardAbbr: z.StandardAbbr,
		DaylightAbbr: z.DaylightAbbr,
		BaseOffset:   zones.FormatOffset(z.BaseOffset),
		SupportsDST:  z.SupportsDST,
		SortKey:      z.SortKey(),
		At:           at.In(z.Location),
		CurrentName:  z.NameAt(at),
		IsDST:        z.IsDaylightSavingTime(at),
	}
}
