package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/tzlab/pkg/models/domain"
	"github.com/de-tools/tzlab/pkg/services/cases"
	"github.com/de-tools/tzlab/pkg/services/config"
	"github.com/de-tools/tzlab/pkg/zones"
	"github.com/rs/zerolog"
)

// ReportHandler renders a report to its destination.
type ReportHandler interface {
	Handle(ctx context.Context, report *domain.Report) error
}

// Banner announces the start and the end of each task.
type Banner interface {
	Begin(label string)
	Done(label string)
}

type nopBanner struct{}

func (nopBanner) Begin(string) {}
func (nopBanner) Done(string)  {}

var (
	ZoneFields = []string{
		zones.FieldSortKey,
		zones.FieldID,
		zones.FieldDisplayName,
		zones.FieldBaseOffset,
		zones.FieldStandardName,
		zones.FieldStandardAbbr,
		zones.FieldDaylightName,
		zones.FieldDaylightAbbr,
		zones.FieldSupportsDST,
	}
	ZoneLabels = []string{
		"Sort Key",
		"ID",
		"Display Name",
		"UTC Offset",
		"Standard Name",
		"Std Abbr",
		"Daylight Name",
		"DST Abbr",
		"Supports DST",
	}

	TransitionFields = []string{
		zones.FieldAt,
		zones.FieldNameBefore,
		zones.FieldNameAfter,
		zones.FieldOffsetBefore,
		zones.FieldOffsetAfter,
		zones.FieldDelta,
		zones.FieldDaylight,
	}
	TransitionLabels = []string{
		"Transition",
		"From",
		"To",
		"Offset Before",
		"Offset After",
		"Delta",
		"Daylight",
	}
)

type Config struct {
	Settings *config.Settings
	Resolver *zones.Resolver
	Handler  ReportHandler
	Banner   Banner
}

// Runner executes tasks and hands their reports to a ReportHandler.
type Runner struct {
	settings *config.Settings
	resolver *zones.Resolver
	handler  ReportHandler
	banner   Banner
}

func NewRunner(cfg Config) *Runner {
	if cfg.Banner == nil {
		cfg.Banner = nopBanner{}
	}
	return &Runner{
		settings: cfg.Settings,
		resolver: cfg.Resolver,
		handler:  cfg.Handler,
		banner:   cfg.Banner,
	}
}

// Request selects a task. Zone is only read by EnumerateTimeZoneAdjustments.
type Request struct {
	Task Task
	Zone string
}

// Run executes the requested task. All runs every task in turn and stops
// at the first failure.
func (r *Runner) Run(ctx context.Context, req Request) error {
	if req.Task != All {
		return r.runTask(ctx, req.Task, req.Zone, true)
	}

	for _, t := range Tasks() {
		if err := r.runTask(ctx, t, "", false); err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
	}
	return nil
}

func (r *Runner) runTask(ctx context.Context, t Task, zone string, explicit bool) error {
	logger := zerolog.Ctx(ctx).With().Stringer("task", t).Logger()
	ctx = logger.WithContext(ctx)

	label := r.settings.Label(t.String())
	r.banner.Begin(label)
	logger.Debug().Msg("task started")

	var err error
	switch t {
	case EnumTimeZones:
		err = r.EnumerateZones(ctx)
	case AnyTimeZoneToAnyOtherTimeZone:
		err = r.ConvertCases(ctx, r.settings.Cases.ToZone, r.settings.Cases.ReportFile)
	case AnyTimeZoneToUTC:
		err = r.ConvertCases(ctx, "UTC", "")
	case AnyTimeZoneToLocalTime:
		err = r.ConvertCases(ctx, "Local", "")
	case EnumerateTimeZoneAdjustments:
		if explicit && zone == "" {
			return ErrMissingZoneID
		}
		if zone == "" {
			zone = r.settings.Adjustments.Zone
		}
		err = r.EnumerateAdjustments(ctx, zone)
	default:
		err = fmt.Errorf("%w: %s", ErrUnimplementedTask, t)
	}
	if err != nil {
		return err
	}

	logger.Debug().Msg("task finished")
	r.banner.Done(label)
	return nil
}

// EnumerateZones reports every installed zone, west to east.
func (r *Runner) EnumerateZones(ctx context.Context) error {
	report, err := r.ZoneReport(ctx)
	if err != nil {
		return err
	}
	report.FileName = r.settings.Enumerate.ReportFile
	return r.handler.Handle(ctx, report)
}

// ZoneReport builds the zone listing.
func (r *Runner) ZoneReport(ctx context.Context) (*domain.Report, error) {
	list, err := r.resolver.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list time zones: %w", err)
	}

	report := domain.NewReport(
		fmt.Sprintf("%d time zones", len(list)),
		ZoneFields,
		list,
	)
	report.Labels = ZoneLabels
	report.Guide = r.settings.Report.Guide
	return report, nil
}

// ConvertCases converts the edge cases from the configured source zone to
// toZone. An empty reportFile sends the report to the console.
func (r *Runner) ConvertCases(ctx context.Context, toZone, reportFile string) error {
	logger := zerolog.Ctx(ctx)

	from, err := r.resolver.Resolve(ctx, r.settings.Cases.FromZone)
	if err != nil {
		return err
	}
	to, err := r.resolver.Resolve(ctx, toZone)
	if err != nil {
		return err
	}

	list, err := cases.Load(r.settings.Cases.InputFile, from.Location)
	if err != nil {
		return err
	}

	Convert(list, from, to)
	for _, c := range list {
		if c.Skipped {
			logger.Error().
				Int("case", c.CaseNumber).
				Str("raw_test_date", c.RawTestDate).
				Str("zone", from.ID).
				Msg("test date does not exist in source zone, item skipped")
		}
	}

	report := domain.NewReport(
		fmt.Sprintf("%s to %s", from.ID, to.ID),
		domain.ConversionFields,
		list,
	)
	report.FileName = reportFile
	report.Guide = r.settings.Report.Guide
	return r.handler.Handle(ctx, report)
}

// Convert fills in the output side of each case. Skipped cases are left
// without output.
func Convert(list []*domain.ConversionCase, from, to *zones.Zone) {
	for _, c := range list {
		if c.Skipped {
			continue
		}
		c.TestZoneName = from.NameAt(c.TestDate)
		c.OutputDate = c.TestDate.In(to.Location)
		c.OutputZoneName = to.NameAt(c.OutputDate)
	}
}

// EnumerateAdjustments reports the transitions of zoneID over the
// configured years.
func (r *Runner) EnumerateAdjustments(ctx context.Context, zoneID string) error {
	year := r.settings.Adjustments.Year
	if year == 0 {
		year = time.Now().Year()
	}

	report, err := r.AdjustmentReport(ctx, zoneID, year, r.settings.Adjustments.Years)
	if err != nil {
		return err
	}
	return r.handler.Handle(ctx, report)
}

// AdjustmentReport builds the transition listing of zoneID.
func (r *Runner) AdjustmentReport(ctx context.Context, zoneID string, year, years int) (*domain.Report, error) {
	z, err := r.resolver.Resolve(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	transitions := zones.YearTransitions(z.Location, year, years)
	zerolog.Ctx(ctx).Debug().
		Str("zone", z.ID).
		Int("year", year).
		Int("transitions", len(transitions)).
		Msg("collected zone transitions")

	report := domain.NewReport(
		fmt.Sprintf("Selected time zone = %s", z.ID),
		TransitionFields,
		transitions,
	)
	report.Labels = TransitionLabels
	report.Guide = r.settings.Report.Guide
	return report, nil
}
