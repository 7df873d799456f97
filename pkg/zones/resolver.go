package zones

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/maypok86/otter/v2"
	"github.com/rs/zerolog"
)

// DefaultZoneinfoDir is where installed zones are looked up.
const DefaultZoneinfoDir = "/usr/share/zoneinfo"

var ErrZoneNotFound = errors.New("time zone not found")

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	Catalog     Catalog
	ZoneinfoDir string
	CacheSize   int
	// Year is the reference year for base offsets and names; 0 means now.
	Year int
}

// Resolver loads zones by id and enumerates installed zones.
type Resolver struct {
	catalog     Catalog
	zoneinfoDir string
	year        int
	cache       *otter.Cache[string, *Zone]
}

func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.ZoneinfoDir == "" {
		cfg.ZoneinfoDir = DefaultZoneinfoDir
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1024
	}
	if cfg.Year == 0 {
		cfg.Year = time.Now().Year()
	}

	return &Resolver{
		catalog:     cfg.Catalog,
		zoneinfoDir: cfg.ZoneinfoDir,
		year:        cfg.Year,
		cache: otter.Must(&otter.Options[string, *Zone]{
			MaximumSize: cfg.CacheSize,
		}),
	}
}

func (r *Resolver) Year() int {
	return r.year
}

// Resolve loads the zone with the given IANA id. "Local" and "UTC" are
// accepted as well.
func (r *Resolver) Resolve(ctx context.Context, id string) (*Zone, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrZoneNotFound)
	}
	if z, ok := r.cache.GetIfPresent(id); ok {
		return z, nil
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("zone", id).Msg("failed to load location")
		return nil, fmt.Errorf("%w: %s", ErrZoneNotFound, id)
	}

	z := NewZone(loc, r.catalog, r.year)
	r.cache.Set(id, z)
	return z, nil
}

// List returns every installed zone ordered by sort key. When no zoneinfo
// directory is available the catalog ids are listed instead.
func (r *Resolver) List(ctx context.Context) ([]*Zone, error) {
	logger := zerolog.Ctx(ctx)

	ids, err := r.installedIDs()
	if err != nil {
		logger.Warn().Err(err).Str("dir", r.zoneinfoDir).Msg("zoneinfo directory unavailable, using catalog")
	}
	if len(ids) == 0 && r.catalog != nil {
		ids = r.catalog.IDs()
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no time zones found in %s", r.zoneinfoDir)
	}

	list := make([]*Zone, 0, len(ids))
	for _, id := range ids {
		z, err := r.Resolve(ctx, id)
		if err != nil {
			logger.Debug().Err(err).Str("zone", id).Msg("skipping zone")
			continue
		}
		list = append(list, z)
	}

	slices.SortFunc(list, func(a, b *Zone) int {
		return strings.Compare(a.SortKey(), b.SortKey())
	})
	return list, nil
}

func (r *Resolver) installedIDs() ([]string, error) {
	if _, err := os.Stat(r.zoneinfoDir); err != nil {
		return nil, err
	}

	var ids []string
	err := filepath.WalkDir(r.zoneinfoDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != r.zoneinfoDir && skipDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if skipFile(name) {
			return nil
		}

		id, err := filepath.Rel(r.zoneinfoDir, path)
		if err != nil {
			return nil
		}
		id = filepath.ToSlash(id)
		if _, err := time.LoadLocation(id); err == nil {
			ids = append(ids, id)
		}
		return nil
	})
	return ids, err
}

func skipDir(name string) bool {
	switch name {
	case "posix", "right":
		return true
	}
	return strings.HasPrefix(name, ".")
}

func skipFile(name string) bool {
	switch name {
	case "localtime", "posixrules", "Factory":
		return true
	}
	r := name[0]
	return strings.Contains(name, ".") || r < 'A' || r > 'Z'
}
