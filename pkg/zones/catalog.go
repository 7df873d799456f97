package zones

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/ini.v1"
)

//go:embed catalog.ini
var defaultCatalog []byte

// Names are the friendly names of a zone.
type Names struct {
	Display  string
	Standard string
	Daylight string
}

// Catalog maps zone ids to friendly names.
type Catalog interface {
	IDs() []string
	Lookup(id string) (Names, bool)
}

type iniCatalog struct {
	cfg *ini.File
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (Catalog, error) {
	cfg, err := ini.Load(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in zone catalog: %w", err)
	}
	return &iniCatalog{cfg: cfg}, nil
}

// LoadCatalog reads a catalog file. Entries in the file take precedence
// over the built-in ones.
func LoadCatalog(path string) (Catalog, error) {
	cfg, err := ini.Load(defaultCatalog, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load zone catalog %s: %w", path, err)
	}
	return &iniCatalog{cfg: cfg}, nil
}

func (c *iniCatalog) IDs() []string {
	var ids []string
	for _, section := range c.cfg.Sections() {
		if len(section.Keys()) > 0 {
			ids = append(ids, section.Name())
		}
	}
	sort.Strings(ids)
	return ids
}

func (c *iniCatalog) Lookup(id string) (Names, bool) {
	section, err := c.cfg.GetSection(id)
	if err != nil || len(section.Keys()) == 0 {
		return Names{}, false
	}
	return Names{
		Display:  section.Key("display").String(),
		Standard: section.Key("standard").String(),
		Daylight: section.Key("daylight").String(),
	}, true
}
