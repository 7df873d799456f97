package config

import (
	"errors"
	"fmt"
	"net"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const EnvPrefix = "TZLAB"

type Settings struct {
	Cases       CasesSettings       `mapstructure:"cases"`
	Enumerate   EnumerateSettings   `mapstructure:"enumerate"`
	Adjustments AdjustmentsSettings `mapstructure:"adjustments"`
	Report      ReportSettings      `mapstructure:"report"`
	Zones       ZonesSettings       `mapstructure:"zones"`
	Labels      map[string]string   `mapstructure:"labels"`
	Log         LogSettings         `mapstructure:"log"`
	Server      ServerSettings      `mapstructure:"server"`
}

type CasesSettings struct {
	InputFile  string `mapstructure:"input_file" validate:"required"`
	ReportFile string `mapstructure:"report_file"`
	FromZone   string `mapstructure:"from_zone" validate:"required"`
	ToZone     string `mapstructure:"to_zone" validate:"required"`
}

type EnumerateSettings struct {
	ReportFile string `mapstructure:"report_file"`
}

type AdjustmentsSettings struct {
	Zone  string `mapstructure:"zone" validate:"required"`
	Year  int    `mapstructure:"year" validate:"gte=0"`
	Years int    `mapstructure:"years" validate:"gte=1,lte=100"`
}

type ReportSettings struct {
	Guide      rune   `mapstructure:"guide_char" validate:"required"`
	Encoding   string `mapstructure:"encoding" validate:"oneof=utf-8 utf-16 utf-16le utf-16be"`
	BufferSize int    `mapstructure:"buffer_size" validate:"gte=0"`
}

type ZonesSettings struct {
	Catalog     string `mapstructure:"catalog"`
	ZoneinfoDir string `mapstructure:"zoneinfo_dir"`
	CacheSize   int    `mapstructure:"cache_size" validate:"gte=0"`
}

type LogSettings struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// FileEncoding returns the encoding of report files, or nil for UTF-8.
func (s ReportSettings) FileEncoding() encoding.Encoding {
	switch strings.ToLower(s.Encoding) {
	case "utf-16", "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return nil
	}
}

// Label returns the banner label of a task, falling back to its name.
func (s *Settings) Label(task string) string {
	if label, ok := s.Labels[strings.ToLower(task)]; ok && label != "" {
		return label
	}
	return task
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cases.input_file", "testcases.tsv")
	v.SetDefault("cases.report_file", "")
	v.SetDefault("cases.from_zone", "America/Denver")
	v.SetDefault("cases.to_zone", "America/Chicago")

	v.SetDefault("enumerate.report_file", "")

	v.SetDefault("adjustments.zone", "Local")
	v.SetDefault("adjustments.year", 0)
	v.SetDefault("adjustments.years", 1)

	v.SetDefault("report.guide_char", "-")
	v.SetDefault("report.encoding", "utf-8")
	v.SetDefault("report.buffer_size", 8192)

	v.SetDefault("zones.catalog", "")
	v.SetDefault("zones.zoneinfo_dir", "/usr/share/zoneinfo")
	v.SetDefault("zones.cache_size", 1024)

	v.SetDefault("labels", map[string]string{
		"enumtimezones":                 "Enumerate installed time zones",
		"anytimezonetoanyothertimezone": "Convert edge cases between two time zones",
		"anytimezonetoutc":              "Convert edge cases to UTC",
		"anytimezonetolocaltime":        "Convert edge cases to local time",
		"enumeratetimezoneadjustments":  "Enumerate time zone adjustments",
	})

	v.SetDefault("log.level", "info")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
}

// LoadSettings reads settings from path, when given, on top of the
// defaults. Environment variables prefixed with TZLAB_ override both.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Settings
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToRuneHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its validate tags.
func Validate(cfg *Settings) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate settings: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

// stringToRuneHookFunc decodes single-character strings into rune fields.
func stringToRuneHookFunc() mapstructure.DecodeHookFuncType {
	runeType := reflect.TypeOf(rune(0))
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != runeType {
			return data, nil
		}
		s := data.(string)
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("expected a single character, got %q", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
}
