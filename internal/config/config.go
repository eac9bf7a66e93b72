package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // часовой пояс залов доступен и без системной базы зон

	"github.com/BurntSushi/toml"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/integrations/calendarsource"
	"github.com/aceboy1016/ishihara-booking/internal/refresher"
	"github.com/aceboy1016/ishihara-booking/pkg/types"
)

// EnvDBPassword переменная окружения с паролем БД, перекрывает database.password
const EnvDBPassword = "DB_PASSWORD"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig     `toml:"server"`
	Database  DatabaseConfig   `toml:"database"`
	Logs      LogsConfig       `toml:"logs"`
	Metrics   MetricsConfig    `toml:"metrics"`
	Calendar  CalendarConfig   `toml:"calendar"`
	Rules     RulesConfig      `toml:"rules"`
	Locations []LocationConfig `toml:"locations"`
	Trainer   TrainerConfig    `toml:"trainer"`

	holidays domain.HolidayCalendar
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig ICS-ленты и расписание обновления снимка
type CalendarConfig struct {
	Timeout        int          `toml:"timeout"`         // секунды на загрузку одной ленты
	Refresh        string       `toml:"refresh"`         // cron-выражение
	RefreshTimeout int          `toml:"refresh_timeout"` // секунды на одно обновление целиком
	WindowDays     int          `toml:"window_days"`
	Feeds          []FeedConfig `toml:"feeds"`
}

// FeedConfig kind: trainer-work, trainer-private или location
type FeedConfig struct {
	ID       string `toml:"id"`
	URL      string `toml:"url"`
	Kind     string `toml:"kind"`
	Location string `toml:"location"`
}

// RulesConfig правила записи
type RulesConfig struct {
	Timezone           string   `toml:"timezone"`
	Open               string   `toml:"open"`
	WeekdayClose       string   `toml:"weekday_close"`
	HolidayClose       string   `toml:"holiday_close"`
	MinLeadMinutes     int      `toml:"min_lead_minutes"`
	HorizonMonths      int      `toml:"horizon_months"`
	DayOffKeywords     []string `toml:"day_off_keywords"`
	UnavailableMarkers []string `toml:"unavailable_markers"`
	FacilityHoldTokens []string `toml:"facility_hold_tokens"`
	HolidaysFile       string   `toml:"holidays_file"`
	Holidays           []string `toml:"holidays"`
}

type LocationConfig struct {
	ID            string       `toml:"id"`
	DisplayName   string       `toml:"display_name"`
	TagMarkers    []string     `toml:"tag_markers"`
	TagPrefixes   []string     `toml:"tag_prefixes"`
	Rooms         []RoomConfig `toml:"rooms"`
	MaxConcurrent int          `toml:"max_concurrent"`
}

type RoomConfig struct {
	Name   string `toml:"name"`
	Marker string `toml:"marker"`
}

// TrainerConfig имя тренера в тексте заявки
type TrainerConfig struct {
	Name string `toml:"name"`
}

// Load читает config.toml, применяет значения по умолчанию и переменные окружения,
// подгружает таблицу праздников и проверяет результат
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	holidaysFile := cfg.Rules.HolidaysFile
	if holidaysFile != "" && !filepath.IsAbs(holidaysFile) {
		holidaysFile = filepath.Join(filepath.Dir(path), holidaysFile)
	}
	holidays, err := loadHolidays(holidaysFile, cfg.Rules.Holidays)
	if err != nil {
		return nil, err
	}
	cfg.holidays = holidays

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "ishihara_booking"
	}

	if c.Calendar.Timeout == 0 {
		c.Calendar.Timeout = 10
	}
	if c.Calendar.Refresh == "" {
		c.Calendar.Refresh = refresher.DefaultSchedule
	}
	if c.Calendar.RefreshTimeout == 0 {
		c.Calendar.RefreshTimeout = 60
	}
	if c.Calendar.WindowDays == 0 {
		c.Calendar.WindowDays = calendarsource.DefaultWindowDays
	}

	if c.Rules.Timezone == "" {
		c.Rules.Timezone = domain.DefaultTimezone
	}
	if c.Rules.Open == "" {
		c.Rules.Open = domain.DefaultOpenTime
	}
	if c.Rules.WeekdayClose == "" {
		c.Rules.WeekdayClose = domain.DefaultWeekdayClose
	}
	if c.Rules.HolidayClose == "" {
		c.Rules.HolidayClose = domain.DefaultHolidayClose
	}
	if c.Rules.MinLeadMinutes == 0 {
		c.Rules.MinLeadMinutes = int(domain.DefaultMinLeadTime / time.Minute)
	}
	if c.Rules.HorizonMonths == 0 {
		c.Rules.HorizonMonths = domain.DefaultHorizonMonths
	}
	if c.Rules.DayOffKeywords == nil {
		c.Rules.DayOffKeywords = domain.DefaultDayOffKeywords
	}
	if c.Rules.UnavailableMarkers == nil {
		c.Rules.UnavailableMarkers = domain.DefaultUnavailableMarkers
	}
	if c.Rules.FacilityHoldTokens == nil {
		c.Rules.FacilityHoldTokens = domain.DefaultFacilityHoldTokens
	}

	if c.Trainer.Name == "" {
		c.Trainer.Name = "石原"
	}
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		c.Database.Password = v
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Calendar.Timeout < 0 || c.Calendar.RefreshTimeout < 0 || c.Calendar.WindowDays < 0 {
		return fmt.Errorf("%w: calendar timeouts and window must not be negative", ErrInvalidConfig)
	}
	if err := refresher.ValidateSchedule(c.Calendar.Refresh); err != nil {
		return fmt.Errorf("%w: calendar.refresh: %v", ErrInvalidConfig, err)
	}
	if c.Rules.MinLeadMinutes < 0 || c.Rules.HorizonMonths < 0 {
		return fmt.Errorf("%w: rules.min_lead_minutes and rules.horizon_months must not be negative", ErrInvalidConfig)
	}

	rules, err := c.BusinessRules()
	if err != nil {
		return err
	}
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := c.Feeds(); err != nil {
		return err
	}
	return nil
}

// BusinessRules правила записи для движка
func (c *Config) BusinessRules() (domain.BusinessRules, error) {
	tz, err := time.LoadLocation(c.Rules.Timezone)
	if err != nil {
		return domain.BusinessRules{}, fmt.Errorf("%w: rules.timezone %q: %v", ErrInvalidConfig, c.Rules.Timezone, err)
	}

	rules := domain.DefaultBusinessRules(tz)
	rules.Hours = domain.BusinessHours{
		Open:         types.TimeString(c.Rules.Open),
		WeekdayClose: types.TimeString(c.Rules.WeekdayClose),
		HolidayClose: types.TimeString(c.Rules.HolidayClose),
	}
	rules.Holidays = c.holidays
	rules.MinLeadTime = time.Duration(c.Rules.MinLeadMinutes) * time.Minute
	rules.HorizonMonths = c.Rules.HorizonMonths
	rules.DayOffKeywords = c.Rules.DayOffKeywords
	rules.UnavailableMarkers = c.Rules.UnavailableMarkers
	rules.FacilityHoldTokens = c.Rules.FacilityHoldTokens

	rules.Locations = make([]domain.LocationSpec, 0, len(c.Locations))
	for _, l := range c.Locations {
		spec := domain.LocationSpec{
			ID:            domain.LocationID(l.ID),
			DisplayName:   l.DisplayName,
			TagMarkers:    l.TagMarkers,
			TagPrefixes:   l.TagPrefixes,
			MaxConcurrent: l.MaxConcurrent,
		}
		for _, r := range l.Rooms {
			spec.Rooms = append(spec.Rooms, domain.RoomSpec{Name: r.Name, Marker: r.Marker})
		}
		rules.Locations = append(rules.Locations, spec)
	}

	return rules, nil
}

// Feeds ICS-ленты для источника календарей
func (c *Config) Feeds() ([]calendarsource.Feed, error) {
	if len(c.Calendar.Feeds) == 0 {
		return nil, fmt.Errorf("%w: calendar.feeds is empty", ErrInvalidConfig)
	}

	feeds := make([]calendarsource.Feed, 0, len(c.Calendar.Feeds))
	for _, f := range c.Calendar.Feeds {
		if f.ID == "" || strings.TrimSpace(f.URL) == "" {
			return nil, fmt.Errorf("%w: calendar feed without id or url", ErrInvalidConfig)
		}

		kind := domain.SourceKind(f.Kind)
		switch kind {
		case domain.SourceTrainerWork, domain.SourceTrainerPrivate:
			if f.Location != "" {
				return nil, fmt.Errorf("%w: feed %q: trainer feed must not set location", ErrInvalidConfig, f.ID)
			}
		case domain.SourceLocation:
			if !c.hasLocation(f.Location) {
				return nil, fmt.Errorf("%w: feed %q: unknown location %q", ErrInvalidConfig, f.ID, f.Location)
			}
		default:
			return nil, fmt.Errorf("%w: feed %q: unknown kind %q", ErrInvalidConfig, f.ID, f.Kind)
		}

		feeds = append(feeds, calendarsource.Feed{
			ID:       f.ID,
			URL:      f.URL,
			Kind:     kind,
			Location: domain.LocationID(f.Location),
		})
	}
	return feeds, nil
}

func (c *Config) hasLocation(id string) bool {
	for _, l := range c.Locations {
		if l.ID == id {
			return true
		}
	}
	return false
}
