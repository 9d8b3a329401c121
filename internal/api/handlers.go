package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/config"
	"github.com/zapponejosh/luach-api/internal/database"
	"github.com/zapponejosh/luach-api/internal/logger"
	"github.com/zapponejosh/luach-api/internal/luach"
	"github.com/zapponejosh/luach-api/internal/observance"
	"github.com/zapponejosh/luach-api/internal/zmanim"
)

// maxRangeDays caps /range so a single request stays cheap.
const maxRangeDays = 90

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	svc      *luach.Service
	cfg      *config.Config
	logger   *slog.Logger
	location zmanim.Location
	now      func() time.Time
}

// NewHandlers creates a new Handlers instance. The configured default
// location must load.
func NewHandlers(db *database.DB, svc *luach.Service, cfg *config.Config, logger *slog.Logger) (*Handlers, error) {
	loc, err := zmanim.NewLocation("default", cfg.DefaultLatitude, cfg.DefaultLongitude, cfg.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("default location: %w", err)
	}
	return &Handlers{
		db:       db,
		svc:      svc,
		cfg:      cfg,
		logger:   logger,
		location: loc,
		now:      time.Now,
	}, nil
}

// =============================================================================
// Response types
// =============================================================================

// DayResponse is the full classification of one day.
type DayResponse struct {
	observance.Observance
	JewishDate             string      `json:"jewish_date"`
	Kviah                  string      `json:"kviah"`
	VeseinTalUmatarTonight bool        `json:"vesein_tal_umatar_starts_tonight"`
	TomorrowAssurBemelacha bool        `json:"tomorrow_assur_bemelacha"`
	Zmanim                 *zmanim.Day `json:"zmanim,omitempty"`
}

// YearResponse is the list of notable days of a Jewish year.
type YearResponse struct {
	Year       int                     `json:"year"`
	InIsrael   bool                    `json:"in_israel"`
	Modern     bool                    `json:"modern"`
	Mode       string                  `json:"mode"`
	ComputedAt time.Time               `json:"computed_at"`
	Days       []observance.Observance `json:"days"`
}

// MoladResponse describes the molad of a month.
type MoladResponse struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"month_name"`
	Date      string    `json:"date"`
	Weekday   string    `json:"weekday"`
	Hours     int       `json:"hours"`
	Minutes   int       `json:"minutes"`
	Chalakim  int       `json:"chalakim"`
	UTC       time.Time `json:"utc"`

	KiddushLevana KiddushLevana `json:"kiddush_levana"`
}

// KiddushLevana is the window for blessing the new moon.
type KiddushLevana struct {
	Earliest3Days       time.Time `json:"earliest_3_days"`
	Earliest7Days       time.Time `json:"earliest_7_days"`
	LatestBetweenMoldos time.Time `json:"latest_between_moldos"`
	Latest15Days        time.Time `json:"latest_15_days"`
}

// EventResponse is the result of an event search.
type EventResponse struct {
	Event      string      `json:"event"`
	Occurrence string      `json:"occurrence"`
	Day        DayResponse `json:"day"`
}

// =============================================================================
// Request parsing
// =============================================================================

// parseFlags reads israel, modern and mode from the query, falling back to
// the service defaults.
func (h *Handlers) parseFlags(r *http.Request) (luach.Flags, error) {
	flags := h.svc.Defaults()
	q := r.URL.Query()

	if v := q.Get("israel"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return flags, fmt.Errorf("%w: israel=%q", calendar.ErrInvalidArgument, v)
		}
		flags.InIsrael = b
	}
	if v := q.Get("modern"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return flags, fmt.Errorf("%w: modern=%q", calendar.ErrInvalidArgument, v)
		}
		flags.Modern = b
	}
	if v := q.Get("mode"); v != "" {
		mode, err := calendar.ParseMode(v)
		if err != nil {
			return flags, err
		}
		flags.Mode = mode
	}
	return flags, nil
}

// parseTefilah reads nusach and walled from the query.
func (h *Handlers) parseTefilah(r *http.Request) (observance.TefilahOptions, error) {
	q := r.URL.Query()
	opts := observance.TefilahOptions{Nusach: h.cfg.Nusach}

	if v := q.Get("nusach"); v != "" {
		n, err := observance.ParseNusach(v)
		if err != nil {
			return opts, err
		}
		opts.Nusach = n
	}
	if v := q.Get("walled"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%w: walled=%q", calendar.ErrInvalidArgument, v)
		}
		opts.WalledCity = b
	}
	return opts, nil
}

// parseLocation reads lat, lon and tz from the query, falling back to the
// configured location when none are given.
func (h *Handlers) parseLocation(r *http.Request) (zmanim.Location, error) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" && lonStr == "" {
		return h.location, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return zmanim.Location{}, fmt.Errorf("%w: lat=%q", calendar.ErrInvalidArgument, latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return zmanim.Location{}, fmt.Errorf("%w: lon=%q", calendar.ErrInvalidArgument, lonStr)
	}
	tz := q.Get("tz")
	if tz == "" {
		tz = "UTC"
	}
	return zmanim.NewLocation("", lat, lon, tz)
}

// parseCivilDate parses YYYY-MM-DD in the given mode.
func parseCivilDate(s string, opts []observance.Option) (observance.Calendar, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return observance.Calendar{}, fmt.Errorf("%w: date %q, use YYYY-MM-DD", calendar.ErrInvalidArgument, s)
	}
	return observance.FromGregorian(t.Year(), t.Month(), t.Day(), opts...)
}

// checkMonth rejects Adar II in a regular year. The calendar itself would
// fold it into Adar, which is surprising in a URL.
func checkMonth(year int, month calendar.Month) error {
	if month > calendar.Month(calendar.MonthsInYear(year)) {
		return fmt.Errorf("%w: %d has no month %d", calendar.ErrInvalidArgument, year, int(month))
	}
	return nil
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: year %q", calendar.ErrInvalidArgument, s)
	}
	if err := calendar.CheckJewishYear(year); err != nil {
		return 0, err
	}
	return year, nil
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handlers) day(c observance.Calendar, tefilah observance.TefilahOptions, loc *zmanim.Location) DayResponse {
	resp := DayResponse{
		Observance:             c.Observance(tefilah),
		JewishDate:             c.String(),
		Kviah:                  c.Kviah().String(),
		VeseinTalUmatarTonight: c.IsVeseinTalUmatarStartsTonight(),
		TomorrowAssurBemelacha: c.IsTomorrowAssurBemelacha(),
	}
	if loc != nil {
		z := zmanim.ForDay(c, *loc, h.cfg.CandleLightingOffset)
		resp.Zmanim = &z
	}
	return resp
}

// writeDay finishes the single-day endpoints.
func (h *Handlers) writeDay(w http.ResponseWriter, r *http.Request, c observance.Calendar) {
	tefilah, err := h.parseTefilah(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	loc, err := h.parseLocation(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	WriteSuccess(w, h.day(c, tefilah, &loc))
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if status, _ := statusFor(err); status == http.StatusInternalServerError {
		logger.Error(r.Context(), msg, err)
	}
	WriteCalendarError(w, err)
}

// =============================================================================
// Public handlers
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check database health
	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	stats, err := h.db.CacheStats(ctx)
	if err != nil {
		h.logger.Warn("cache stats failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Cache unreadable", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]any{
		"status": "healthy",
		"cache":  stats,
	})
}

// GetToday handles GET /api/v1/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	flags, err := h.parseFlags(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	loc, err := h.parseLocation(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	// the civil day where the caller is
	c, err := observance.FromTime(h.now().In(loc.TimeZone), flags.Options()...)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	h.writeDay(w, r, c)
}

// GetDate handles GET /api/v1/date/{date}
func (h *Handlers) GetDate(w http.ResponseWriter, r *http.Request) {
	flags, err := h.parseFlags(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	c, err := parseCivilDate(chi.URLParam(r, "date"), flags.Options())
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	h.writeDay(w, r, c)
}

// GetJewishDate handles GET /api/v1/jewish/{year}/{month}/{day}
func (h *Handlers) GetJewishDate(w http.ResponseWriter, r *http.Request) {
	flags, err := h.parseFlags(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	month, err := calendar.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	if err := checkMonth(year, month); err != nil {
		WriteCalendarError(w, err)
		return
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid day: %s", chi.URLParam(r, "day")))
		return
	}

	c, err := observance.New(year, month, day, flags.Options()...)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	h.writeDay(w, r, c)
}

// GetYear handles GET /api/v1/years/{year}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	flags, err := h.parseFlags(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	y, err := h.svc.Year(r.Context(), year, flags)
	if err != nil {
		h.fail(w, r, "failed to get year", err)
		return
	}

	WriteSuccess(w, YearResponse{
		Year:       y.Key.Year,
		InIsrael:   y.Key.InIsrael,
		Modern:     y.Key.Modern,
		Mode:       y.Key.Mode.String(),
		ComputedAt: y.ComputedAt,
		Days:       y.Days,
	})
}

// GetMolad handles GET /api/v1/molad/{year}/{month}
func (h *Handlers) GetMolad(w http.ResponseWriter, r *http.Request) {
	flags, err := h.parseFlags(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	month, err := calendar.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	if err := checkMonth(year, month); err != nil {
		WriteCalendarError(w, err)
		return
	}

	// Any day of the month carries the month's molad.
	c, err := observance.New(year, month, 1, flags.Options()...)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	m := c.Molad()

	WriteSuccess(w, MoladResponse{
		Year:      year,
		Month:     int(month),
		MonthName: c.MonthName(),
		Date:      m.CivilString(),
		Weekday:   m.Weekday().String(),
		Hours:     m.MoladHours(),
		Minutes:   m.MoladMinutes(),
		Chalakim:  m.MoladChalakim(),
		UTC:       c.MoladAsUTC(),
		KiddushLevana: KiddushLevana{
			Earliest3Days:       c.TchilasZmanKidushLevana3Days(),
			Earliest7Days:       c.TchilasZmanKidushLevana7Days(),
			LatestBetweenMoldos: c.SofZmanKidushLevanaBetweenMoldos(),
			Latest15Days:        c.SofZmanKidushLevana15Days(),
		},
	})
}

// GetEvent handles GET /api/v1/events/{name}?year=&upcoming=&from=
func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	flags, err := h.parseFlags(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	q := r.URL.Query()

	ev, err := observance.EventByName(chi.URLParam(r, "name"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	var year *int
	if v := q.Get("year"); v != "" {
		y, err := parseYear(v)
		if err != nil {
			WriteCalendarError(w, err)
			return
		}
		year = &y
	}
	upcoming := false
	if v := q.Get("upcoming"); v != "" {
		upcoming, err = strconv.ParseBool(v)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid upcoming: %s", v))
			return
		}
	}
	occ, err := observance.ParseOccurrence(year, upcoming)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	var ref observance.Calendar
	if v := q.Get("from"); v != "" {
		ref, err = parseCivilDate(v, flags.Options())
	} else {
		ref, err = observance.FromTime(h.now().In(h.location.TimeZone), flags.Options()...)
	}
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	found, err := ref.Find(ev, occ)
	if err != nil {
		h.fail(w, r, "event search failed", err)
		return
	}

	tefilah, err := h.parseTefilah(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	WriteSuccess(w, EventResponse{
		Event:      ev.Name,
		Occurrence: occ.String(),
		Day:        h.day(found, tefilah, nil),
	})
}

// GetRange handles GET /api/v1/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRange(w http.ResponseWriter, r *http.Request) {
	flags, err := h.parseFlags(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	tefilah, err := h.parseTefilah(r)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := parseCivilDate(startStr, flags.Options())
	if err != nil {
		WriteCalendarError(w, err)
		return
	}
	end, err := parseCivilDate(endStr, flags.Options())
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	if start.After(end.JewishDate) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	// Limit range to prevent abuse
	if end.Sub(start.JewishDate) >= maxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", maxRangeDays))
		return
	}

	WriteSuccess(w, start.Range(end.JewishDate, tefilah))
}

// =============================================================================
// Admin handlers
// =============================================================================

// ListCache handles GET /api/v1/admin/cache
func (h *Handlers) ListCache(w http.ResponseWriter, r *http.Request) {
	years, err := h.db.ListYears(r.Context())
	if err != nil {
		h.fail(w, r, "failed to list cache", err)
		return
	}
	if years == nil {
		years = []database.YearSummary{}
	}
	WriteSuccess(w, years)
}

// DeleteCache handles DELETE /api/v1/admin/cache/{year}
func (h *Handlers) DeleteCache(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	n, err := h.db.DeleteYear(r.Context(), year)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("Year %d is not cached", year))
			return
		}
		h.fail(w, r, "failed to delete cached year", err)
		return
	}

	logger.Info(r.Context(), "cache cleared", slog.Int("year", year), slog.Int64("rows", n))
	WriteSuccess(w, map[string]any{
		"year":    year,
		"deleted": n,
	})
}

// WarmCache handles POST /api/v1/admin/cache/warm
func (h *Handlers) WarmCache(w http.ResponseWriter, r *http.Request) {
	years := h.svc.CurrentYears()
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := parseYear(v)
		if err != nil {
			WriteCalendarError(w, err)
			return
		}
		years = []int{y}
	}

	if err := h.svc.Warm(r.Context(), years...); err != nil {
		h.fail(w, r, "failed to warm cache", err)
		return
	}
	WriteSuccess(w, map[string]any{"warmed": years})
}
