package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// DayResponse is the response for /date/{date}, /jewish/{y}/{m}/{d} and /today
type DayResponse struct {
	Date               string   `json:"date"`
	JewishDate         string   `json:"jewish_date"`
	JewishYear         int      `json:"jewish_year"`
	JewishMonth        int      `json:"jewish_month"`
	JewishDay          int      `json:"jewish_day"`
	MonthName          string   `json:"month_name"`
	Weekday            string   `json:"weekday"`
	Kviah              string   `json:"kviah"`
	SignificantDay     string   `json:"significant_day"`
	SignificantShabbos string   `json:"significant_shabbos"`
	DayOfOmer          int      `json:"day_of_omer"`
	DayOfChanukah      int      `json:"day_of_chanukah"`
	AssurBemelacha     bool     `json:"assur_bemelacha"`
	CandleLighting     bool     `json:"candle_lighting"`
	Tefilah            []string `json:"tefilah"`
	Zmanim             *Zmanim  `json:"zmanim"`
}

type Zmanim struct {
	Sunrise        *time.Time `json:"sunrise"`
	Sunset         *time.Time `json:"sunset"`
	CandleLighting *time.Time `json:"candle_lighting"`
}

// YearResponse is the response for /years/{year}
type YearResponse struct {
	Year int           `json:"year"`
	Mode string        `json:"mode"`
	Days []DayResponse `json:"days"`
}

// MoladResponse is the response for /molad/{year}/{month}
type MoladResponse struct {
	MonthName string    `json:"month_name"`
	Date      string    `json:"date"`
	Weekday   string    `json:"weekday"`
	Hours     int       `json:"hours"`
	Minutes   int       `json:"minutes"`
	Chalakim  int       `json:"chalakim"`
	UTC       time.Time `json:"utc"`
}

// EventResponse is the response for /events/{name}
type EventResponse struct {
	Event      string      `json:"event"`
	Occurrence string      `json:"occurrence"`
	Day        DayResponse `json:"day"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Luach API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testToday()
	tr.testSpecificDates()
	tr.testJewishDates()
	tr.testEvents()
	tr.testMolad()
	tr.testYear()
	tr.testDateRange()
	tr.testEdgeCases()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	resp, err := tr.get("/api/v1/today")
	if err != nil {
		tr.recordError("Today", err.Error())
		return
	}

	var day DayResponse
	if err := tr.parseDataAs(resp, &day); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today: %s", day.JewishDate))
	tr.printDayDetail(&day)

	// Zmanim for a caller-supplied location
	resp, err = tr.get("/api/v1/today?lat=40.7128&lon=-74.0060&tz=America/New_York")
	if err != nil {
		tr.recordError("Today (New York)", err.Error())
		return
	}
	day = DayResponse{}
	if err := tr.parseDataAs(resp, &day); err != nil {
		tr.recordError("Today (New York)", err.Error())
		return
	}
	if day.Zmanim != nil && day.Zmanim.Sunrise != nil {
		tr.recordSuccess(fmt.Sprintf("Today with location: sunrise %s", day.Zmanim.Sunrise.Format("15:04")))
	} else {
		tr.recordError("Today (New York)", "Expected zmanim with a sunrise")
	}
}

func (tr *TestRunner) testSpecificDates() {
	tr.printSection("Specific Date Tests")

	testCases := []struct {
		path        string
		expectedDay string
		description string
	}{
		// 5778
		{"2017-09-21", "rosh_hashana", "Rosh Hashana 5778"},
		{"2017-09-24", "tzom_gedalyah", "Tzom Gedalyah deferred from Shabbos"},
		{"2017-09-30", "yom_kippur", "Yom Kippur on Shabbos"},
		{"2017-10-12", "shemini_atzeres", "Shemini Atzeres"},
		{"2017-10-13", "simchas_torah", "Simchas Torah (diaspora)"},
		{"2017-10-13?israel=true", "none", "Isru chag in Israel"},
		{"2017-12-13", "chanukah", "First day of Chanukah"},
		{"2018-02-28", "taanis_esther", "Taanis Esther"},
		{"2018-03-01", "purim", "Purim"},
		{"2018-03-31", "pesach", "Pesach"},
		{"2018-04-19?israel=true&modern=true", "yom_haatzmaut", "Yom Haatzmaut moved back from Friday"},
		{"2018-05-20", "shavuos", "Shavuos"},
		{"2018-07-22", "tisha_beav", "Tisha B'Av deferred from Shabbos"},

		// 5784, a leap year
		{"2024-02-23", "purim_katan", "Purim Katan in Adar I"},
		{"2024-03-24", "purim", "Purim in Adar II"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(fmt.Sprintf("/api/v1/date/%s", tc.path))
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		var day DayResponse
		if err := tr.parseDataAs(resp, &day); err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		got := day.SignificantDay
		if got == "" {
			got = "none"
		}
		if got == tc.expectedDay {
			tr.recordSuccess(fmt.Sprintf("%s: %s (%s)", tc.path, day.JewishDate, tc.description))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected '%s', got '%s'", tc.expectedDay, got))
		}

		if tr.verbose {
			tr.printDayDetail(&day)
		}
	}
}

func (tr *TestRunner) testJewishDates() {
	tr.printSection("Jewish Date Tests")

	testCases := []struct {
		path     string
		expected string
	}{
		{"5778/7/10", "2017-09-30"},
		{"5778/tishrei/1", "2017-09-21"},
		{"5784/adar/14", "2024-02-23"},
		{"5784/adar_ii/14", "2024-03-24"},
		{"5785/7/1", "2024-10-03"},
	}

	for _, tc := range testCases {
		resp, err := tr.get("/api/v1/jewish/" + tc.path)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		var day DayResponse
		if err := tr.parseDataAs(resp, &day); err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		if day.Date == tc.expected {
			tr.recordSuccess(fmt.Sprintf("%s -> %s", tc.path, day.Date))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected %s, got %s", tc.expected, day.Date))
		}
	}
}

func (tr *TestRunner) testEvents() {
	tr.printSection("Event Search")

	testCases := []struct {
		query    string
		expected string
	}{
		{"pesach?year=5779", "2019-04-20"},
		{"yom_kippur?year=5785", "2024-10-12"},
		{"chanukah?upcoming=true&from=2017-09-21", "2017-12-13"},
		{"purim?from=2018-03-02&upcoming=true", "2019-03-21"},
		{"rosh_chodesh?upcoming=true&from=2017-09-21", "2017-10-20"},
	}

	for _, tc := range testCases {
		resp, err := tr.get("/api/v1/events/" + tc.query)
		if err != nil {
			tr.recordError(tc.query, err.Error())
			continue
		}
		var ev EventResponse
		if err := tr.parseDataAs(resp, &ev); err != nil {
			tr.recordError(tc.query, err.Error())
			continue
		}
		if ev.Day.Date == tc.expected {
			tr.recordSuccess(fmt.Sprintf("%s (%s): %s", ev.Event, ev.Occurrence, ev.Day.Date))
		} else {
			tr.recordError(tc.query, fmt.Sprintf("Expected %s, got %s", tc.expected, ev.Day.Date))
		}
	}

	resp, _ := tr.getRaw("/api/v1/events/festivus")
	if resp != nil && resp.StatusCode == 404 {
		tr.recordSuccess("Unknown event rejected")
	} else {
		tr.recordError("Unknown event", "Should return 404")
	}

	resp2, _ := tr.getRaw("/api/v1/events/purim?year=5779&upcoming=true")
	if resp2 != nil && resp2.StatusCode == 400 {
		tr.recordSuccess("Conflicting year and upcoming rejected")
	} else {
		tr.recordError("Conflicting options", "Should return 400")
	}
}

func (tr *TestRunner) testMolad() {
	tr.printSection("Molad")

	resp, err := tr.get("/api/v1/molad/5778/av")
	if err != nil {
		tr.recordError("Molad Av 5778", err.Error())
		return
	}
	var m MoladResponse
	if err := tr.parseDataAs(resp, &m); err != nil {
		tr.recordError("Molad Av 5778", err.Error())
		return
	}
	if m.Hours == 6 && m.Minutes == 49 && m.Chalakim == 8 {
		tr.recordSuccess(fmt.Sprintf("Molad %s: %s %s %dh %dm %d (UTC %s)",
			m.MonthName, m.Weekday, m.Date, m.Hours, m.Minutes, m.Chalakim, m.UTC.Format(time.RFC3339)))
	} else {
		tr.recordError("Molad Av 5778", fmt.Sprintf("Expected 6h 49m 8, got %dh %dm %d", m.Hours, m.Minutes, m.Chalakim))
	}
}

func (tr *TestRunner) testYear() {
	tr.printSection("Year")

	for _, path := range []string{"5785", "5785?israel=true&modern=true", "5785?mode=proleptic"} {
		resp, err := tr.get("/api/v1/years/" + path)
		if err != nil {
			tr.recordError(path, err.Error())
			continue
		}
		var y YearResponse
		if err := tr.parseDataAs(resp, &y); err != nil {
			tr.recordError(path, err.Error())
			continue
		}
		if len(y.Days) > 0 && y.Days[0].SignificantDay == "rosh_hashana" {
			tr.recordSuccess(fmt.Sprintf("Year %s: %d notable days (%s)", path, len(y.Days), y.Mode))
		} else {
			tr.recordError(path, "Expected the year to open with Rosh Hashana")
		}
	}
}

func (tr *TestRunner) testDateRange() {
	tr.printSection("Date Range Tests")

	// Sukkos week
	resp, err := tr.get("/api/v1/range?start=2017-10-05&end=2017-10-11")
	if err != nil {
		tr.recordError("Range (week)", err.Error())
		return
	}

	var days []DayResponse
	if err := tr.parseDataAs(resp, &days); err != nil {
		tr.recordError("Range (week)", err.Error())
		return
	}

	if len(days) == 7 {
		tr.recordSuccess(fmt.Sprintf("Week range returned %d days", len(days)))
	} else {
		tr.recordError("Range (week)", fmt.Sprintf("Expected 7 days, got %d", len(days)))
	}

	// Test range limit (should reject > 90 days)
	resp2, _ := tr.getRaw("/api/v1/range?start=2025-01-01&end=2025-12-31")
	if resp2 != nil && resp2.StatusCode == 400 {
		tr.recordSuccess("Range limit enforced (>90 days rejected)")
	} else {
		tr.recordError("Range limit", "Should reject ranges > 90 days")
	}

	// Test invalid range (end before start)
	resp3, _ := tr.getRaw("/api/v1/range?start=2025-12-31&end=2025-01-01")
	if resp3 != nil && resp3.StatusCode == 400 {
		tr.recordSuccess("Invalid range rejected (end before start)")
	} else {
		tr.recordError("Invalid range", "Should reject end < start")
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	// Invalid date format
	resp, _ := tr.getRaw("/api/v1/date/invalid")
	if resp != nil && resp.StatusCode == 400 {
		tr.recordSuccess("Invalid date format rejected")
	} else {
		tr.recordError("Invalid date", "Should return 400")
	}

	// Adar II in a regular year
	resp2, _ := tr.getRaw("/api/v1/jewish/5778/13/1")
	if resp2 != nil && resp2.StatusCode == 400 {
		tr.recordSuccess("Adar II in a regular year rejected")
	} else {
		tr.recordError("Adar II", "Should reject 5778/13/1")
	}

	// Missing parameters for range
	resp3, _ := tr.getRaw("/api/v1/range?start=2025-01-01")
	if resp3 != nil && resp3.StatusCode == 400 {
		tr.recordSuccess("Missing end parameter rejected")
	} else {
		tr.recordError("Missing param", "Should reject missing end")
	}

	// Before the Gregorian reform, in both modes
	for _, mode := range []string{"historical", "proleptic"} {
		if _, err := tr.get("/api/v1/date/1492-08-02?mode=" + mode); err != nil {
			tr.recordError("1492 "+mode, err.Error())
		} else {
			tr.recordSuccess(fmt.Sprintf("1492-08-02 handled (%s)", mode))
		}
	}

	// Admin routes need a key
	resp4, _ := tr.getRaw("/api/v1/admin/cache")
	if resp4 != nil && (resp4.StatusCode == 401 || resp4.StatusCode == 200) {
		tr.recordSuccess(fmt.Sprintf("Admin cache without key: HTTP %d", resp4.StatusCode))
	} else {
		tr.recordError("Admin", "Expected 401, or 200 in development")
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	url := tr.baseURL + path
	return tr.client.Get(url)
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target interface{}) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDayDetail(d *DayResponse) {
	if d == nil {
		return
	}
	if d.Kviah != "" {
		fmt.Printf("    Kviah: %s\n", d.Kviah)
	}
	if d.SignificantShabbos != "" && d.SignificantShabbos != "none" {
		fmt.Printf("    Shabbos: %s\n", d.SignificantShabbos)
	}
	if d.DayOfOmer > 0 {
		fmt.Printf("    Omer: day %d\n", d.DayOfOmer)
	}
	if len(d.Tefilah) > 0 {
		fmt.Printf("    Tefilah: %v\n", d.Tefilah)
	}
	if d.Zmanim != nil && d.Zmanim.CandleLighting != nil {
		fmt.Printf("    Candle lighting: %s\n", d.Zmanim.CandleLighting.Format("15:04"))
	}
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show day details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	_, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
