// Package parser normalizes raw work-log JSON documents into
// WorkLogEntry values grouped by calendar date.
package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog"
	pkgLog "github.com/robiparvez/openproject-worklogger/pkg/log"
	"github.com/robiparvez/openproject-worklogger/pkg/timefmt"
)

// Parser turns raw per-date log JSON into normalized work-log entries.
type Parser struct {
	projectMappings map[string]int
	l               pkgLog.Logger
}

// New creates a Parser bound to the configured project mapping.
func New(projectMappings map[string]int, l pkgLog.Logger) *Parser {
	return &Parser{
		projectMappings: projectMappings,
		l:               l,
	}
}

// Parse validates and normalizes a raw work-log document.
// Invalid log dates and invalid entries are skipped with a log line;
// a document without a usable logs array is fatal. Dates with zero
// surviving entries are omitted from the result.
func (p *Parser) Parse(ctx context.Context, doc json.RawMessage) (map[string][]*model.WorkLogEntry, error) {
	var document struct {
		Logs []json.RawMessage `json:"logs"`
	}
	if err := json.Unmarshal(doc, &document); err != nil {
		return nil, fmt.Errorf("invalid JSON file: %w", err)
	}
	if document.Logs == nil {
		return nil, worklog.ErrInvalidDocument
	}
	if len(document.Logs) == 0 {
		return nil, worklog.ErrEmptyDocument
	}

	result := make(map[string][]*model.WorkLogEntry)

	for logIndex, rawLog := range document.Logs {
		var logItem struct {
			Date    string            `json:"date"`
			Entries []json.RawMessage `json:"entries"`
		}
		if err := json.Unmarshal(rawLog, &logItem); err != nil {
			p.l.Warnf(ctx, "log entry %d is not an object, skipping: %v", logIndex+1, err)
			continue
		}

		if logItem.Date == "" {
			p.l.Warnf(ctx, "log entry %d missing 'date' field, skipping", logIndex+1)
			continue
		}

		date, err := ParseDateString(logItem.Date)
		if err != nil {
			p.l.Warnf(ctx, "log entry %d has invalid date format %q: %v", logIndex+1, logItem.Date, err)
			continue
		}

		entries := p.parseDateEntries(ctx, logItem.Date, date, logItem.Entries)
		if len(entries) > 0 {
			result[date] = entries
		}
	}

	return result, nil
}

// parseDateEntries walks one date's entries, assigning provisional
// times: the cursor starts at 09:00 and advances by duration plus break
// gap in file order. SCRUM entries are pinned to 10:00 and do not move
// the cursor for subsequent non-SCRUM entries.
func (p *Parser) parseDateEntries(ctx context.Context, rawDate, date string, rawEntries []json.RawMessage) []*model.WorkLogEntry {
	entries := make([]*model.WorkLogEntry, 0, len(rawEntries))
	cursor := defaultDayStart

	for entryIndex, raw := range rawEntries {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			p.l.Warnf(ctx, "log date %s entry %d is not an object, skipping: %v", rawDate, entryIndex+1, err)
			continue
		}

		if errs := p.validateEntry(fields); len(errs) > 0 {
			p.l.Errorf(ctx, "validation errors for log date %s, entry %d; skipping", rawDate, entryIndex+1)
			for _, e := range errs {
				p.l.Errorf(ctx, "  - %s", e)
			}
			continue
		}

		entry := p.buildEntry(fields, date, cursor)
		if entry == nil {
			continue
		}

		entries = append(entries, entry)
		if !entry.IsScrum {
			cursor = timefmt.AddHours(entry.ProvisionalStart, entry.DurationHours)
		}
	}

	return entries
}

// validateEntry checks the required-field set and field shapes.
func (p *Parser) validateEntry(fields map[string]any) []string {
	var errs []string

	for _, field := range requiredFields {
		v, ok := fields[field]
		if !ok {
			errs = append(errs, fmt.Sprintf("missing required field '%s'", field))
		} else if v == nil {
			errs = append(errs, fmt.Sprintf("field '%s' cannot be null", field))
		}
	}

	if project, ok := fields["project"].(string); ok && project != "" {
		if _, known := p.projectMappings[project]; !known {
			allowed := make([]string, 0, len(p.projectMappings))
			for k := range p.projectMappings {
				allowed = append(allowed, k)
			}
			sort.Strings(allowed)
			errs = append(errs, fmt.Sprintf("invalid project '%s'. Allowed values: %s", project, strings.Join(allowed, ", ")))
		}
	}

	if v, ok := fields["subject"]; ok && v != nil {
		s, isString := v.(string)
		if !isString || strings.TrimSpace(s) == "" {
			errs = append(errs, "field 'subject' must be a non-empty string")
		}
	}

	if v, ok := fields["duration_hours"]; ok && v != nil {
		if d, valid := coerceDuration(v); !valid || d <= 0 {
			errs = append(errs, "field 'duration_hours' must be a number greater than 0")
		}
	}

	if v, ok := fields["is_scrum"]; ok && v != nil {
		if _, isBool := v.(bool); !isBool {
			errs = append(errs, "field 'is_scrum' must be a boolean (true or false)")
		}
	}

	if v, ok := fields["break_hours"]; ok && v != nil {
		if b, valid := coerceDuration(v); !valid || b < 0 {
			errs = append(errs, "field 'break_hours' must be a number 0 or greater, or null")
		}
	}

	if v, ok := fields["work_package_id"]; ok && v != nil {
		if id, valid := coerceInt(v); !valid || id <= 0 {
			errs = append(errs, "field 'work_package_id' must be a positive integer or null")
		}
	}

	return errs
}

// buildEntry constructs the normalized entry. Returns nil when the
// entry resolves to nothing loggable (zero duration).
func (p *Parser) buildEntry(fields map[string]any, date, cursor string) *model.WorkLogEntry {
	project, _ := fields["project"].(string)
	subject, _ := fields["subject"].(string)
	if subject == "" {
		subject, _ = fields["description"].(string)
	}
	subject = strings.TrimSpace(subject)
	if project == "" || subject == "" {
		return nil
	}

	duration, _ := coerceDuration(fields["duration_hours"])
	if duration <= 0 {
		return nil
	}

	isScrum, _ := fields["is_scrum"].(bool)
	workPackageID, _ := coerceInt(fields["work_package_id"])

	breakHours := 0.0
	if v, ok := fields["break_hours"]; ok && v != nil {
		breakHours, _ = coerceDuration(v)
	}
	breakMinutes := int(math.Round(breakHours * 60))

	activity, _ := fields["activity"].(string)
	if activity == "" {
		activity = DetermineActivity(subject)
	}

	start := cursor
	if isScrum {
		start = scrumFixedStart
	} else if breakMinutes > 0 {
		start = timefmt.AddHours(cursor, breakHours)
	}

	return &model.WorkLogEntry{
		Project:          project,
		ProjectID:        p.projectMappings[project],
		Subject:          subject,
		Activity:         activity,
		DurationHours:    duration,
		BreakHours:       breakHours,
		BreakMinutes:     breakMinutes,
		IsScrum:          isScrum,
		WorkPackageID:    workPackageID,
		EntryDate:        date,
		ProvisionalStart: start,
	}
}

var datePattern = regexp.MustCompile(`^(\w+)-(\d{1,2})-(\d{4})$`)

// ParseDateString parses a "month-day-year" date like "sept-07-2025"
// into YYYY-MM-DD, rejecting impossible calendar dates.
func ParseDateString(dateStr string) (string, error) {
	match := datePattern.FindStringSubmatch(strings.ToLower(dateStr))
	if match == nil {
		return "", fmt.Errorf("date must be in format 'month-day-year' (e.g. 'sept-07-2025'), got %q", dateStr)
	}

	month, ok := monthNames[match[1]]
	if !ok {
		return "", fmt.Errorf("invalid month %q", match[1])
	}

	day, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	if year < 1900 || year > 3000 {
		return "", fmt.Errorf("invalid year: %d", year)
	}

	// time.Date normalizes overflow (feb-30 becomes mar-01); a changed
	// day or month means the input date does not exist.
	check := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if check.Year() != year || int(check.Month()) != month || check.Day() != day {
		return "", fmt.Errorf("invalid date: %s", dateStr)
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// DetermineActivity infers the activity category from the subject text:
// case-insensitive substring match against the keyword table, first
// match wins, defaulting to Development.
func DetermineActivity(subject string) string {
	lower := strings.ToLower(subject)
	for _, kw := range activityKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.activity
		}
	}
	return defaultActivity
}

// coerceDuration accepts numeric values and "<n>h"-style strings.
func coerceDuration(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(n), "h")
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// coerceInt accepts numeric values and numeric strings.
func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
