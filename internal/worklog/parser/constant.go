package parser

// monthNames maps 3-letter and full month names for the
// month-day-year date format, e.g. "sept-07-2025".
var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// activityKeyword pairs a subject keyword with its inferred activity.
// Matching is case-insensitive substring, first match wins, so order
// matters and a map cannot be used.
type activityKeyword struct {
	keyword  string
	activity string
}

var activityKeywords = []activityKeyword{
	{"scrum", "Meeting"},
	{"meeting", "Meeting"},
	{"session", "Meeting"},
	{"clarification", "Meeting"},
	{"setup", "Development"},
	{"enhanced", "Development"},
	{"fixed", "Development"},
	{"fix", "Development"},
	{"route", "Development"},
	{"linkup", "Development"},
	{"template", "Development"},
	{"codes", "Development"},
	{"staging", "Support"},
	{"server", "Support"},
	{"feedback", "Specification"},
	{"recruitment", "Specification"},
	{"profile", "Development"},
	{"view", "Development"},
}

const defaultActivity = "Development"

// Provisional sequencing anchors: non-SCRUM entries start the day at
// 09:00, SCRUM meetings are pinned to 10:00.
const (
	defaultDayStart = "09:00"
	scrumFixedStart = "10:00"
)

// requiredFields is the per-entry validation set.
var requiredFields = []string{"project", "subject", "duration_hours", "activity", "is_scrum"}
