package openproject

import (
	"fmt"
	"strconv"
	"strings"
)

// User is the OpenProject user resource.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// Project is the OpenProject project resource.
type Project struct {
	ID         int    `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// Status is the OpenProject status resource.
type Status struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	IsClosed  bool   `json:"isClosed"`
	IsDefault bool   `json:"isDefault"`
}

// WorkPackage is the OpenProject work package resource,
// reduced to the fields the pipeline reads.
type WorkPackage struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
}

// TimeEntry is the OpenProject time entry resource.
type TimeEntry struct {
	ID      int          `json:"id"`
	SpentOn string       `json:"spentOn"`
	Hours   string       `json:"hours"` // ISO-8601 duration, e.g. "PT2.5H"
	Comment *formattable `json:"comment,omitempty"`
	Links   struct {
		WorkPackage halLink `json:"workPackage"`
	} `json:"_links"`
}

// WorkPackageID extracts the work package id from the entry's HAL link.
func (t TimeEntry) WorkPackageID() int {
	href := t.Links.WorkPackage.Href
	idx := strings.LastIndexByte(href, '/')
	if idx < 0 {
		return 0
	}
	id, err := strconv.Atoi(href[idx+1:])
	if err != nil {
		return 0
	}
	return id
}

// HoursValue parses the ISO-8601 hours duration. Unparsable values
// yield 0.
func (t TimeEntry) HoursValue() float64 {
	return ParseHours(t.Hours)
}

// CommentText returns the raw comment text, if any.
func (t TimeEntry) CommentText() string {
	if t.Comment == nil {
		return ""
	}
	return t.Comment.Raw
}

// CreateWorkPackageRequest holds the inputs for CreateWorkPackage.
type CreateWorkPackageRequest struct {
	ProjectID         int
	Subject           string
	Description       string
	StatusID          int
	AccountableUserID int
	AssigneeUserID    int
}

// CreateTimeEntryRequest holds the inputs for CreateTimeEntry.
type CreateTimeEntryRequest struct {
	WorkPackageID int
	SpentOn       string // YYYY-MM-DD
	Hours         float64
	ActivityID    int
	Comment       string
}

// FormatHours renders fractional hours as an ISO-8601 duration the API
// accepts, e.g. 2.5 -> "PT2.5H".
func FormatHours(hours float64) string {
	return fmt.Sprintf("PT%sH", strconv.FormatFloat(hours, 'f', -1, 64))
}

// ParseHours parses "PT<n>H" durations. Unparsable input yields 0.
func ParseHours(s string) float64 {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "PT"), "H")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Every work package is created with the default type: the original
// system mapped all activity categories to type 1.
const defaultTypeID = 1

// ---- wire payloads ----

type halLink struct {
	Href string `json:"href"`
}

type formattable struct {
	Raw string `json:"raw"`
}

type workPackagePayload struct {
	Subject     string       `json:"subject"`
	Description *formattable `json:"description,omitempty"`
	Links       struct {
		Project     halLink  `json:"project"`
		Type        *halLink `json:"type,omitempty"`
		Status      *halLink `json:"status,omitempty"`
		Accountable *halLink `json:"accountable,omitempty"`
		Assignee    *halLink `json:"assignee,omitempty"`
	} `json:"_links"`
}

type timeEntryPayload struct {
	SpentOn string       `json:"spentOn"`
	Hours   string       `json:"hours"`
	Comment *formattable `json:"comment,omitempty"`
	Links   struct {
		WorkPackage halLink `json:"workPackage"`
		Activity    halLink `json:"activity"`
	} `json:"_links"`
}

type timeEntryPatch struct {
	Hours   string       `json:"hours"`
	Comment *formattable `json:"comment,omitempty"`
}
