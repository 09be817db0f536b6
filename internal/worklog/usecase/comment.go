package usecase

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// commentTemplates maps subject/activity keywords to description
// templates for newly created work packages.
var commentTemplates = map[string][]string{
	"bug":           {"Fixed %s issue", "Resolved bug in %s", "Debugged and fixed %s"},
	"development":   {"Developed %s functionality", "Implemented %s feature", "Created %s module"},
	"testing":       {"Tested %s functionality", "Performed quality assurance on %s"},
	"update":        {"Updated %s", "Enhanced %s functionality"},
	"ui":            {"Improved %s user interface", "Enhanced %s user experience"},
	"api":           {"Integrated %s API", "Developed %s API endpoint"},
	"database":      {"Optimized %s database queries", "Updated %s database schema"},
	"config":        {"Configured %s settings", "Set up %s environment"},
	"documentation": {"Documented %s process", "Created %s documentation"},
	"research":      {"Researched %s solution", "Analyzed %s requirements"},
}

// templateOrder fixes the keyword scan order (map iteration is random).
var templateOrder = []string{
	"bug", "development", "testing", "update", "ui",
	"api", "database", "config", "documentation", "research",
}

// GenerateComment produces a default work-package description from the
// subject and activity. Template choice is a deterministic hash of the
// subject so re-replaying an upload yields identical descriptions.
func GenerateComment(subject, activity string, durationHours float64) string {
	subjectLower := strings.ToLower(subject)

	var templates []string
	for _, key := range templateOrder {
		if strings.Contains(subjectLower, key) {
			templates = commentTemplates[key]
			break
		}
	}

	if templates == nil {
		switch activity {
		case "Development":
			templates = commentTemplates["development"]
		case "Testing":
			templates = commentTemplates["testing"]
		case "Support":
			templates = commentTemplates["bug"]
		default:
			templates = []string{"Worked on %s"}
		}
	}

	h := fnv.New32a()
	h.Write([]byte(subjectLower))
	comment := fmt.Sprintf(templates[int(h.Sum32())%len(templates)], subjectLower)

	if durationHours >= 4 {
		comment += ". Comprehensive work completed with thorough testing."
	} else if durationHours >= 2 {
		comment += ". Task completed successfully."
	}

	return comment
}
