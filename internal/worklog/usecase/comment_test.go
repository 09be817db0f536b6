package usecase_test

import (
	"strings"
	"testing"

	"github.com/robiparvez/openproject-worklogger/internal/worklog/usecase"
)

func TestGenerateComment(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := usecase.GenerateComment("Fix login bug", "Development", 1)
		b := usecase.GenerateComment("Fix login bug", "Development", 1)
		if a != b {
			t.Errorf("same input produced %q and %q", a, b)
		}
	})

	t.Run("keyword templates", func(t *testing.T) {
		got := usecase.GenerateComment("Fix login bug", "Development", 1)
		if !strings.Contains(strings.ToLower(got), "fix login bug") {
			t.Errorf("comment %q should mention the subject", got)
		}

		got = usecase.GenerateComment("API integration work", "Development", 1)
		if !strings.Contains(strings.ToLower(got), "api") {
			t.Errorf("comment %q should use the api template", got)
		}
	})

	t.Run("duration suffixes", func(t *testing.T) {
		short := usecase.GenerateComment("Quick thing", "Development", 1)
		if strings.Contains(short, "completed") {
			t.Errorf("short task got a completion suffix: %q", short)
		}

		medium := usecase.GenerateComment("Quick thing", "Development", 2)
		if !strings.HasSuffix(medium, "Task completed successfully.") {
			t.Errorf("medium task suffix missing: %q", medium)
		}

		long := usecase.GenerateComment("Quick thing", "Development", 4.5)
		if !strings.HasSuffix(long, "Comprehensive work completed with thorough testing.") {
			t.Errorf("long task suffix missing: %q", long)
		}
	})

	t.Run("activity fallback", func(t *testing.T) {
		got := usecase.GenerateComment("Miscellaneous chores", "Testing", 1)
		if got == "" {
			t.Fatal("comment must never be empty")
		}
	})
}
