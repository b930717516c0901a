package output_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sweepit.dev/sweepit/internal/analyze"
	"sweepit.dev/sweepit/internal/git"
	"sweepit.dev/sweepit/internal/output"
)

func TestFormatBranchRecord(t *testing.T) {
	date := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	record := analyze.BranchRecord{
		RefEntry: git.RefEntry{
			Ref:               "feature/login",
			Name:              "feature/login",
			Type:              git.BranchTypeLocal,
			LastCommitDate:    &date,
			LastCommitSubject: "add login form",
		},
		IsMerged: false,
		Ahead:    2,
		Behind:   1,
	}

	line := output.FormatBranchRecord(record, "main")
	assert.Contains(t, line, "feature/login")
	assert.Contains(t, line, "unmerged")
	assert.Contains(t, line, "+2/-1")
	assert.Contains(t, line, "2026-03-14")
	assert.Contains(t, line, "add login form")
	assert.NotContains(t, line, "(current)")

	current := analyze.BranchRecord{
		RefEntry: git.RefEntry{Ref: "main", Name: "main", Type: git.BranchTypeLocal},
		IsMerged: true,
	}
	line = output.FormatBranchRecord(current, "main")
	assert.Contains(t, line, "(current)")
	assert.Contains(t, line, "merged")
}
