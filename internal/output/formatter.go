package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"sweepit.dev/sweepit/internal/analyze"
	"sweepit.dev/sweepit/internal/git"
)

// colorEnabled is resolved once per process from the terminal profile
var colorEnabled = termenv.EnvColorProfile() != termenv.Ascii

func render(style lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return style.Render(text)
}

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return render(lipgloss.NewStyle().Foreground(lipgloss.Color("6")), branchName+" (current)")
	}
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("12")), branchName)
}

// ColorMerged colors the merged/unmerged marker
func ColorMerged(merged bool) string {
	if merged {
		return render(lipgloss.NewStyle().Foreground(lipgloss.Color("2")), "merged")
	}
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("3")), "unmerged")
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("8")), text)
}

// FormatBranchRecord renders one inventory line for the list output
func FormatBranchRecord(record analyze.BranchRecord, currentBranch string) string {
	var b strings.Builder

	name := record.Ref
	isCurrent := record.Type == git.BranchTypeLocal && record.Ref == currentBranch
	b.WriteString(ColorBranchName(name, isCurrent))

	b.WriteString("  ")
	b.WriteString(ColorMerged(record.IsMerged))

	if record.Ahead > 0 || record.Behind > 0 {
		b.WriteString("  ")
		b.WriteString(ColorDim(fmt.Sprintf("+%d/-%d", record.Ahead, record.Behind)))
	}

	if record.LastCommitDate != nil {
		b.WriteString("  ")
		b.WriteString(ColorDim(record.LastCommitDate.Format("2006-01-02")))
	}

	if record.LastCommitSubject != "" {
		b.WriteString("  ")
		b.WriteString(record.LastCommitSubject)
	}

	return b.String()
}
