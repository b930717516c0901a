package git

import (
	"context"
	"strconv"
	"strings"
)

// Divergence holds commits-ahead and commits-behind counts for a branch
// relative to a base.
type Divergence struct {
	Ahead  int
	Behind int
}

// AheadBehind computes how many commits branch is ahead of and behind base.
// Comparing a branch with itself short-circuits to {0,0}. Failures (missing
// refs, unrelated histories) also yield {0,0}: divergence is advisory
// display data and must never fail an inventory.
func (r *CommandRunner) AheadBehind(ctx context.Context, branch, base string) Divergence {
	if branch == base {
		return Divergence{}
	}

	output, err := r.Run(ctx, "rev-list", "--left-right", "--count", branch+"..."+base)
	if err != nil {
		return Divergence{}
	}

	fields := strings.Fields(output)
	if len(fields) != 2 {
		return Divergence{}
	}

	ahead, err := strconv.Atoi(fields[0])
	if err != nil {
		return Divergence{}
	}
	behind, err := strconv.Atoi(fields[1])
	if err != nil {
		return Divergence{}
	}

	return Divergence{Ahead: ahead, Behind: behind}
}
