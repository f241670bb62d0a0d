package git

import (
	"context"
	"fmt"

	"github.com/sourcegraph/lsif-query/internal/command"
)

// TopLevel returns the root of the git project containing the given directory.
func TopLevel(ctx context.Context, dir string) (string, error) {
	output, err := command.Run(ctx, dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to get toplevel: %v\n%s", err, output)
	}

	return output, nil
}
