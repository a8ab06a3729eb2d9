package share

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"briefcast/internal/briefing"
)

// Command shares by piping the summary into an external program, such as
// termux-share or a mail client. The title is passed in BRIEFCAST_SHARE_TITLE.
type Command struct {
	name string
	args []string
}

// NewCommand splits a command line on whitespace. An empty line yields nil,
// meaning no native share target.
func NewCommand(line string) *Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return &Command{name: fields[0], args: fields[1:]}
}

func (c *Command) Share(ctx context.Context, title, text string) error {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Env = append(os.Environ(), "BRIEFCAST_SHARE_TITLE="+title)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return briefing.ErrShareCancelled
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 130 {
			return briefing.ErrShareCancelled
		}
		return fmt.Errorf("%s: %w: %s", c.name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
