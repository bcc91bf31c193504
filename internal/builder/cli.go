package builder

import (
	"io"

	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/cli"
)

// CLI is the terminal front-end together with the resources it holds.
type CLI struct {
	Terminal *cli.Terminal
	Logger   *zap.Logger
	core     *core
}

// Close stops the session and releases connectors.
func (c *CLI) Close() {
	c.core.close()
	_ = c.Logger.Sync()
}

// BuildCLI assembles the terminal front-end over the same use cases as the
// HTTP service.
func BuildCLI(environment string, in io.Reader, out io.Writer, opts cli.Options) (*CLI, error) {
	c, err := buildCore(environment)
	if err != nil {
		return nil, err
	}

	terminal := cli.NewTerminal(c.interview, c.formatters, in, out, opts)
	c.logger.Info("Terminal client built", zap.String("report_format", string(opts.Format)))

	return &CLI{
		Terminal: terminal,
		Logger:   c.logger,
		core:     c,
	}, nil
}
