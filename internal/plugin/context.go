package plugin

import (
	"log/slog"

	"github.com/marcus/stickies/internal/config"
)

// Context carries host services handed to each plugin on Init.
type Context struct {
	ConfigDir string
	DataDir   string
	Config    *config.Config
	Logger    *slog.Logger
}
