package provider

import (
	"context"
	"log/slog"
)

// WorldEditTrigger opens the external world editor. The trigger is
// fire-and-forget; the editor runs out of process and reports nothing back.
type WorldEditTrigger struct {
	logger *slog.Logger
}

// NewWorldEditTrigger creates a world-edit trigger.
func NewWorldEditTrigger(logger *slog.Logger) *WorldEditTrigger {
	return &WorldEditTrigger{logger: logger}
}

// Open signals the world editor to open.
func (t *WorldEditTrigger) Open(ctx context.Context) string {
	t.logger.Info("world editor opened")
	return "World editor opened!"
}
