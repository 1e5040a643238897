package scene

import (
	"log/slog"

	"github.com/jward/arbor"
)

// SetCollidersEnabled switches the collider of every node on or off and
// returns how many changed state. A node without a collider is logged and
// skipped; the rest of the batch still runs.
func SetCollidersEnabled(nodes []*arbor.Node, enabled bool, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}
	changed := 0
	for _, n := range nodes {
		c, ok := arbor.Get[*Collider](n)
		if !ok {
			logger.Warn("node has no collider", slog.String("path", arbor.Path(n)), slog.String("id", n.ID))
			continue
		}
		if c.Enabled != enabled {
			changed++
		}
		c.Enabled = enabled
	}
	return changed
}
