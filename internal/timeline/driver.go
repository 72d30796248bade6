package timeline

import (
	"context"
	"time"
)

// Run drives a controller with a ticker until the run completes or ctx is
// done, for hosts that have no frame loop of their own. The controller is
// started if it is not already running. When ctx ends first the run is
// canceled, so no tick happens after Run returns.
func Run(ctx context.Context, c *Controller, interval time.Duration) error {
	if interval <= 0 {
		return invalid("tick interval must be positive, got %s", interval)
	}

	c.Start()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !c.Tick() {
			return nil
		}
		select {
		case <-ctx.Done():
			c.Cancel()
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
