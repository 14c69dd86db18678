package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/crucial707/loanapp/internal/metrics"
	"github.com/crucial707/loanapp/internal/predict"
	"github.com/robfig/cron/v3"
)

// Run starts a cron scheduler that calls job at each tick of expr.
// The caller stops it with the returned scheduler's Stop.
func Run(expr string, job func()) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(expr, job); err != nil {
		return nil, fmt.Errorf("scheduler: invalid cron expr %q: %w", expr, err)
	}
	c.Start()
	return c, nil
}

// ModelReloadJob re-reads the model artifact at path and swaps it into relay.
// A failed read leaves the current model in place.
func ModelReloadJob(relay *predict.Relay, path string, logger *slog.Logger) func() {
	return func() {
		m, err := predict.LoadModel(path)
		if err != nil {
			metrics.IncModelReload("error")
			logger.Error("scheduler: reload model", "path", path, "error", err)
			return
		}
		relay.Swap(m)
		metrics.IncModelReload("ok")
		logger.Info("scheduler: model reloaded", "path", path, "version", m.Version)
	}
}
