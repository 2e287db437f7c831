package fanout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-social-platform/internal/config"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"github.com/pribylovaa/go-social-platform/pkg/log"
	"github.com/robfig/cron/v3"
)

// Maintenance периодически снимает истёкшие аренды и удаляет старые завершённые задачи.
type Maintenance struct {
	store     storage.Outbox
	retention time.Duration
	cron      *cron.Cron
	lg        *slog.Logger
	now       func() time.Time
}

// NewMaintenance регистрирует задание по cfg.Maintenance. Запуск — Start.
func NewMaintenance(store storage.Outbox, cfg config.FanoutConfig, lg *slog.Logger) (*Maintenance, error) {
	const op = "fanout/NewMaintenance"

	if lg == nil {
		lg = slog.Default()
	}

	cl := cron.PrintfLogger(slog.NewLogLogger(lg.Handler(), slog.LevelWarn))
	m := &Maintenance{
		store:     store,
		retention: cfg.Retention,
		lg:        lg,
		now:       time.Now,
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
	}

	if _, err := m.cron.AddFunc(cfg.Maintenance, func() {
		m.RunOnce(log.Into(context.Background(), lg))
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// Start запускает планировщик в фоне.
func (m *Maintenance) Start() {
	m.lg.Info("fanout maintenance started")
	m.cron.Start()
}

// Stop останавливает планировщик и ждёт текущий прогон.
func (m *Maintenance) Stop() {
	<-m.cron.Stop().Done()
	m.lg.Info("fanout maintenance stopped")
}

// RunOnce — один прогон обслуживания.
func (m *Maintenance) RunOnce(ctx context.Context) {
	const op = "fanout/Maintenance.RunOnce"

	lg := log.From(ctx).With("op", op)
	now := m.now().UTC()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	released, err := m.store.ReleaseExpiredLeases(ctx, now)
	if err != nil {
		lg.Error("storage error on ReleaseExpiredLeases", slog.String("err", err.Error()))
	}

	purged, err := m.store.PurgeFinished(ctx, now.Add(-m.retention))
	if err != nil {
		lg.Error("storage error on PurgeFinished", slog.String("err", err.Error()))
	}

	if released > 0 || purged > 0 {
		lg.Info("fanout outbox maintained",
			slog.Int64("released", released),
			slog.Int64("purged", purged),
		)
	}
}
