package fanout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-platform/internal/config"
	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"github.com/pribylovaa/go-social-platform/pkg/log"
)

// storeTimeout ограничивает запись/чтение outbox, не зависящие от контекста запроса.
const storeTimeout = 5 * time.Second

// Outbox — диспетчер с сохранением задач и пулом воркеров.
type Outbox struct {
	store storage.Outbox
	exec  Executor
	cfg   config.FanoutConfig

	kick chan struct{}
	now  func() time.Time

	// фоновые прогоны задач, которые не удалось сохранить
	detached sync.WaitGroup
}

// NewOutbox создаёт диспетчер. Воркеры запускаются через Run.
func NewOutbox(store storage.Outbox, exec Executor, cfg config.FanoutConfig) *Outbox {
	return &Outbox{
		store: store,
		exec:  exec,
		cfg:   cfg,
		kick:  make(chan struct{}, 1),
		now:   time.Now,
	}
}

// Dispatch сохраняет задачу и будит воркер. Если сохранить не удалось,
// задача выполняется в фоне без повторов.
func (o *Outbox) Dispatch(ctx context.Context, task models.Task) {
	const op = "fanout/Outbox.Dispatch"

	ctx = context.WithoutCancel(ctx)
	lg := log.From(ctx).With("op", op)

	now := o.now().UTC()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.OccurredAt.IsZero() {
		task.OccurredAt = now
	}
	task.Status = models.TaskPending
	task.NextAttemptAt = now
	task.LeaseUntil = nil
	task.CreatedAt = now
	task.UpdatedAt = now

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	err := o.store.EnqueueTask(sctx, task)
	cancel()

	if err != nil {
		TasksTotal.WithLabelValues("enqueue_failed").Inc()
		lg.Error("storage error on EnqueueTask, running fanout detached",
			slog.String("task_id", task.ID),
			slog.String("operation", task.Operation),
			slog.String("err", err.Error()),
		)

		o.detached.Add(1)
		go func() {
			defer o.detached.Done()

			tctx, tlg := log.With(ctx, "task_id", task.ID, "operation", task.Operation)
			if runSteps(tctx, o.exec, &task) > 0 {
				TasksTotal.WithLabelValues("fallback").Inc()
				logUnfinished(tlg, task, "fanout step not applied")
			}
		}()

		return
	}

	select {
	case o.kick <- struct{}{}:
	default:
	}
}

// Run запускает cfg.Workers воркеров и блокируется до отмены ctx.
// Начатые задачи дорабатываются до конца.
func (o *Outbox) Run(ctx context.Context) {
	lg := log.From(ctx)

	workers := o.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	lg.Info("fanout workers started",
		slog.Int("workers", workers),
		slog.Duration("poll_interval", o.cfg.PollInterval),
	)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			o.worker(log.Into(ctx, lg.With("worker", id)))
		}(i)
	}

	wg.Wait()
	lg.Info("fanout workers stopped")
}

// Wait ждёт завершения фоновых прогонов несохранённых задач.
func (o *Outbox) Wait() {
	o.detached.Wait()
}

func (o *Outbox) worker(ctx context.Context) {
	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()

	for {
		o.drain(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-o.kick:
		}
	}
}

// drain захватывает и обрабатывает задачи по одной, пока есть готовые.
func (o *Outbox) drain(ctx context.Context) {
	const op = "fanout/Outbox.drain"

	for ctx.Err() == nil {
		tasks, err := o.store.ClaimDueTasks(ctx, o.now().UTC(), o.cfg.Lease, 1)
		if err != nil {
			if ctx.Err() == nil {
				log.From(ctx).Warn("storage error on ClaimDueTasks",
					slog.String("op", op),
					slog.String("err", err.Error()),
				)
			}
			return
		}

		if len(tasks) == 0 {
			return
		}

		o.process(context.WithoutCancel(ctx), tasks[0])
	}
}

// process выполняет невыполненные шаги задачи и сохраняет результат:
// done, повтор с задержкой или dead после MaxAttempts.
func (o *Outbox) process(ctx context.Context, task models.Task) {
	const op = "fanout/Outbox.process"

	ctx, lg := log.With(ctx, "op", op, "task_id", task.ID, "operation", task.Operation)

	runSteps(ctx, o.exec, &task)

	task.Attempts++
	now := o.now().UTC()
	task.LeaseUntil = nil
	task.UpdatedAt = now

	switch {
	case task.Completed():
		task.Status = models.TaskDone
		TasksTotal.WithLabelValues("done").Inc()
	case task.Attempts >= o.cfg.MaxAttempts:
		task.Status = models.TaskDead
		TasksTotal.WithLabelValues("dead").Inc()
		logUnfinished(lg, task, "fanout task dead, step requires manual recovery")
	default:
		delay := o.backoff(task.Attempts)
		task.NextAttemptAt = now.Add(delay)
		TasksTotal.WithLabelValues("retry").Inc()
		lg.Info("fanout task scheduled for retry",
			slog.Int("attempt", task.Attempts),
			slog.Duration("delay", delay),
			slog.Int("pending_steps", len(task.Pending())),
		)
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := o.store.SaveTask(sctx, task); err != nil {
		// Аренда истечёт, и задача будет захвачена снова; выполненные шаги
		// не сохранились и повторятся.
		lg.Error("storage error on SaveTask", slog.String("err", err.Error()))
	}
}

// backoff = base * 2^(attempt-1), не больше BackoffMax.
func (o *Outbox) backoff(attempt int) time.Duration {
	d := o.cfg.BackoffBase
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= o.cfg.BackoffMax {
			return o.cfg.BackoffMax
		}
	}

	if o.cfg.BackoffMax > 0 && d > o.cfg.BackoffMax {
		return o.cfg.BackoffMax
	}

	return d
}
