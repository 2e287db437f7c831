// fanout — доставка вторичных записей после основной операции.
//
// Операция сервиса собирает models.Task (упорядоченный список шагов) и отдаёт её Dispatcher.
// Outbox сохраняет задачу и будит пул воркеров; воркеры выполняют невыполненные шаги
// по порядку, повторяют задачу с экспоненциальной задержкой и после max_attempts
// помечают её dead. Inline выполняет шаги сразу в вызывающей горутине.
package fanout

import (
	"context"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/pkg/log"
)

// Executor выполняет один шаг задачи.
type Executor interface {
	Execute(ctx context.Context, task models.Task, step models.Step) error
}

// Dispatcher принимает задачу после успешной основной записи.
// Dispatch не возвращает ошибок и не зависит от отмены контекста запроса.
type Dispatcher interface {
	Dispatch(ctx context.Context, task models.Task)
}

// runSteps выполняет невыполненные шаги по порядку. Ошибка шага не останавливает
// последующие. Возвращает число шагов, завершившихся ошибкой.
func runSteps(ctx context.Context, exec Executor, task *models.Task) int {
	lg := log.From(ctx)

	failed := 0
	for _, i := range task.Pending() {
		st := &task.Steps[i]
		st.Attempts++

		start := time.Now()
		err := exec.Execute(ctx, *task, *st)
		StepDuration.WithLabelValues(string(st.Kind)).Observe(time.Since(start).Seconds())

		if err != nil {
			failed++
			st.LastError = err.Error()
			StepsTotal.WithLabelValues(string(st.Kind), "error").Inc()
			lg.Warn("fanout step failed",
				slog.String("task_id", task.ID),
				slog.String("kind", string(st.Kind)),
				slog.String("target", stepTarget(*st)),
				slog.String("counter", st.Counter),
				slog.Int("attempt", st.Attempts),
				slog.String("err", err.Error()),
			)
			continue
		}

		st.Done = true
		st.LastError = ""
		StepsTotal.WithLabelValues(string(st.Kind), "ok").Inc()
	}

	return failed
}

// stepTarget — ключ сущности шага для логов ручного восстановления.
func stepTarget(st models.Step) string {
	switch {
	case st.Topic != nil:
		return st.Topic.TopicID
	case st.Notice != nil:
		return st.Notice.RecipientID
	default:
		return st.Target
	}
}

// logUnfinished пишет каждый невыполненный шаг на уровне Error.
func logUnfinished(lg *slog.Logger, task models.Task, msg string) {
	for _, i := range task.Pending() {
		st := task.Steps[i]
		lg.Error(msg,
			slog.String("task_id", task.ID),
			slog.String("operation", task.Operation),
			slog.String("post_id", task.Post.PostID),
			slog.String("kind", string(st.Kind)),
			slog.String("target", stepTarget(st)),
			slog.String("counter", st.Counter),
			slog.String("last_error", st.LastError),
		)
	}
}

// Inline выполняет шаги сразу, в горутине вызывающего. Повторов нет:
// неудачные шаги только логируются.
type Inline struct {
	exec Executor
}

// NewInline создаёт синхронный диспетчер.
func NewInline(exec Executor) *Inline {
	return &Inline{exec: exec}
}

func (d *Inline) Dispatch(ctx context.Context, task models.Task) {
	ctx, lg := log.With(context.WithoutCancel(ctx), "task_id", task.ID, "operation", task.Operation)

	if runSteps(ctx, d.exec, &task) > 0 {
		TasksTotal.WithLabelValues("inline_failed").Inc()
		logUnfinished(lg, task, "fanout step not applied")
		return
	}

	TasksTotal.WithLabelValues("done").Inc()
}
