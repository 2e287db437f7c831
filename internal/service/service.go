// service содержит бизнес-логику posts-сервиса: жизненный цикл поста,
// сохранение постов и исполнение вторичных записей (fan-out).
package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pribylovaa/go-social-platform/internal/config"
	"github.com/pribylovaa/go-social-platform/internal/fanout"
	"github.com/pribylovaa/go-social-platform/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры (в т.ч. неизвестный/закрытый канал).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated — нет сессии у мутирующей операции.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrPermissionDenied — участник ограничен, не владелец или пост нельзя править.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound — пост отсутствует или удалён.
	ErrNotFound = errors.New("not found")
	// ErrConflict — пост изменился между чтением и записью.
	ErrConflict = errors.New("conflict")
	// ErrInternal — внутренняя ошибка (стораж/БД/контекст).
	ErrInternal = errors.New("internal")
)

// Deps — хранилища, с которыми работает сервис.
// Images может быть nil: тогда наличие изображений не проверяется.
type Deps struct {
	Posts         storage.Posts
	Members       storage.Members
	Channels      storage.ChannelDirectory
	ChannelStats  storage.Channels
	Topics        storage.Topics
	TopicMappings storage.TopicMappings
	Notifications storage.Notifications
	Relations     storage.Relations
	Images        storage.Images
}

// Service — контроллер жизненного цикла поста.
type Service struct {
	posts     storage.Posts
	members   storage.Members
	channels  storage.ChannelDirectory
	relations storage.Relations
	images    storage.Images

	fanout   fanout.Dispatcher
	validate *validator.Validate
	limits   config.LimitsConfig
	timeout  time.Duration
	now      func() time.Time
}

// New создает новый экземпляр Service.
func New(deps Deps, dispatcher fanout.Dispatcher, cfg config.Config) *Service {
	return &Service{
		posts:     deps.Posts,
		members:   deps.Members,
		channels:  deps.Channels,
		relations: deps.Relations,
		images:    deps.Images,
		fanout:    dispatcher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		limits:    cfg.Limits,
		timeout:   cfg.Timeouts.Service,
		now:       time.Now,
	}
}

// withTimeout ограничивает синхронную часть операции. Fan-out этим дедлайном не ограничен.
func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.timeout)
}
