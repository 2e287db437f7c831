// storage описывает контракты хранилищ posts-сервиса: по одному интерфейсу на вид сущности.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/go-social-platform/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище (в т.ч. инкремент не нашёл документ).
	ErrNotFound = errors.New("not found")
	// ErrConflict — запись отклонена условием (версия/состояние изменились).
	ErrConflict = errors.New("conflict")
	// ErrAlreadyExists — конфликт уникальности ключа.
	ErrAlreadyExists = errors.New("already exists")
)

// Posts — коллекция post.
type Posts interface {
	// InsertPost вставляет новый пост. Занятый _id — ErrAlreadyExists.
	InsertPost(ctx context.Context, p models.Post) error

	// PostByID возвращает пост (включая удалённые). Нет записи — ErrNotFound.
	PostByID(ctx context.Context, id string) (*models.Post, error)

	// EditPost атомарно: дописывает снимок в edited, применяет содержимое и статус,
	// обнуляет liked/undo liked/disliked/undo disliked, total_edit_count +1,
	// last_edited_time = At, version +1. Условие: version == expectedVersion и пост не удалён.
	// Нет записи — ErrNotFound; условие не выполнено — ErrConflict.
	EditPost(ctx context.Context, id string, expectedVersion int64, e models.PostEdit) error

	// AttachImages задаёт изображения и переводит пост AwaitingImages -> Published.
	// Условие: version == expectedVersion и status == AwaitingImages; иначе ErrConflict.
	AttachImages(ctx context.Context, id string, expectedVersion int64, images []string) error

	// MarkPostDeleted выставляет status = Deleted при version == expectedVersion.
	MarkPostDeleted(ctx context.Context, id string, expectedVersion int64) error

	// IncrementPostCounter выполняет $inc +1. Нет документа — ErrNotFound.
	IncrementPostCounter(ctx context.Context, id string, c models.PostCounter) error
}

// Members — коллекции member и member_statistics.
type Members interface {
	// MemberByID — нет записи: ErrNotFound.
	MemberByID(ctx context.Context, id string) (*models.Member, error)

	// IncrementMemberCounter — $inc +1 без upsert; нет документа — ErrNotFound.
	IncrementMemberCounter(ctx context.Context, memberID string, c models.MemberCounter) error
}

// Channels — коллекции channel и channel_statistics.
type Channels interface {
	// ChannelByID — нет записи: ErrNotFound.
	ChannelByID(ctx context.Context, id string) (*models.Channel, error)

	// IncrementChannelCounter — $inc +1 без upsert; нет документа — ErrNotFound.
	IncrementChannelCounter(ctx context.Context, channelID string, c models.ChannelCounter) error
}

// ChannelDirectory — справочник активности каналов.
type ChannelDirectory interface {
	// IsActive — канал существует и открыт для публикаций.
	IsActive(ctx context.Context, channelID string) (bool, error)
}

// Topics — коллекция topic.
type Topics interface {
	// TopicByID — нет записи: ErrNotFound.
	TopicByID(ctx context.Context, id string) (*models.Topic, error)

	// IncrementTopicCounter — атомарный find-and-increment; нет документа — ErrNotFound.
	IncrementTopicCounter(ctx context.Context, id string, c models.TopicCounter) error

	// UpsertTopic: $inc total_post_count +1 и $setOnInsert остальных начальных полей
	// по ключу t.ID. Гонка создателей сходится к одному документу.
	UpsertTopic(ctx context.Context, t models.Topic) error
}

// TopicMappings — коллекция topic_post.
type TopicMappings interface {
	// MappingByID — нет записи: ErrNotFound.
	MappingByID(ctx context.Context, id string) (*models.TopicPostMapping, error)

	// ActivateMapping записывает связь со status = Active и обновляет денормализованные поля.
	// activated == true только при переходе из «нет/удалена» в «активна».
	ActivateMapping(ctx context.Context, tp models.TopicPostMapping) (activated bool, err error)

	// DeactivateMapping переводит связь в Deleted.
	// deactivated == true только при переходе из «активна» в «удалена».
	DeactivateMapping(ctx context.Context, id string) (deactivated bool, err error)
}

// Notifications — коллекции notification и notification_statistics.
type Notifications interface {
	// UpsertNotification записывает уведомление по ключу (MemberID, NoticeID),
	// сохраняя признак Counted. Возвращает, было ли событие уже учтено.
	UpsertNotification(ctx context.Context, n models.Notification) (counted bool, err error)

	// MarkNotificationCounted фиксирует, что событие учтено в счётчике.
	MarkNotificationCounted(ctx context.Context, memberID, noticeID string) error

	// IncrementNotificationCounter — $inc +1 счётчика категории без upsert; нет документа — ErrNotFound.
	IncrementNotificationCounter(ctx context.Context, memberID string, c models.NotificationCategory) error
}

// Relations — Relation Store (partition key, row key).
type Relations interface {
	// UpsertEntity пишет сущность в режиме Replace (props целиком) или Merge (объединение props).
	UpsertEntity(ctx context.Context, r models.Relation, mode models.UpsertMode) error

	// ListEntities возвращает сущности по фильтру в порядке (partition key, row key).
	ListEntities(ctx context.Context, f models.RelationFilter) ([]models.Relation, error)
}

// Outbox — очередь задач вторичных записей.
type Outbox interface {
	// EnqueueTask сохраняет новую задачу. Занятый ID — ErrAlreadyExists.
	EnqueueTask(ctx context.Context, t models.Task) error

	// ClaimDueTasks захватывает до limit задач pending с NextAttemptAt <= now
	// без действующей аренды и выставляет LeaseUntil = now + lease.
	ClaimDueTasks(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]models.Task, error)

	// SaveTask сохраняет состояние задачи после прогона (шаги, статус, попытки, аренда).
	SaveTask(ctx context.Context, t models.Task) error

	// ReleaseExpiredLeases снимает истёкшие аренды pending-задач.
	ReleaseExpiredLeases(ctx context.Context, now time.Time) (int64, error)

	// PurgeFinished удаляет завершённые (done) задачи, обновлённые раньше before.
	PurgeFinished(ctx context.Context, before time.Time) (int64, error)
}

// Images — проверка загруженных изображений.
type Images interface {
	// ImageExists — объект с таким полным именем существует.
	ImageExists(ctx context.Context, fullname string) (bool, error)
}
