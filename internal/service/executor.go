package service

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-social-platform/internal/fanout"
	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
)

// Executor применяет шаги задач fan-out к хранилищам.
// Каждый шаг безопасен для повтора в рамках at-least-once доставки:
// привязки тем и уведомления защищены собственными признаками.
type Executor struct {
	posts         storage.Posts
	members       storage.Members
	channels      storage.Channels
	topics        storage.Topics
	mappings      storage.TopicMappings
	notifications storage.Notifications
	relations     storage.Relations
}

var _ fanout.Executor = (*Executor)(nil)

// NewExecutor создаёт исполнителя шагов.
func NewExecutor(deps Deps) *Executor {
	return &Executor{
		posts:         deps.Posts,
		members:       deps.Members,
		channels:      deps.ChannelStats,
		topics:        deps.Topics,
		mappings:      deps.TopicMappings,
		notifications: deps.Notifications,
		relations:     deps.Relations,
	}
}

// Execute выполняет один шаг. Ошибка содержит коллекцию и ключ для ручного восстановления.
func (e *Executor) Execute(ctx context.Context, task models.Task, st models.Step) error {
	const op = "service/executor/Execute"

	switch st.Kind {
	case models.StepMemberCounter:
		c := models.MemberCounter(st.Counter)
		if !c.Valid() {
			return fmt.Errorf("%s: unknown member counter %q", op, st.Counter)
		}
		if err := e.members.IncrementMemberCounter(ctx, st.Target, c); err != nil {
			return fmt.Errorf("%s: member_statistics %s.%s: %w", op, st.Target, c, err)
		}

	case models.StepChannelCounter:
		c := models.ChannelCounter(st.Counter)
		if !c.Valid() {
			return fmt.Errorf("%s: unknown channel counter %q", op, st.Counter)
		}
		if err := e.channels.IncrementChannelCounter(ctx, st.Target, c); err != nil {
			return fmt.Errorf("%s: channel_statistics %s.%s: %w", op, st.Target, c, err)
		}

	case models.StepTopicCounter:
		c := models.TopicCounter(st.Counter)
		if !c.Valid() {
			return fmt.Errorf("%s: unknown topic counter %q", op, st.Counter)
		}
		if err := e.topics.IncrementTopicCounter(ctx, st.Target, c); err != nil {
			return fmt.Errorf("%s: topic %s.%s: %w", op, st.Target, c, err)
		}

	case models.StepPostCounter:
		c := models.PostCounter(st.Counter)
		if !c.Valid() {
			return fmt.Errorf("%s: unknown post counter %q", op, st.Counter)
		}
		if err := e.posts.IncrementPostCounter(ctx, st.Target, c); err != nil {
			return fmt.Errorf("%s: post %s.%s: %w", op, st.Target, c, err)
		}

	case models.StepTopicAttach:
		if st.Topic == nil {
			return fmt.Errorf("%s: topic_attach without topic", op)
		}
		return e.AttachTopic(ctx, task.Post, *st.Topic, task.OccurredAt)

	case models.StepTopicDetach:
		if st.Topic == nil {
			return fmt.Errorf("%s: topic_detach without topic", op)
		}
		return e.DetachTopic(ctx, task.Post, *st.Topic, task.OccurredAt)

	case models.StepBrowsingHistory:
		return e.recordHistory(ctx, task, st.Target)

	case models.StepNotify:
		if st.Notice == nil {
			return fmt.Errorf("%s: notify without notice", op)
		}
		return e.Notify(ctx, task.Post, *st.Notice, task.OccurredAt)

	default:
		return fmt.Errorf("%s: unknown step kind %q", op, st.Kind)
	}

	return nil
}

// recordHistory пишет отношение history (зритель, пост).
func (e *Executor) recordHistory(ctx context.Context, task models.Task, viewerID string) error {
	const op = "service/executor/recordHistory"

	rel := models.Relation{
		Table:        models.RelationHistory,
		PartitionKey: viewerID,
		RowKey:       task.Post.PostID,
		IsActive:     true,
		Props: map[string]any{
			"channel_id":   task.Post.ChannelID,
			"author_id":    task.Post.AuthorID,
			"created_time": task.OccurredAt.Unix(),
		},
		UpdatedAt: task.OccurredAt,
	}

	if err := e.relations.UpsertEntity(ctx, rel, models.UpsertReplace); err != nil {
		return fmt.Errorf("%s: history %s/%s: %w", op, viewerID, task.Post.PostID, err)
	}

	return nil
}
