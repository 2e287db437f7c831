package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-social-platform/internal/keys"
	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"github.com/pribylovaa/go-social-platform/pkg/log"
)

// AttachTopic связывает тему с постом и засчитывает связь в total_post_count
// ровно один раз.
//
// Порядок:
//  1. связь (topic, post) переводится в Active; если она уже была активна,
//     пост уже посчитан и шаг завершается;
//  2. find-and-increment total_post_count существующей темы;
//  3. если темы нет — upsert по id темы с начальными полями и total_post_count = 1,
//     параллельные создатели сходятся к одному документу;
//  4. если 2–3 не удались, связь откатывается, чтобы повтор шага посчитал её снова.
func (e *Executor) AttachTopic(ctx context.Context, post models.PostRef, topic models.TopicInfo, at time.Time) error {
	const op = "service/topics/AttachTopic"

	m := mappingFor(post, topic, at)

	activated, err := e.mappings.ActivateMapping(ctx, m)
	if err != nil {
		return fmt.Errorf("%s: topic_post %s: %w", op, m.ID, err)
	}

	if !activated {
		return nil
	}

	if err := e.countTopic(ctx, post, topic, at); err != nil {
		if _, rerr := e.mappings.DeactivateMapping(ctx, m.ID); rerr != nil {
			log.From(ctx).Error("storage error on DeactivateMapping, topic_post left active without count",
				"op", op, "mapping_id", m.ID, "topic_id", topic.TopicID, "err", rerr)
		}
		return fmt.Errorf("%s: topic %s: %w", op, topic.TopicID, err)
	}

	return nil
}

func (e *Executor) countTopic(ctx context.Context, post models.PostRef, topic models.TopicInfo, at time.Time) error {
	err := e.topics.IncrementTopicCounter(ctx, topic.TopicID, models.TopicPostCount)
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	return e.topics.UpsertTopic(ctx, models.Topic{
		ID:             topic.TopicID,
		Content:        topic.Content,
		ChannelID:      post.ChannelID,
		CreatedTime:    at,
		Status:         models.TopicActive,
		TotalPostCount: 1,
	})
}

// DetachTopic мягко удаляет связь темы с постом. total_post_delete_count темы
// растёт только при переходе связи из активной в удалённую.
func (e *Executor) DetachTopic(ctx context.Context, post models.PostRef, topic models.TopicInfo, at time.Time) error {
	const op = "service/topics/DetachTopic"

	id := keys.MappingID(topic.TopicID, post.PostID)

	deactivated, err := e.mappings.DeactivateMapping(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: topic_post %s: %w", op, id, err)
	}

	if !deactivated {
		return nil
	}

	if err := e.topics.IncrementTopicCounter(ctx, topic.TopicID, models.TopicPostDeleteCount); err != nil {
		if _, rerr := e.mappings.ActivateMapping(ctx, mappingFor(post, topic, at)); rerr != nil {
			log.From(ctx).Error("storage error on ActivateMapping, topic_post left deleted without count",
				"op", op, "mapping_id", id, "topic_id", topic.TopicID, "err", rerr)
		}
		return fmt.Errorf("%s: topic %s: %w", op, topic.TopicID, err)
	}

	return nil
}

func mappingFor(post models.PostRef, topic models.TopicInfo, at time.Time) models.TopicPostMapping {
	return models.TopicPostMapping{
		ID:          keys.MappingID(topic.TopicID, post.PostID),
		TopicID:     topic.TopicID,
		PostID:      post.PostID,
		Title:       post.Title,
		ChannelID:   post.ChannelID,
		MemberID:    post.AuthorID,
		CreatedTime: at,
		Status:      models.MappingActive,
	}
}
