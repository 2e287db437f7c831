package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *Mongo) TopicByID(ctx context.Context, id string) (*models.Topic, error) {
	const op = "storage/mongo/TopicByID"

	var out models.Topic
	if err := m.topics.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.CreatedTime = out.CreatedTime.UTC()

	return &out, nil
}

// IncrementTopicCounter — атомарный find-and-increment.
func (m *Mongo) IncrementTopicCounter(ctx context.Context, id string, c models.TopicCounter) error {
	const op = "storage/mongo/IncrementTopicCounter"

	err := m.topics.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: string(c), Value: 1}}}},
		options.FindOneAndUpdate().SetProjection(bson.D{{Key: "_id", Value: 1}}),
	).Err()
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return fmt.Errorf("%s: %s: %w", op, c, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %s: %w", op, c, err)
	}

	return nil
}

// UpsertTopic создаёт тему с total_post_count = 1 или, если её успели создать,
// увеличивает счётчик существующей. Ключ — t.ID.
func (m *Mongo) UpsertTopic(ctx context.Context, t models.Topic) error {
	const op = "storage/mongo/UpsertTopic"

	filter := bson.D{{Key: "_id", Value: t.ID}}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: string(models.TopicPostCount), Value: 1}}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "content", Value: t.Content},
			{Key: "channel_id", Value: t.ChannelID},
			{Key: "created_time", Value: t.CreatedTime},
			{Key: "status", Value: t.Status},
			{Key: string(models.TopicPostDeleteCount), Value: 0},
			{Key: string(models.TopicHitCount), Value: 0},
			{Key: string(models.TopicLikedCount), Value: 0},
			{Key: string(models.TopicUndoLikedCount), Value: 0},
			{Key: string(models.TopicCommentCount), Value: 0},
			{Key: string(models.TopicSavedCount), Value: 0},
			{Key: string(models.TopicUndoSavedCount), Value: 0},
		}},
	}

	_, err := m.topics.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && mongodriver.IsDuplicateKeyError(err) {
		// Параллельный upsert уже вставил документ: повторяем как обычный инкремент.
		_, err = m.topics.UpdateOne(ctx, filter, update)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m *Mongo) MappingByID(ctx context.Context, id string) (*models.TopicPostMapping, error) {
	const op = "storage/mongo/MappingByID"

	var out models.TopicPostMapping
	if err := m.topicPosts.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.CreatedTime = out.CreatedTime.UTC()

	return &out, nil
}

// ActivateMapping — upsert связи со status = 200; по прежнему документу
// определяем, был ли переход в активное состояние.
func (m *Mongo) ActivateMapping(ctx context.Context, tp models.TopicPostMapping) (bool, error) {
	const op = "storage/mongo/ActivateMapping"

	var prev models.TopicPostMapping
	err := m.topicPosts.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: tp.ID}},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "topic_id", Value: tp.TopicID},
				{Key: "post_id", Value: tp.PostID},
				{Key: "title", Value: tp.Title},
				{Key: "channel_id", Value: tp.ChannelID},
				{Key: "member_id", Value: tp.MemberID},
				{Key: "status", Value: models.MappingActive},
			}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "created_time", Value: tp.CreatedTime}}},
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.Before).
			SetProjection(bson.D{{Key: "status", Value: 1}}),
	).Decode(&prev)

	switch {
	case errors.Is(err, mongodriver.ErrNoDocuments):
		// Документа не было — вставлен новый.
		return true, nil
	case err != nil:
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return prev.Status != models.MappingActive, nil
}

// DeactivateMapping — мягкое удаление связи; true только при переходе из активной.
func (m *Mongo) DeactivateMapping(ctx context.Context, id string) (bool, error) {
	const op = "storage/mongo/DeactivateMapping"

	res, err := m.topicPosts.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "status", Value: models.MappingActive}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: models.MappingDeleted}}}},
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return res.ModifiedCount == 1, nil
}
