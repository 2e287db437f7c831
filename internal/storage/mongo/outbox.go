package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *Mongo) EnqueueTask(ctx context.Context, t models.Task) error {
	const op = "storage/mongo/EnqueueTask"

	if _, err := m.outbox.InsertOne(ctx, t); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ClaimDueTasks захватывает задачи по одной через findOneAndUpdate,
// поэтому два воркера никогда не получат одну задачу.
func (m *Mongo) ClaimDueTasks(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]models.Task, error) {
	const op = "storage/mongo/ClaimDueTasks"

	filter := bson.D{
		{Key: "status", Value: models.TaskPending},
		{Key: "next_attempt_at", Value: bson.D{{Key: "$lte", Value: now}}},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "lease_until", Value: nil}},
			bson.D{{Key: "lease_until", Value: bson.D{{Key: "$lte", Value: now}}}},
		}},
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "lease_until", Value: now.Add(lease)}}}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "next_attempt_at", Value: 1}}).
		SetReturnDocument(options.After)

	var out []models.Task
	for limit <= 0 || len(out) < limit {
		var t models.Task
		err := m.outbox.FindOneAndUpdate(ctx, filter, update, opts).Decode(&t)
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			break
		}

		if err != nil {
			return out, fmt.Errorf("%s: %w", op, err)
		}

		out = append(out, t)
	}

	return out, nil
}

func (m *Mongo) SaveTask(ctx context.Context, t models.Task) error {
	const op = "storage/mongo/SaveTask"

	res, err := m.outbox.ReplaceOne(ctx, bson.D{{Key: "_id", Value: t.ID}}, t)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (m *Mongo) ReleaseExpiredLeases(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage/mongo/ReleaseExpiredLeases"

	res, err := m.outbox.UpdateMany(ctx,
		bson.D{
			{Key: "status", Value: models.TaskPending},
			{Key: "lease_until", Value: bson.D{{Key: "$lte", Value: now}}},
		},
		bson.D{{Key: "$unset", Value: bson.D{{Key: "lease_until", Value: ""}}}},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.ModifiedCount, nil
}

func (m *Mongo) PurgeFinished(ctx context.Context, before time.Time) (int64, error) {
	const op = "storage/mongo/PurgeFinished"

	res, err := m.outbox.DeleteMany(ctx, bson.D{
		{Key: "status", Value: models.TaskDone},
		{Key: "updated_at", Value: bson.D{{Key: "$lt", Value: before}}},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.DeletedCount, nil
}
