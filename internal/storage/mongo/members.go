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

// Документы статистики создаются при онбординге участника/канала вне сервиса,
// поэтому инкременты здесь выполняются без upsert.

func (m *Mongo) MemberByID(ctx context.Context, id string) (*models.Member, error) {
	const op = "storage/mongo/MemberByID"

	var out models.Member
	opts := options.FindOne().SetProjection(bson.D{
		{Key: "nickname", Value: 1},
		{Key: "status", Value: 1},
		{Key: "allow_posting", Value: 1},
		{Key: "allow_commenting", Value: 1},
	})

	if err := m.members.FindOne(ctx, bson.D{{Key: "_id", Value: id}}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (m *Mongo) IncrementMemberCounter(ctx context.Context, memberID string, c models.MemberCounter) error {
	const op = "storage/mongo/IncrementMemberCounter"

	if err := incOne(ctx, m.memberStats, memberID, string(c)); err != nil {
		return fmt.Errorf("%s: %s: %w", op, c, err)
	}

	return nil
}

func (m *Mongo) ChannelByID(ctx context.Context, id string) (*models.Channel, error) {
	const op = "storage/mongo/ChannelByID"

	var out models.Channel
	if err := m.channels.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (m *Mongo) IncrementChannelCounter(ctx context.Context, channelID string, c models.ChannelCounter) error {
	const op = "storage/mongo/IncrementChannelCounter"

	if err := incOne(ctx, m.channelStats, channelID, string(c)); err != nil {
		return fmt.Errorf("%s: %s: %w", op, c, err)
	}

	return nil
}
