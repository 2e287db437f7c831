package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// InsertPost вставляет пост. edited сохраняется пустым массивом, чтобы работал $push.
func (m *Mongo) InsertPost(ctx context.Context, p models.Post) error {
	const op = "storage/mongo/InsertPost"

	if p.Edited == nil {
		p.Edited = []models.EditSnapshot{}
	}
	p.Content = normalizeContent(p.Content)

	if _, err := m.posts.InsertOne(ctx, p); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: insert: %w", op, err)
	}

	return nil
}

// PostByID возвращает пост по идентификатору, включая удалённые.
func (m *Mongo) PostByID(ctx context.Context, id string) (*models.Post, error) {
	const op = "storage/mongo/PostByID"

	var out models.Post
	if err := m.posts.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.CreatedTime = out.CreatedTime.UTC()
	if out.LastEditedTime != nil {
		t := out.LastEditedTime.UTC()
		out.LastEditedTime = &t
	}

	return &out, nil
}

// EditPost применяет правку одним updateOne: снимок, содержимое, сброс счётчиков, версия.
func (m *Mongo) EditPost(ctx context.Context, id string, expectedVersion int64, e models.PostEdit) error {
	const op = "storage/mongo/EditPost"

	snapshot := e.Snapshot
	snapshot.Content = normalizeContent(snapshot.Content)

	set := append(contentSet(e.Content),
		bson.E{Key: "status", Value: e.Status},
		bson.E{Key: "total_liked_count", Value: 0},
		bson.E{Key: "total_undo_liked_count", Value: 0},
		bson.E{Key: "total_disliked_count", Value: 0},
		bson.E{Key: "total_undo_disliked_count", Value: 0},
		bson.E{Key: "last_edited_time", Value: e.At},
	)

	res, err := m.posts.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: id},
			{Key: "version", Value: expectedVersion},
			{Key: "status", Value: bson.D{{Key: "$gte", Value: 0}}},
		},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "edited", Value: snapshot}}},
			{Key: "$set", Value: set},
			{Key: "$inc", Value: bson.D{{Key: "total_edit_count", Value: 1}, {Key: "version", Value: 1}}},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, m.missReason(ctx, id))
	}

	return nil
}

// AttachImages переводит пост из AwaitingImages в Published.
func (m *Mongo) AttachImages(ctx context.Context, id string, expectedVersion int64, images []string) error {
	const op = "storage/mongo/AttachImages"

	if images == nil {
		images = []string{}
	}

	res, err := m.posts.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: id},
			{Key: "version", Value: expectedVersion},
			{Key: "status", Value: models.PostAwaitingImages},
		},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "image_fullnames", Value: images},
				{Key: "status", Value: models.PostPublished},
			}},
			{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, m.missReason(ctx, id))
	}

	return nil
}

// MarkPostDeleted выполняет мягкое удаление. Содержимое не затирается.
func (m *Mongo) MarkPostDeleted(ctx context.Context, id string, expectedVersion int64) error {
	const op = "storage/mongo/MarkPostDeleted"

	res, err := m.posts.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "version", Value: expectedVersion}},
		bson.D{
			{Key: "$set", Value: bson.D{{Key: "status", Value: models.PostDeleted}}},
			{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, m.missReason(ctx, id))
	}

	return nil
}

// IncrementPostCounter — $inc +1 счётчика поста.
func (m *Mongo) IncrementPostCounter(ctx context.Context, id string, c models.PostCounter) error {
	const op = "storage/mongo/IncrementPostCounter"

	if err := incOne(ctx, m.posts, id, string(c)); err != nil {
		return fmt.Errorf("%s: %s: %w", op, c, err)
	}

	return nil
}

// missReason различает «нет документа» и «условие записи не выполнено».
func (m *Mongo) missReason(ctx context.Context, id string) error {
	n, err := m.posts.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}

	if n == 0 {
		return storage.ErrNotFound
	}

	return storage.ErrConflict
}

func contentSet(c models.PostContent) bson.D {
	c = normalizeContent(c)

	return bson.D{
		{Key: "title", Value: c.Title},
		{Key: "image_fullnames", Value: c.ImageFullnames},
		{Key: "paragraphs", Value: c.Paragraphs},
		{Key: "cued_members", Value: c.CuedMembers},
		{Key: "channel_id", Value: c.ChannelID},
		{Key: "topics", Value: c.Topics},
		{Key: "pinned_comment_id", Value: c.PinnedCommentID},
	}
}

// normalizeContent заменяет nil-срезы пустыми, чтобы в документе были массивы, а не null.
func normalizeContent(c models.PostContent) models.PostContent {
	if c.ImageFullnames == nil {
		c.ImageFullnames = []string{}
	}
	if c.Paragraphs == nil {
		c.Paragraphs = []string{}
	}
	if c.CuedMembers == nil {
		c.CuedMembers = []models.CuedMember{}
	}
	if c.Topics == nil {
		c.Topics = []models.TopicInfo{}
	}

	return c
}
