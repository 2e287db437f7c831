package mongo

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertNotification перезаписывает уведомление по (member_id, notice_id).
// Поле counted выставляется только при вставке и переживает перезапись.
func (m *Mongo) UpsertNotification(ctx context.Context, n models.Notification) (bool, error) {
	const op = "storage/mongo/UpsertNotification"

	var out models.Notification
	err := m.notifications.FindOneAndUpdate(ctx,
		bson.D{{Key: "member_id", Value: n.MemberID}, {Key: "notice_id", Value: n.NoticeID}},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "category", Value: n.Category},
				{Key: "initiate_id", Value: n.InitiateID},
				{Key: "nickname", Value: n.Nickname},
				{Key: "post_id", Value: n.PostID},
				{Key: "post_title", Value: n.PostTitle},
				{Key: "comment_id", Value: n.CommentID},
				{Key: "comment_brief", Value: n.CommentBrief},
				{Key: "is_active", Value: true},
				{Key: "created_time", Value: n.CreatedTime},
			}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "counted", Value: false}}},
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After).
			SetProjection(bson.D{{Key: "counted", Value: 1}}),
	).Decode(&out)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return out.Counted, nil
}

func (m *Mongo) MarkNotificationCounted(ctx context.Context, memberID, noticeID string) error {
	const op = "storage/mongo/MarkNotificationCounted"

	res, err := m.notifications.UpdateOne(ctx,
		bson.D{{Key: "member_id", Value: memberID}, {Key: "notice_id", Value: noticeID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "counted", Value: true}}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (m *Mongo) IncrementNotificationCounter(ctx context.Context, memberID string, c models.NotificationCategory) error {
	const op = "storage/mongo/IncrementNotificationCounter"

	if err := incOne(ctx, m.noticeStats, memberID, string(c)); err != nil {
		return fmt.Errorf("%s: %s: %w", op, c, err)
	}

	return nil
}
