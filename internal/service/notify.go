package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pribylovaa/go-social-platform/internal/keys"
	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/pkg/log"
)

// Notify доставляет уведомление получателю:
//  1. самоуведомления и уведомления при активной блокировке
//     (получатель заблокировал инициатора) молча пропускаются;
//  2. уведомление пишется по детерминированному notice id, повтор перезаписывает;
//  3. счётчик категории получателя растёт один раз на событие.
func (e *Executor) Notify(ctx context.Context, post models.PostRef, args models.NoticeArgs, at time.Time) error {
	const op = "service/notify/Notify"

	lg := log.From(ctx).With("op", op,
		"category", string(args.Category),
		"recipient_id", args.RecipientID,
		"initiator_id", args.InitiatorID,
	)

	if !args.Category.Valid() {
		return fmt.Errorf("%s: unknown category %q", op, args.Category)
	}

	if args.RecipientID == "" || args.RecipientID == args.InitiatorID {
		return nil
	}

	blocked, err := e.blocked(ctx, args.RecipientID, args.InitiatorID)
	if err != nil {
		return fmt.Errorf("%s: blocking %s/%s: %w", op, args.RecipientID, args.InitiatorID, err)
	}

	if blocked {
		lg.Debug("notification suppressed by blocking")
		return nil
	}

	n := models.Notification{
		MemberID:     args.RecipientID,
		NoticeID:     keys.NoticeID(string(args.Category), args.InitiatorID, post.PostID, args.CommentID),
		Category:     args.Category,
		InitiateID:   args.InitiatorID,
		Nickname:     args.Nickname,
		PostID:       post.PostID,
		PostTitle:    post.Title,
		CommentID:    args.CommentID,
		CommentBrief: args.CommentBrief,
		IsActive:     true,
		CreatedTime:  at,
	}

	counted, err := e.notifications.UpsertNotification(ctx, n)
	if err != nil {
		return fmt.Errorf("%s: notification %s/%s: %w", op, n.MemberID, n.NoticeID, err)
	}

	if counted {
		return nil
	}

	if err := e.notifications.IncrementNotificationCounter(ctx, n.MemberID, n.Category); err != nil {
		return fmt.Errorf("%s: notification_statistics %s.%s: %w", op, n.MemberID, n.Category, err)
	}

	if err := e.notifications.MarkNotificationCounted(ctx, n.MemberID, n.NoticeID); err != nil {
		return fmt.Errorf("%s: notification %s/%s: %w", op, n.MemberID, n.NoticeID, err)
	}

	return nil
}

// blocked — у получателя есть активная блокировка инициатора.
func (e *Executor) blocked(ctx context.Context, recipientID, initiatorID string) (bool, error) {
	rels, err := e.relations.ListEntities(ctx, models.RelationFilter{
		Table:        models.RelationBlocking,
		PartitionKey: recipientID,
		RowKey:       initiatorID,
		OnlyActive:   true,
	})
	if err != nil {
		return false, err
	}

	return len(rels) > 0, nil
}
