package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-social-platform/internal/keys"
	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"github.com/pribylovaa/go-social-platform/pkg/log"
)

// ToggleSave сохраняет пост в закладки участника или снимает сохранение.
// Основная запись — отношение saving (участник, пост); счётчики и уведомление
// автору пишутся вторичными записями. Возвращает новое состояние.
func (s *Service) ToggleSave(ctx context.Context, memberID, postID string) (bool, error) {
	const op = "service/posts/ToggleSave"

	lg := log.From(ctx).With("op", op, "member_id", memberID, "post_id", postID)

	if memberID == "" {
		lg.Warn("unauthenticated")
		return false, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if !keys.ValidPostID(postID) {
		lg.Warn("invalid argument: post id")
		return false, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now().UTC()

	member, err := s.members.MemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("member not found")
			return false, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
		}

		lg.Error("storage error on MemberByID", "err", err)
		return false, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !member.IsActive() {
		lg.Warn("member suspended")
		return false, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	post, err := s.posts.PostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("post not found")
			return false, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on PostByID", "err", err)
		return false, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if post.Status.IsDeleted() {
		lg.Warn("post deleted")
		return false, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	existing, err := s.relations.ListEntities(ctx, models.RelationFilter{
		Table:        models.RelationSaving,
		PartitionKey: memberID,
		RowKey:       postID,
		OnlyActive:   true,
	})
	if err != nil {
		lg.Error("storage error on ListEntities", "err", err)
		return false, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	saved := len(existing) == 0
	rel := models.Relation{
		Table:        models.RelationSaving,
		PartitionKey: memberID,
		RowKey:       postID,
		IsActive:     saved,
		Props: map[string]any{
			"channel_id":   post.Content.ChannelID,
			"updated_time": now.Unix(),
		},
		UpdatedAt: now,
	}
	if saved {
		rel.Props["created_time"] = now.Unix()
	}

	if err := s.relations.UpsertEntity(ctx, rel, models.UpsertMerge); err != nil {
		lg.Error("storage error on UpsertEntity", "err", err)
		return false, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	operation := opSave
	postCounter, memberCounter, authorCounter, topicCounter :=
		models.PostSavedCount, models.MemberSavedCount, models.MemberCreationSavedCount, models.TopicSavedCount
	if !saved {
		operation = opUndoSave
		postCounter, memberCounter, authorCounter, topicCounter =
			models.PostUndoSavedCount, models.MemberUndoSavedCount, models.MemberCreationUndoSavedCount, models.TopicUndoSavedCount
	}

	task := newTask(operation, *post, now)
	task.Steps = append(task.Steps,
		postStep(post.ID, postCounter),
		memberStep(memberID, memberCounter),
		memberStep(post.MemberID, authorCounter),
	)
	task.Steps = append(task.Steps, topicSteps(post.Content.Topics, topicCounter)...)
	if saved {
		task.Steps = append(task.Steps, models.Step{
			Kind:   models.StepNotify,
			Target: post.MemberID,
			Notice: &models.NoticeArgs{
				Category:    models.NoticeSave,
				RecipientID: post.MemberID,
				InitiatorID: memberID,
				Nickname:    member.Nickname,
			},
		})
	}

	s.fanout.Dispatch(ctx, task)

	lg.Info("post save toggled", slog.Bool("saved", saved))

	return saved, nil
}
