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

// insertAttempts — сколько раз генерируем новый id при коллизии.
const insertAttempts = 3

// Initiate — первая фаза двухфазного создания поста.
//
// Пост вставляется в статусе AwaitingImages при HasImages, иначе Published.
// Уведомления упомянутым при HasImages откладываются до AttachImages.
//
// Ошибки:
//   - ErrUnauthenticated — нет memberID;
//   - ErrInvalidArgument — схема/лимиты, неизвестный или закрытый канал;
//   - ErrPermissionDenied — участника нет, он приостановлен или без права публикации;
//   - ErrInternal — прочие ошибки стораджа.
func (s *Service) Initiate(ctx context.Context, memberID string, in PostInput) (string, error) {
	const op = "service/posts/Initiate"

	cmd, err := s.normalize(in)
	if err != nil {
		log.From(ctx).Warn("invalid argument", "op", op, "err", err)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	id, err := s.create(ctx, op, opInitiate, memberID, cmd)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Create — прямое создание поста вместе с изображениями. Пост сразу Published.
func (s *Service) Create(ctx context.Context, memberID string, in CreateInput) (string, error) {
	const op = "service/posts/Create"

	lg := log.From(ctx).With("op", op)

	cmd, err := s.normalize(in.PostInput)
	if err != nil {
		lg.Warn("invalid argument", "err", err)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	images := []string{}
	if len(in.ImageFullnames) > 0 {
		if images, err = s.normalizeImages(in.ImageFullnames); err != nil {
			lg.Warn("invalid argument", "err", err)
			return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	}
	cmd.content.ImageFullnames = images
	cmd.hasImages = false

	if memberID != "" && len(images) > 0 {
		if err := s.checkImages(ctx, lg, images); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	id, err := s.create(ctx, op, opCreate, memberID, cmd)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Service) create(ctx context.Context, op, operation, memberID string, cmd postCommand) (string, error) {
	lg := log.From(ctx).With("op", op, "member_id", memberID, "channel_id", cmd.content.ChannelID)

	if memberID == "" {
		lg.Warn("unauthenticated")
		return "", ErrUnauthenticated
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now().UTC()

	member, err := s.postingMember(ctx, lg, memberID)
	if err != nil {
		return "", err
	}

	if err := s.checkChannel(ctx, lg, cmd.content.ChannelID); err != nil {
		return "", err
	}

	post := models.Post{
		MemberID:        memberID,
		CreatedTime:     now,
		Content:         cmd.content,
		Status:          models.StatusFor(cmd.hasImages),
		AllowEditing:    true,
		AllowCommenting: true,
		Edited:          []models.EditSnapshot{},
	}

	for attempt := 1; ; attempt++ {
		post.ID = keys.NewPostID()
		err = s.posts.InsertPost(ctx, post)
		if err == nil {
			break
		}

		if errors.Is(err, storage.ErrAlreadyExists) && attempt < insertAttempts {
			lg.Warn("post id collision, regenerating", "post_id", post.ID)
			continue
		}

		lg.Error("storage error on InsertPost", "err", err)
		return "", ErrInternal
	}

	task := newTask(operation, post, now)
	task.Steps = append(task.Steps,
		memberStep(memberID, models.MemberCreationCount),
		channelStep(post.Content.ChannelID, models.ChannelPostCount),
	)
	task.Steps = append(task.Steps, attachSteps(post.Content.Topics)...)
	if post.Status == models.PostPublished {
		task.Steps = append(task.Steps, cueSteps(*member, post.Content.CuedMembers)...)
	}

	s.fanout.Dispatch(ctx, task)

	lg.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("status", post.Status.String()),
		slog.Int("topics", len(post.Content.Topics)),
	)

	return post.ID, nil
}

// AttachImages — вторая фаза: задаёт изображения и публикует пост.
// Отложенные уведомления упомянутым отправляются здесь.
//
// Ошибки:
//   - ErrInvalidArgument — битый id, пустой/длинный список, изображение не загружено;
//   - ErrNotFound — поста нет или он удалён;
//   - ErrPermissionDenied — не владелец, правка запрещена, участник ограничен;
//   - ErrConflict — пост не ждёт изображений или изменился параллельно.
func (s *Service) AttachImages(ctx context.Context, memberID, postID string, images []string) (string, error) {
	const op = "service/posts/AttachImages"

	lg := log.From(ctx).With("op", op, "member_id", memberID, "post_id", postID)

	if memberID == "" {
		lg.Warn("unauthenticated")
		return "", fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	images, err := s.normalizeImages(images)
	if err != nil {
		lg.Warn("invalid argument", "err", err)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now().UTC()

	post, err := s.ownedPost(ctx, lg, memberID, postID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !post.AllowEditing {
		lg.Warn("editing not allowed")
		return "", fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if post.Status != models.PostAwaitingImages {
		lg.Warn("post is not awaiting images", "status", post.Status.String())
		return "", fmt.Errorf("%s: %w", op, ErrConflict)
	}

	member, err := s.postingMember(ctx, lg, memberID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.checkImages(ctx, lg, images); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.posts.AttachImages(ctx, post.ID, post.Version, images); err != nil {
		return "", fmt.Errorf("%s: %w", op, s.writeErr(lg, "AttachImages", err))
	}

	if cues := post.Content.CuedMembers; len(cues) > 0 {
		task := newTask(opAttachImages, *post, now)
		task.Steps = cueSteps(*member, cues)
		s.fanout.Dispatch(ctx, task)
	}

	lg.Info("post images attached", slog.Int("images", len(images)))

	return post.ID, nil
}

// Edit — правка поста владельцем.
//
// Текущий документ дописывается снимком в edited, счётчики лайков/дизлайков
// обнуляются, статус выводится из HasImages (изображения перезагружаются через
// AttachImages). Запись условна по version: параллельная правка даёт ErrConflict.
// Темы сверяются явной разностью множеств: удалённые отвязываются,
// новые привязываются, общие не трогаются.
func (s *Service) Edit(ctx context.Context, memberID, postID string, in PostInput) (string, error) {
	const op = "service/posts/Edit"

	lg := log.From(ctx).With("op", op, "member_id", memberID, "post_id", postID)

	if memberID == "" {
		lg.Warn("unauthenticated")
		return "", fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	cmd, err := s.normalize(in)
	if err != nil {
		lg.Warn("invalid argument", "err", err)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now().UTC()

	post, err := s.ownedPost(ctx, lg, memberID, postID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !post.AllowEditing {
		lg.Warn("editing not allowed")
		return "", fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	member, err := s.postingMember(ctx, lg, memberID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.checkChannel(ctx, lg, cmd.content.ChannelID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	content := cmd.content
	content.PinnedCommentID = post.Content.PinnedCommentID
	status := models.StatusFor(cmd.hasImages)

	edit := models.PostEdit{
		Content:  content,
		Status:   status,
		Snapshot: post.Snapshot(now),
		At:       now,
	}
	if err := s.posts.EditPost(ctx, post.ID, post.Version, edit); err != nil {
		return "", fmt.Errorf("%s: %w", op, s.writeErr(lg, "EditPost", err))
	}

	removed, added := topicDiff(post.Content.Topics, content.Topics)

	edited := *post
	edited.Content = content
	task := newTask(opEdit, edited, now)
	task.Steps = append(task.Steps, detachSteps(removed)...)
	task.Steps = append(task.Steps, attachSteps(added)...)
	task.Steps = append(task.Steps, memberStep(memberID, models.MemberCreationEditCount))
	if status == models.PostPublished {
		cues := newCues(post.Content.CuedMembers, content.CuedMembers)
		// Пост ждал изображений: отложенные упоминания ещё не отправлялись.
		if post.Status == models.PostAwaitingImages {
			cues = content.CuedMembers
		}
		task.Steps = append(task.Steps, cueSteps(*member, cues)...)
	}

	s.fanout.Dispatch(ctx, task)

	lg.Info("post edited",
		slog.Int("topics_removed", len(removed)),
		slog.Int("topics_added", len(added)),
		slog.String("status", status.String()),
	)

	return post.ID, nil
}

// Delete — мягкое удаление поста владельцем (status = Deleted).
func (s *Service) Delete(ctx context.Context, memberID, postID string) error {
	const op = "service/posts/Delete"

	lg := log.From(ctx).With("op", op, "member_id", memberID, "post_id", postID)

	if memberID == "" {
		lg.Warn("unauthenticated")
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now().UTC()

	post, err := s.ownedPost(ctx, lg, memberID, postID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.posts.MarkPostDeleted(ctx, post.ID, post.Version); err != nil {
		return fmt.Errorf("%s: %w", op, s.writeErr(lg, "MarkPostDeleted", err))
	}

	task := newTask(opDelete, *post, now)
	task.Steps = append(task.Steps,
		memberStep(memberID, models.MemberCreationDeleteCount),
		channelStep(post.Content.ChannelID, models.ChannelPostDeleteCount),
	)
	task.Steps = append(task.Steps, detachSteps(post.Content.Topics)...)

	s.fanout.Dispatch(ctx, task)

	lg.Info("post deleted")

	return nil
}

// View возвращает публичную проекцию поста. viewerID пуст для анонима.
// Счётчики просмотров и история просмотров пишутся уже после ответа:
// total_member_hit_count и история только для известного активного
// участника, который не является автором.
func (s *Service) View(ctx context.Context, viewerID, postID string) (*models.RestrictedPost, error) {
	const op = "service/posts/View"

	lg := log.From(ctx).With("op", op, "post_id", postID)

	if !keys.ValidPostID(postID) {
		lg.Warn("invalid argument: post id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now().UTC()

	post, err := s.posts.PostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("post not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on PostByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if post.Status.IsDeleted() {
		lg.Warn("post deleted")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	// Неопубликованный пост (ждёт изображений) виден только автору.
	if !post.Status.IsVisible() && viewerID != post.MemberID {
		lg.Warn("post not published", "viewer_id", viewerID)
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	rp := post.Restrict()

	task := newTask(opView, *post, now)
	task.Steps = append(task.Steps, postStep(post.ID, models.PostHitCount))
	if s.countsAsMember(ctx, lg, viewerID, post.MemberID) {
		task.Steps = append(task.Steps,
			postStep(post.ID, models.PostMemberHitCount),
			memberStep(post.MemberID, models.MemberCreationHitCount),
			models.Step{Kind: models.StepBrowsingHistory, Target: viewerID},
		)
	}
	task.Steps = append(task.Steps, channelStep(post.Content.ChannelID, models.ChannelHitCount))
	task.Steps = append(task.Steps, topicSteps(post.Content.Topics, models.TopicHitCount)...)

	s.fanout.Dispatch(ctx, task)

	return &rp, nil
}

// countsAsMember — просмотр засчитывается как просмотр участника.
// Ошибки чтения участника понижают просмотр до анонимного.
func (s *Service) countsAsMember(ctx context.Context, lg *slog.Logger, viewerID, authorID string) bool {
	if viewerID == "" || viewerID == authorID {
		return false
	}

	m, err := s.members.MemberByID(ctx, viewerID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			lg.Warn("viewer lookup failed, counting as anonymous", "viewer_id", viewerID, "err", err)
		}
		return false
	}

	return m.IsActive()
}

// postingMember — участник существует, активен и может публиковать.
func (s *Service) postingMember(ctx context.Context, lg *slog.Logger, memberID string) (*models.Member, error) {
	m, err := s.members.MemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("member not found")
			return nil, ErrPermissionDenied
		}

		lg.Error("storage error on MemberByID", "err", err)
		return nil, ErrInternal
	}

	if !m.CanPost() {
		lg.Warn("member is not allowed to post", "status", m.Status, "allow_posting", m.AllowPosting)
		return nil, ErrPermissionDenied
	}

	return m, nil
}

func (s *Service) checkChannel(ctx context.Context, lg *slog.Logger, channelID string) error {
	active, err := s.channels.IsActive(ctx, channelID)
	if err != nil {
		lg.Error("storage error on channel lookup", "err", err)
		return ErrInternal
	}

	if !active {
		lg.Warn("invalid argument: channel missing or inactive")
		return ErrInvalidArgument
	}

	return nil
}

// ownedPost — неудалённый пост, принадлежащий memberID.
func (s *Service) ownedPost(ctx context.Context, lg *slog.Logger, memberID, postID string) (*models.Post, error) {
	if !keys.ValidPostID(postID) {
		lg.Warn("invalid argument: post id")
		return nil, ErrInvalidArgument
	}

	post, err := s.posts.PostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("post not found")
			return nil, ErrNotFound
		}

		lg.Error("storage error on PostByID", "err", err)
		return nil, ErrInternal
	}

	if post.Status.IsDeleted() {
		lg.Warn("post deleted")
		return nil, ErrNotFound
	}

	if post.MemberID != memberID {
		lg.Warn("permission denied: not the owner")
		return nil, ErrPermissionDenied
	}

	return post, nil
}

// checkImages — все изображения загружены. Без хранилища изображений проверка пропускается.
func (s *Service) checkImages(ctx context.Context, lg *slog.Logger, images []string) error {
	if s.images == nil {
		return nil
	}

	for _, name := range images {
		ok, err := s.images.ImageExists(ctx, name)
		if err != nil {
			lg.Error("storage error on ImageExists", "image", name, "err", err)
			return ErrInternal
		}

		if !ok {
			lg.Warn("invalid argument: image not uploaded", "image", name)
			return ErrInvalidArgument
		}
	}

	return nil
}

// writeErr переводит ошибку условной записи поста в сервисную.
func (s *Service) writeErr(lg *slog.Logger, call string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		lg.Warn("post not found")
		return ErrNotFound
	case errors.Is(err, storage.ErrConflict):
		lg.Warn("conflict: post changed concurrently")
		return ErrConflict
	default:
		lg.Error("storage error on "+call, "err", err)
		return ErrInternal
	}
}
