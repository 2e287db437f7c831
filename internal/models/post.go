// Package models содержит доменные сущности posts-сервиса.
package models

import "time"

// PostStatus — состояние жизненного цикла поста.
// Отрицательные значения означают удаление; факт редактирования
// хранится отдельно в Post.LastEditedTime.
type PostStatus int

const (
	PostDeleted        PostStatus = -1
	PostAwaitingImages PostStatus = 1
	PostPublished      PostStatus = 200
)

// IsDeleted — пост мягко удалён.
func (s PostStatus) IsDeleted() bool { return s < 0 }

// IsVisible — пост виден публично.
func (s PostStatus) IsVisible() bool { return s >= PostPublished }

func (s PostStatus) String() string {
	switch {
	case s.IsDeleted():
		return "deleted"
	case s == PostAwaitingImages:
		return "awaiting_images"
	case s.IsVisible():
		return "published"
	default:
		return "unknown"
	}
}

// StatusFor возвращает начальный статус поста по флагу hasImages.
func StatusFor(hasImages bool) PostStatus {
	if hasImages {
		return PostAwaitingImages
	}

	return PostPublished
}

// CuedMember — упомянутый в посте участник.
type CuedMember struct {
	MemberID string `bson:"member_id" json:"memberId"`
	Nickname string `bson:"nickname"  json:"nickname"`
}

// TopicInfo — тема поста. TopicID всегда выводится из Content (keys.TopicID).
type TopicInfo struct {
	TopicID string `bson:"topic_id" json:"topicId"`
	Content string `bson:"content"  json:"content"`
}

// PostContent — изменяемое содержимое поста.
type PostContent struct {
	Title           string       `bson:"title"`
	ImageFullnames  []string     `bson:"image_fullnames"`
	Paragraphs      []string     `bson:"paragraphs"`
	CuedMembers     []CuedMember `bson:"cued_members"`
	ChannelID       string       `bson:"channel_id"`
	Topics          []TopicInfo  `bson:"topics"`
	PinnedCommentID string       `bson:"pinned_comment_id"`
}

// PostStatistics — счётчики поста. Хранятся только монотонные пары
// «total X / total undo X», эффективные значения вычисляются при чтении.
type PostStatistics struct {
	TotalHitCount           int64 `bson:"total_hit_count"`
	TotalMemberHitCount     int64 `bson:"total_member_hit_count"`
	TotalLikedCount         int64 `bson:"total_liked_count"`
	TotalUndoLikedCount     int64 `bson:"total_undo_liked_count"`
	TotalDislikedCount      int64 `bson:"total_disliked_count"`
	TotalUndoDislikedCount  int64 `bson:"total_undo_disliked_count"`
	TotalCommentCount       int64 `bson:"total_comment_count"`
	TotalCommentDeleteCount int64 `bson:"total_comment_delete_count"`
	TotalSavedCount         int64 `bson:"total_saved_count"`
	TotalUndoSavedCount     int64 `bson:"total_undo_saved_count"`
	TotalEditCount          int64 `bson:"total_edit_count"`
	TotalAffairCount        int64 `bson:"total_affair_count"`
}

// Liked — эффективное количество лайков.
func (s PostStatistics) Liked() int64 { return s.TotalLikedCount - s.TotalUndoLikedCount }

// Disliked — эффективное количество дизлайков.
func (s PostStatistics) Disliked() int64 { return s.TotalDislikedCount - s.TotalUndoDislikedCount }

// Comments — эффективное количество комментариев.
func (s PostStatistics) Comments() int64 { return s.TotalCommentCount - s.TotalCommentDeleteCount }

// Saved — эффективное количество сохранений.
func (s PostStatistics) Saved() int64 { return s.TotalSavedCount - s.TotalUndoSavedCount }

// EditSnapshot — состояние поста непосредственно перед правкой:
// содержимое и счётчики, которые правка обнуляет.
type EditSnapshot struct {
	Content                PostContent `bson:"content"`
	TotalLikedCount        int64       `bson:"total_liked_count"`
	TotalUndoLikedCount    int64       `bson:"total_undo_liked_count"`
	TotalDislikedCount     int64       `bson:"total_disliked_count"`
	TotalUndoDislikedCount int64       `bson:"total_undo_disliked_count"`
	TotalAffairCount       int64       `bson:"total_affair_count"`
	EditedTime             time.Time   `bson:"edited_time"`
}

// Post — документ поста (коллекция post).
//   - ID — 16-символьный url-safe идентификатор (keys.NewPostID).
//   - CreatedTime не меняется после вставки.
//   - Version — токен оптимистичной блокировки, растёт на каждой записи владельца.
//   - Edited — только дописывается.
type Post struct {
	ID              string         `bson:"_id"`
	MemberID        string         `bson:"member_id"`
	CreatedTime     time.Time      `bson:"created_time"`
	Content         PostContent    `bson:",inline"`
	Status          PostStatus     `bson:"status"`
	AllowEditing    bool           `bson:"allow_editing"`
	AllowCommenting bool           `bson:"allow_commenting"`
	LastEditedTime  *time.Time     `bson:"last_edited_time,omitempty"`
	Version         int64          `bson:"version"`
	Stats           PostStatistics `bson:",inline"`
	Edited          []EditSnapshot `bson:"edited"`
}

// Snapshot фиксирует текущее состояние поста перед правкой.
func (p Post) Snapshot(at time.Time) EditSnapshot {
	return EditSnapshot{
		Content:                p.Content,
		TotalLikedCount:        p.Stats.TotalLikedCount,
		TotalUndoLikedCount:    p.Stats.TotalUndoLikedCount,
		TotalDislikedCount:     p.Stats.TotalDislikedCount,
		TotalUndoDislikedCount: p.Stats.TotalUndoDislikedCount,
		TotalAffairCount:       p.Stats.TotalAffairCount,
		EditedTime:             at,
	}
}

// PostEdit — изменение, применяемое правкой владельца.
type PostEdit struct {
	Content  PostContent
	Status   PostStatus
	Snapshot EditSnapshot
	At       time.Time
}

// PostCounter — счётчики поста, изменяемые вторичными записями.
type PostCounter string

const (
	PostHitCount       PostCounter = "total_hit_count"
	PostMemberHitCount PostCounter = "total_member_hit_count"
	PostSavedCount     PostCounter = "total_saved_count"
	PostUndoSavedCount PostCounter = "total_undo_saved_count"
)

// Valid — счётчик из известного набора.
func (c PostCounter) Valid() bool {
	switch c {
	case PostHitCount, PostMemberHitCount, PostSavedCount, PostUndoSavedCount:
		return true
	}

	return false
}

// RestrictedPost — публичная проекция поста: без служебных полей,
// содержимое скрыто, если пост удалён.
type RestrictedPost struct {
	PostID              string       `json:"postId"`
	MemberID            string       `json:"memberId"`
	CreatedTimeBySecond int64        `json:"createdTimeBySecond"`
	Title               string       `json:"title"`
	ImageFullnames      []string     `json:"imageFullnamesArr"`
	Paragraphs          []string     `json:"paragraphsArr"`
	CuedMembers         []CuedMember `json:"cuedMemberInfoArr"`
	ChannelID           string       `json:"channelId"`
	Topics              []TopicInfo  `json:"topicInfoArr"`
	PinnedCommentID     string       `json:"pinnedCommentId"`
	Status              int          `json:"status"`
	Edited              bool         `json:"edited"`
	AllowCommenting     bool         `json:"allowCommenting"`
	TotalHitCount       int64        `json:"totalHitCount"`
	TotalLikedCount     int64        `json:"totalLikedCount"`
	TotalDislikedCount  int64        `json:"totalDislikedCount"`
	TotalCommentCount   int64        `json:"totalCommentCount"`
	TotalSavedCount     int64        `json:"totalSavedCount"`
}

// Restrict строит публичную проекцию. Для status < 0 все поля содержимого пусты.
func (p Post) Restrict() RestrictedPost {
	rp := RestrictedPost{
		PostID:              p.ID,
		MemberID:            p.MemberID,
		CreatedTimeBySecond: p.CreatedTime.Unix(),
		Status:              int(p.Status),
		Edited:              p.LastEditedTime != nil,
		ImageFullnames:      []string{},
		Paragraphs:          []string{},
		CuedMembers:         []CuedMember{},
		Topics:              []TopicInfo{},
	}

	if p.Status.IsDeleted() {
		return rp
	}

	rp.Title = p.Content.Title
	rp.ImageFullnames = nonNil(p.Content.ImageFullnames)
	rp.Paragraphs = nonNil(p.Content.Paragraphs)
	rp.CuedMembers = nonNil(p.Content.CuedMembers)
	rp.ChannelID = p.Content.ChannelID
	rp.Topics = nonNil(p.Content.Topics)
	rp.PinnedCommentID = p.Content.PinnedCommentID
	rp.AllowCommenting = p.AllowCommenting
	rp.TotalHitCount = p.Stats.TotalHitCount
	rp.TotalLikedCount = p.Stats.Liked()
	rp.TotalDislikedCount = p.Stats.Disliked()
	rp.TotalCommentCount = p.Stats.Comments()
	rp.TotalSavedCount = p.Stats.Saved()

	return rp
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
