package models

import "time"

// MappingStatus — состояние связи тема-пост.
type MappingStatus int

const (
	MappingDeleted MappingStatus = -1
	MappingActive  MappingStatus = 200
)

// TopicActive — статус новой темы.
const TopicActive = 200

// Topic — агрегат темы (коллекция topic). ID выводится из текста темы,
// поэтому одинаковый текст всегда адресует один документ.
type Topic struct {
	ID                   string    `bson:"_id"`
	Content              string    `bson:"content"`
	ChannelID            string    `bson:"channel_id"`
	CreatedTime          time.Time `bson:"created_time"`
	Status               int       `bson:"status"`
	TotalPostCount       int64     `bson:"total_post_count"`
	TotalPostDeleteCount int64     `bson:"total_post_delete_count"`
	TotalHitCount        int64     `bson:"total_hit_count"`
	TotalLikedCount      int64     `bson:"total_liked_count"`
	TotalUndoLikedCount  int64     `bson:"total_undo_liked_count"`
	TotalCommentCount    int64     `bson:"total_comment_count"`
	TotalSavedCount      int64     `bson:"total_saved_count"`
	TotalUndoSavedCount  int64     `bson:"total_undo_saved_count"`
}

// TopicCounter — счётчики темы.
type TopicCounter string

const (
	TopicPostCount       TopicCounter = "total_post_count"
	TopicPostDeleteCount TopicCounter = "total_post_delete_count"
	TopicHitCount        TopicCounter = "total_hit_count"
	TopicLikedCount      TopicCounter = "total_liked_count"
	TopicUndoLikedCount  TopicCounter = "total_undo_liked_count"
	TopicCommentCount    TopicCounter = "total_comment_count"
	TopicSavedCount      TopicCounter = "total_saved_count"
	TopicUndoSavedCount  TopicCounter = "total_undo_saved_count"
)

// Valid — счётчик из известного набора.
func (c TopicCounter) Valid() bool {
	switch c {
	case TopicPostCount, TopicPostDeleteCount, TopicHitCount, TopicLikedCount,
		TopicUndoLikedCount, TopicCommentCount, TopicSavedCount, TopicUndoSavedCount:
		return true
	}

	return false
}

// TopicPostMapping — денормализованная связь тема-пост (коллекция topic_post).
// Никогда не удаляется физически, только Status = MappingDeleted.
type TopicPostMapping struct {
	ID          string        `bson:"_id"`
	TopicID     string        `bson:"topic_id"`
	PostID      string        `bson:"post_id"`
	Title       string        `bson:"title"`
	ChannelID   string        `bson:"channel_id"`
	MemberID    string        `bson:"member_id"`
	CreatedTime time.Time     `bson:"created_time"`
	Status      MappingStatus `bson:"status"`
}
