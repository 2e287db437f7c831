package models

import "time"

// NotificationCategory — категория уведомления; она же имя счётчика
// в notification_statistics.
type NotificationCategory string

const (
	NoticeCue  NotificationCategory = "cue"
	NoticeSave NotificationCategory = "save"
)

// Valid — категория из известного набора.
func (c NotificationCategory) Valid() bool {
	return c == NoticeCue || c == NoticeSave
}

// Notification — уведомление получателю MemberID (коллекция notification).
// Ключ (MemberID, NoticeID) детерминирован, повтор события перезаписывает документ.
// Counted — событие уже учтено в счётчике получателя.
type Notification struct {
	MemberID     string               `bson:"member_id"`
	NoticeID     string               `bson:"notice_id"`
	Category     NotificationCategory `bson:"category"`
	InitiateID   string               `bson:"initiate_id"`
	Nickname     string               `bson:"nickname"`
	PostID       string               `bson:"post_id"`
	PostTitle    string               `bson:"post_title"`
	CommentID    string               `bson:"comment_id,omitempty"`
	CommentBrief string               `bson:"comment_brief,omitempty"`
	IsActive     bool                 `bson:"is_active"`
	CreatedTime  time.Time            `bson:"created_time"`
	Counted      bool                 `bson:"counted"`
}
