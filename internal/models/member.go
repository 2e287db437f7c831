package models

// Member — проекция участника, нужная для проверок прав.
// Status > 0 — активен, иначе заблокирован/приостановлен.
type Member struct {
	ID              string `bson:"_id"`
	Nickname        string `bson:"nickname"`
	Status          int    `bson:"status"`
	AllowPosting    bool   `bson:"allow_posting"`
	AllowCommenting bool   `bson:"allow_commenting"`
}

// IsActive — участник не приостановлен.
func (m Member) IsActive() bool { return m.Status > 0 }

// CanPost — участник может публиковать и править посты.
func (m Member) CanPost() bool { return m.IsActive() && m.AllowPosting }

// Channel — канал (раздел), в котором публикуются посты.
type Channel struct {
	ID     string            `bson:"_id"`
	Name   map[string]string `bson:"name"`
	Status int               `bson:"status"`
}

// IsActive — в канал можно публиковать.
func (c Channel) IsActive() bool { return c.Status > 0 }

// Counters — документ статистики: произвольный набор счётчиков по имени.
type Counters map[string]int64

// MemberCounter — счётчики в member_statistics.
type MemberCounter string

const (
	MemberCreationCount          MemberCounter = "total_creation_count"
	MemberCreationEditCount      MemberCounter = "total_creation_edit_count"
	MemberCreationDeleteCount    MemberCounter = "total_creation_delete_count"
	MemberCreationHitCount       MemberCounter = "total_creation_hit_count"
	MemberCreationSavedCount     MemberCounter = "total_creation_saved_count"
	MemberCreationUndoSavedCount MemberCounter = "total_creation_undo_saved_count"
	MemberSavedCount             MemberCounter = "total_saved_count"
	MemberUndoSavedCount         MemberCounter = "total_undo_saved_count"
)

// Valid — счётчик из известного набора.
func (c MemberCounter) Valid() bool {
	switch c {
	case MemberCreationCount, MemberCreationEditCount, MemberCreationDeleteCount,
		MemberCreationHitCount, MemberCreationSavedCount, MemberCreationUndoSavedCount,
		MemberSavedCount, MemberUndoSavedCount:
		return true
	}

	return false
}

// ChannelCounter — счётчики в channel_statistics.
type ChannelCounter string

const (
	ChannelPostCount       ChannelCounter = "total_post_count"
	ChannelPostDeleteCount ChannelCounter = "total_post_delete_count"
	ChannelHitCount        ChannelCounter = "total_hit_count"
)

// Valid — счётчик из известного набора.
func (c ChannelCounter) Valid() bool {
	switch c {
	case ChannelPostCount, ChannelPostDeleteCount, ChannelHitCount:
		return true
	}

	return false
}
