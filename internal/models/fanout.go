package models

import "time"

// StepKind — вид вторичной записи.
type StepKind string

const (
	// StepMemberCounter: Target — member_id, Counter — MemberCounter.
	StepMemberCounter StepKind = "member_counter"
	// StepChannelCounter: Target — channel_id, Counter — ChannelCounter.
	StepChannelCounter StepKind = "channel_counter"
	// StepTopicCounter: Target — topic_id, Counter — TopicCounter.
	StepTopicCounter StepKind = "topic_counter"
	// StepPostCounter: Target — post_id, Counter — PostCounter.
	StepPostCounter StepKind = "post_counter"
	// StepTopicAttach: Topic — привязываемая тема.
	StepTopicAttach StepKind = "topic_attach"
	// StepTopicDetach: Topic — отвязываемая тема.
	StepTopicDetach StepKind = "topic_detach"
	// StepBrowsingHistory: Target — зритель.
	StepBrowsingHistory StepKind = "browsing_history"
	// StepNotify: Notice — параметры уведомления.
	StepNotify StepKind = "notify"
)

// NoticeArgs — параметры уведомления для StepNotify.
type NoticeArgs struct {
	Category     NotificationCategory `bson:"category"`
	RecipientID  string               `bson:"recipient_id"`
	InitiatorID  string               `bson:"initiator_id"`
	Nickname     string               `bson:"nickname,omitempty"`
	CommentID    string               `bson:"comment_id,omitempty"`
	CommentBrief string               `bson:"comment_brief,omitempty"`
}

// Step — одна вторичная запись задачи. Шаги выполняются по порядку,
// успешный шаг помечается Done и больше не повторяется.
type Step struct {
	Kind      StepKind    `bson:"kind"`
	Target    string      `bson:"target,omitempty"`
	Counter   string      `bson:"counter,omitempty"`
	Topic     *TopicInfo  `bson:"topic,omitempty"`
	Notice    *NoticeArgs `bson:"notice,omitempty"`
	Done      bool        `bson:"done"`
	Attempts  int         `bson:"attempts"`
	LastError string      `bson:"last_error,omitempty"`
}

// TaskStatus — состояние задачи outbox.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
	TaskDead    TaskStatus = "dead"
)

// PostRef — данные поста, нужные шагам (денормализация, уведомления).
type PostRef struct {
	PostID    string `bson:"post_id"`
	AuthorID  string `bson:"author_id"`
	ChannelID string `bson:"channel_id"`
	Title     string `bson:"title"`
}

// Task — набор вторичных записей одной операции (коллекция fanout_outbox).
// OccurredAt — момент операции, единый для всех её записей.
type Task struct {
	ID            string     `bson:"_id"`
	Operation     string     `bson:"operation"`
	Post          PostRef    `bson:"post"`
	Steps         []Step     `bson:"steps"`
	Status        TaskStatus `bson:"status"`
	Attempts      int        `bson:"attempts"`
	OccurredAt    time.Time  `bson:"occurred_at"`
	NextAttemptAt time.Time  `bson:"next_attempt_at"`
	LeaseUntil    *time.Time `bson:"lease_until,omitempty"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at"`
}

// Pending возвращает индексы невыполненных шагов.
func (t Task) Pending() []int {
	var idx []int
	for i := range t.Steps {
		if !t.Steps[i].Done {
			idx = append(idx, i)
		}
	}

	return idx
}

// Completed — все шаги выполнены.
func (t Task) Completed() bool { return len(t.Pending()) == 0 }
