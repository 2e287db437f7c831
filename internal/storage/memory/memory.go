// memory — реализация контрактов storage в памяти процесса (тесты, локальный запуск).
// Каждая операция атомарна относительно остальных (общий мьютекс),
// чем повторяет гарантии одного документа MongoDB.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
)

// Store хранит все коллекции в картах.
type Store struct {
	mu sync.Mutex

	posts         map[string]models.Post
	members       map[string]models.Member
	memberStats   map[string]models.Counters
	channels      map[string]models.Channel
	channelStats  map[string]models.Counters
	topics        map[string]models.Topic
	mappings      map[string]models.TopicPostMapping
	notifications map[string]models.Notification
	noticeStats   map[string]models.Counters
	relations     map[string]models.Relation
	tasks         map[string]models.Task
	images        map[string]struct{}
}

var (
	_ storage.Posts         = (*Store)(nil)
	_ storage.Members       = (*Store)(nil)
	_ storage.Channels      = (*Store)(nil)
	_ storage.Topics        = (*Store)(nil)
	_ storage.TopicMappings = (*Store)(nil)
	_ storage.Notifications = (*Store)(nil)
	_ storage.Relations     = (*Store)(nil)
	_ storage.Outbox        = (*Store)(nil)
	_ storage.Images        = (*Store)(nil)
)

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{
		posts:         make(map[string]models.Post),
		members:       make(map[string]models.Member),
		memberStats:   make(map[string]models.Counters),
		channels:      make(map[string]models.Channel),
		channelStats:  make(map[string]models.Counters),
		topics:        make(map[string]models.Topic),
		mappings:      make(map[string]models.TopicPostMapping),
		notifications: make(map[string]models.Notification),
		noticeStats:   make(map[string]models.Counters),
		relations:     make(map[string]models.Relation),
		tasks:         make(map[string]models.Task),
		images:        make(map[string]struct{}),
	}
}

// Наполнение (онбординг участников/каналов вне ядра).

// PutMember регистрирует участника и пустой документ его статистики.
func (s *Store) PutMember(m models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m
	if _, ok := s.memberStats[m.ID]; !ok {
		s.memberStats[m.ID] = models.Counters{}
	}
	if _, ok := s.noticeStats[m.ID]; !ok {
		s.noticeStats[m.ID] = models.Counters{}
	}
}

// PutChannel регистрирует канал и пустой документ его статистики.
func (s *Store) PutChannel(c models.Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[c.ID] = c
	if _, ok := s.channelStats[c.ID]; !ok {
		s.channelStats[c.ID] = models.Counters{}
	}
}

// PutImage регистрирует загруженное изображение.
func (s *Store) PutImage(fullname string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[fullname] = struct{}{}
}

// MemberStats — копия счётчиков участника.
func (s *Store) MemberStats(id string) models.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCounters(s.memberStats[id])
}

// ChannelStats — копия счётчиков канала.
func (s *Store) ChannelStats(id string) models.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCounters(s.channelStats[id])
}

// NotificationStats — копия счётчиков уведомлений участника.
func (s *Store) NotificationStats(id string) models.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCounters(s.noticeStats[id])
}

// NotificationsOf — уведомления получателя, по notice_id.
func (s *Store) NotificationsOf(memberID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Notification
	for _, n := range s.notifications {
		if n.MemberID == memberID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NoticeID < out[j].NoticeID })
	return out
}

// Tasks — копии всех задач outbox.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, copyTask(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Posts.

func (s *Store) InsertPost(_ context.Context, p models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[p.ID]; ok {
		return storage.ErrAlreadyExists
	}
	s.posts[p.ID] = copyPost(p)
	return nil
}

func (s *Store) PostByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := copyPost(p)
	return &cp, nil
}

func (s *Store) EditPost(_ context.Context, id string, expectedVersion int64, e models.PostEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return storage.ErrNotFound
	}
	if p.Version != expectedVersion || p.Status.IsDeleted() {
		return storage.ErrConflict
	}

	p.Edited = append(p.Edited, e.Snapshot)
	p.Content = e.Content
	p.Status = e.Status
	p.Stats.TotalLikedCount = 0
	p.Stats.TotalUndoLikedCount = 0
	p.Stats.TotalDislikedCount = 0
	p.Stats.TotalUndoDislikedCount = 0
	p.Stats.TotalEditCount++
	at := e.At
	p.LastEditedTime = &at
	p.Version++
	s.posts[id] = copyPost(p)
	return nil
}

func (s *Store) AttachImages(_ context.Context, id string, expectedVersion int64, images []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return storage.ErrNotFound
	}
	if p.Version != expectedVersion || p.Status != models.PostAwaitingImages {
		return storage.ErrConflict
	}

	p.Content.ImageFullnames = append([]string(nil), images...)
	p.Status = models.PostPublished
	p.Version++
	s.posts[id] = p
	return nil
}

func (s *Store) MarkPostDeleted(_ context.Context, id string, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return storage.ErrNotFound
	}
	if p.Version != expectedVersion {
		return storage.ErrConflict
	}

	p.Status = models.PostDeleted
	p.Version++
	s.posts[id] = p
	return nil
}

func (s *Store) IncrementPostCounter(_ context.Context, id string, c models.PostCounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return storage.ErrNotFound
	}

	switch c {
	case models.PostHitCount:
		p.Stats.TotalHitCount++
	case models.PostMemberHitCount:
		p.Stats.TotalMemberHitCount++
	case models.PostSavedCount:
		p.Stats.TotalSavedCount++
	case models.PostUndoSavedCount:
		p.Stats.TotalUndoSavedCount++
	}
	s.posts[id] = p
	return nil
}

// Members / Channels.

func (s *Store) MemberByID(_ context.Context, id string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &m, nil
}

func (s *Store) IncrementMemberCounter(_ context.Context, memberID string, c models.MemberCounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return incr(s.memberStats, memberID, string(c))
}

func (s *Store) ChannelByID(_ context.Context, id string) (*models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.channels[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

func (s *Store) IncrementChannelCounter(_ context.Context, channelID string, c models.ChannelCounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return incr(s.channelStats, channelID, string(c))
}

// Topics / mappings.

func (s *Store) TopicByID(_ context.Context, id string) (*models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.topics[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &t, nil
}

func (s *Store) IncrementTopicCounter(_ context.Context, id string, c models.TopicCounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.topics[id]
	if !ok {
		return storage.ErrNotFound
	}
	incTopic(&t, c)
	s.topics[id] = t
	return nil
}

func (s *Store) UpsertTopic(_ context.Context, t models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.topics[t.ID]
	if !ok {
		cur = t
		cur.TotalPostCount = 0
	}
	cur.TotalPostCount++
	s.topics[t.ID] = cur
	return nil
}

func (s *Store) MappingByID(_ context.Context, id string) (*models.TopicPostMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.mappings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &m, nil
}

func (s *Store) ActivateMapping(_ context.Context, m models.TopicPostMapping) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.mappings[m.ID]
	activated := !ok || cur.Status != models.MappingActive
	if ok {
		m.CreatedTime = cur.CreatedTime
	}
	m.Status = models.MappingActive
	s.mappings[m.ID] = m
	return activated, nil
}

func (s *Store) DeactivateMapping(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.mappings[id]
	if !ok || cur.Status != models.MappingActive {
		return false, nil
	}
	cur.Status = models.MappingDeleted
	s.mappings[id] = cur
	return true, nil
}

// Notifications.

func noticeKey(memberID, noticeID string) string { return memberID + "|" + noticeID }

func (s *Store) UpsertNotification(_ context.Context, n models.Notification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := noticeKey(n.MemberID, n.NoticeID)
	cur, ok := s.notifications[k]
	n.Counted = ok && cur.Counted
	s.notifications[k] = n
	return n.Counted, nil
}

func (s *Store) MarkNotificationCounted(_ context.Context, memberID, noticeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := noticeKey(memberID, noticeID)
	cur, ok := s.notifications[k]
	if !ok {
		return storage.ErrNotFound
	}
	cur.Counted = true
	s.notifications[k] = cur
	return nil
}

func (s *Store) IncrementNotificationCounter(_ context.Context, memberID string, c models.NotificationCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return incr(s.noticeStats, memberID, string(c))
}

// Relations.

func relationKey(t models.RelationTable, pk, rk string) string {
	return string(t) + "|" + pk + "|" + rk
}

func (s *Store) UpsertEntity(_ context.Context, r models.Relation, mode models.UpsertMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := relationKey(r.Table, r.PartitionKey, r.RowKey)
	props := copyProps(r.Props)
	if cur, ok := s.relations[k]; ok && mode == models.UpsertMerge {
		merged := copyProps(cur.Props)
		for key, v := range props {
			merged[key] = v
		}
		props = merged
	}
	r.Props = props
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now().UTC()
	}
	s.relations[k] = r
	return nil
}

func (s *Store) ListEntities(_ context.Context, f models.RelationFilter) ([]models.Relation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Relation
	for _, r := range s.relations {
		if f.Table != "" && r.Table != f.Table {
			continue
		}
		if f.PartitionKey != "" && r.PartitionKey != f.PartitionKey {
			continue
		}
		if f.RowKey != "" && r.RowKey != f.RowKey {
			continue
		}
		if f.OnlyActive && !r.IsActive {
			continue
		}
		r.Props = copyProps(r.Props)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PartitionKey != out[j].PartitionKey {
			return out[i].PartitionKey < out[j].PartitionKey
		}
		return out[i].RowKey < out[j].RowKey
	})
	return out, nil
}

// Outbox.

func (s *Store) EnqueueTask(_ context.Context, t models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; ok {
		return storage.ErrAlreadyExists
	}
	s.tasks[t.ID] = copyTask(t)
	return nil
}

func (s *Store) ClaimDueTasks(_ context.Context, now time.Time, lease time.Duration, limit int) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.Status != models.TaskPending || t.NextAttemptAt.After(now) {
			continue
		}
		if t.LeaseUntil != nil && t.LeaseUntil.After(now) {
			continue
		}
		due = append(due, t)
	}
	sort.Slice(due, func(i, j int) bool { return due[i].NextAttemptAt.Before(due[j].NextAttemptAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	until := now.Add(lease)
	out := make([]models.Task, 0, len(due))
	for _, t := range due {
		t.LeaseUntil = &until
		s.tasks[t.ID] = t
		out = append(out, copyTask(t))
	}
	return out, nil
}

func (s *Store) SaveTask(_ context.Context, t models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return storage.ErrNotFound
	}
	s.tasks[t.ID] = copyTask(t)
	return nil
}

func (s *Store) ReleaseExpiredLeases(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, t := range s.tasks {
		if t.Status == models.TaskPending && t.LeaseUntil != nil && !t.LeaseUntil.After(now) {
			t.LeaseUntil = nil
			s.tasks[id] = t
			n++
		}
	}
	return n, nil
}

func (s *Store) PurgeFinished(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, t := range s.tasks {
		if t.Status == models.TaskDone && t.UpdatedAt.Before(before) {
			delete(s.tasks, id)
			n++
		}
	}
	return n, nil
}

// Images.

func (s *Store) ImageExists(_ context.Context, fullname string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.images[fullname]
	return ok, nil
}

// Вспомогательные функции.

func incr(docs map[string]models.Counters, id, field string) error {
	c, ok := docs[id]
	if !ok {
		return storage.ErrNotFound
	}
	c[field]++
	return nil
}

func incTopic(t *models.Topic, c models.TopicCounter) {
	switch c {
	case models.TopicPostCount:
		t.TotalPostCount++
	case models.TopicPostDeleteCount:
		t.TotalPostDeleteCount++
	case models.TopicHitCount:
		t.TotalHitCount++
	case models.TopicLikedCount:
		t.TotalLikedCount++
	case models.TopicUndoLikedCount:
		t.TotalUndoLikedCount++
	case models.TopicCommentCount:
		t.TotalCommentCount++
	case models.TopicSavedCount:
		t.TotalSavedCount++
	case models.TopicUndoSavedCount:
		t.TotalUndoSavedCount++
	}
}

func copyCounters(c models.Counters) models.Counters {
	out := make(models.Counters, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

func copyProps(p map[string]any) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func copyContent(c models.PostContent) models.PostContent {
	c.ImageFullnames = append([]string(nil), c.ImageFullnames...)
	c.Paragraphs = append([]string(nil), c.Paragraphs...)
	c.CuedMembers = append([]models.CuedMember(nil), c.CuedMembers...)
	c.Topics = append([]models.TopicInfo(nil), c.Topics...)
	return c
}

func copyPost(p models.Post) models.Post {
	p.Content = copyContent(p.Content)
	edited := make([]models.EditSnapshot, len(p.Edited))
	for i, e := range p.Edited {
		e.Content = copyContent(e.Content)
		edited[i] = e
	}
	p.Edited = edited
	if p.LastEditedTime != nil {
		t := *p.LastEditedTime
		p.LastEditedTime = &t
	}
	return p
}

func copyTask(t models.Task) models.Task {
	steps := make([]models.Step, len(t.Steps))
	for i, st := range t.Steps {
		if st.Topic != nil {
			tp := *st.Topic
			st.Topic = &tp
		}
		if st.Notice != nil {
			n := *st.Notice
			st.Notice = &n
		}
		steps[i] = st
	}
	t.Steps = steps
	if t.LeaseUntil != nil {
		l := *t.LeaseUntil
		t.LeaseUntil = &l
	}
	return t
}
