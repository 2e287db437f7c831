package service

// Тесты сервисного слоя на моках хранилищ (mocks/storage.go):
// маппинг ошибок storage -> service и порядок вызовов вторичных записей.
//
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/go-social-platform/internal/keys"
	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"github.com/pribylovaa/go-social-platform/mocks"
	"github.com/stretchr/testify/require"
)

// recordingDispatcher запоминает задачи вместо выполнения.
type recordingDispatcher struct {
	tasks []models.Task
}

func (d *recordingDispatcher) Dispatch(_ context.Context, t models.Task) {
	d.tasks = append(d.tasks, t)
}

type mocked struct {
	posts    *mocks.MockPosts
	members  *mocks.MockMembers
	channels *mocks.MockChannelDirectory
	stats    *mocks.MockChannels
	topics   *mocks.MockTopics
	mappings *mocks.MockTopicMappings
	notices  *mocks.MockNotifications
	rels     *mocks.MockRelations
	disp     *recordingDispatcher
}

// newServiceWithMocks — сервис и исполнитель поверх моков хранилищ.
func newServiceWithMocks(t *testing.T) (*Service, *Executor, *mocked) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &mocked{
		posts:    mocks.NewMockPosts(ctrl),
		members:  mocks.NewMockMembers(ctrl),
		channels: mocks.NewMockChannelDirectory(ctrl),
		stats:    mocks.NewMockChannels(ctrl),
		topics:   mocks.NewMockTopics(ctrl),
		mappings: mocks.NewMockTopicMappings(ctrl),
		notices:  mocks.NewMockNotifications(ctrl),
		rels:     mocks.NewMockRelations(ctrl),
		disp:     &recordingDispatcher{},
	}

	deps := Deps{
		Posts:         m.posts,
		Members:       m.members,
		Channels:      m.channels,
		ChannelStats:  m.stats,
		Topics:        m.topics,
		TopicMappings: m.mappings,
		Notifications: m.notices,
		Relations:     m.rels,
	}

	s := New(deps, m.disp, testConfig())
	s.now = func() time.Time { return testNow }

	return s, NewExecutor(deps), m
}

var activeMember = &models.Member{ID: "M1", Nickname: "one", Status: 1, AllowPosting: true}

func TestService_Initiate_InsertFailure(t *testing.T) {
	s, _, m := newServiceWithMocks(t)

	m.members.EXPECT().MemberByID(gomock.Any(), "M1").Return(activeMember, nil)
	m.channels.EXPECT().IsActive(gomock.Any(), "chat").Return(true, nil)
	m.posts.EXPECT().InsertPost(gomock.Any(), gomock.Any()).Return(errors.New("mongo down"))

	_, err := s.Initiate(context.Background(), "M1", PostInput{Title: "t", ChannelID: "chat"})
	require.ErrorIs(t, err, ErrInternal)
	require.Empty(t, m.disp.tasks)
}

func TestService_Initiate_RegeneratesIDOnCollision(t *testing.T) {
	s, _, m := newServiceWithMocks(t)

	m.members.EXPECT().MemberByID(gomock.Any(), "M1").Return(activeMember, nil)
	m.channels.EXPECT().IsActive(gomock.Any(), "chat").Return(true, nil)

	var ids []string
	m.posts.EXPECT().InsertPost(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.Post) error {
			ids = append(ids, p.ID)
			if len(ids) == 1 {
				return storage.ErrAlreadyExists
			}
			return nil
		}).Times(2)

	id, err := s.Initiate(context.Background(), "M1", PostInput{
		Title:     "t",
		ChannelID: "chat",
		Topics:    topicsOf("旅行"),
		Cues:      []CueInput{{MemberID: "M2"}},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	require.NotEqual(t, ids[0], ids[1])
	require.Equal(t, ids[1], id)

	require.Len(t, m.disp.tasks, 1)
	task := m.disp.tasks[0]
	require.Equal(t, opInitiate, task.Operation)
	require.Equal(t, testNow, task.OccurredAt)
	require.Equal(t, id, task.Post.PostID)

	kinds := make([]models.StepKind, 0, len(task.Steps))
	for _, st := range task.Steps {
		kinds = append(kinds, st.Kind)
	}
	require.Equal(t, []models.StepKind{
		models.StepMemberCounter,
		models.StepChannelCounter,
		models.StepTopicAttach,
		models.StepNotify,
	}, kinds)
}

func TestService_Initiate_ChannelLookupError(t *testing.T) {
	s, _, m := newServiceWithMocks(t)

	m.members.EXPECT().MemberByID(gomock.Any(), "M1").Return(activeMember, nil)
	m.channels.EXPECT().IsActive(gomock.Any(), "chat").Return(false, errors.New("redis and mongo down"))

	_, err := s.Initiate(context.Background(), "M1", PostInput{Title: "t", ChannelID: "chat"})
	require.ErrorIs(t, err, ErrInternal)
}

func TestService_Edit_VersionConflict(t *testing.T) {
	s, _, m := newServiceWithMocks(t)

	id := keys.NewPostID()
	post := &models.Post{
		ID:           id,
		MemberID:     "M1",
		Content:      models.PostContent{Title: "old", ChannelID: "chat"},
		Status:       models.PostPublished,
		AllowEditing: true,
		Version:      3,
	}

	m.posts.EXPECT().PostByID(gomock.Any(), id).Return(post, nil)
	m.members.EXPECT().MemberByID(gomock.Any(), "M1").Return(activeMember, nil)
	m.channels.EXPECT().IsActive(gomock.Any(), "chat").Return(true, nil)
	m.posts.EXPECT().EditPost(gomock.Any(), id, int64(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ int64, e models.PostEdit) error {
			require.Equal(t, "old", e.Snapshot.Content.Title)
			require.Equal(t, testNow, e.At)
			require.Equal(t, testNow, e.Snapshot.EditedTime)
			return storage.ErrConflict
		})

	_, err := s.Edit(context.Background(), "M1", id, PostInput{Title: "new", ChannelID: "chat"})
	require.ErrorIs(t, err, ErrConflict)
	require.Empty(t, m.disp.tasks)
}

func TestService_Edit_EditingNotAllowed(t *testing.T) {
	s, _, m := newServiceWithMocks(t)

	id := keys.NewPostID()
	m.posts.EXPECT().PostByID(gomock.Any(), id).Return(&models.Post{
		ID: id, MemberID: "M1", Status: models.PostPublished, AllowEditing: false,
	}, nil)

	_, err := s.Edit(context.Background(), "M1", id, PostInput{Title: "new", ChannelID: "chat"})
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestService_Delete_StorageErrors(t *testing.T) {
	s, _, m := newServiceWithMocks(t)
	id := keys.NewPostID()
	post := &models.Post{ID: id, MemberID: "M1", Status: models.PostPublished}

	m.posts.EXPECT().PostByID(gomock.Any(), id).Return(post, nil)
	m.posts.EXPECT().MarkPostDeleted(gomock.Any(), id, int64(0)).Return(errors.New("boom"))
	require.ErrorIs(t, s.Delete(context.Background(), "M1", id), ErrInternal)

	m.posts.EXPECT().PostByID(gomock.Any(), id).Return(nil, errors.New("boom"))
	require.ErrorIs(t, s.Delete(context.Background(), "M1", id), ErrInternal)

	require.Empty(t, m.disp.tasks)
}

func TestService_View_ViewerLookupFailureCountsAnonymous(t *testing.T) {
	s, _, m := newServiceWithMocks(t)
	id := keys.NewPostID()

	m.posts.EXPECT().PostByID(gomock.Any(), id).Return(&models.Post{
		ID: id, MemberID: "M1", Status: models.PostPublished,
		Content: models.PostContent{ChannelID: "chat", Topics: []models.TopicInfo{{TopicID: "t1", Content: "x"}}},
	}, nil)
	m.members.EXPECT().MemberByID(gomock.Any(), "M2").Return(nil, errors.New("timeout"))

	_, err := s.View(context.Background(), "M2", id)
	require.NoError(t, err)

	require.Len(t, m.disp.tasks, 1)
	steps := m.disp.tasks[0].Steps
	require.Equal(t, []models.Step{
		{Kind: models.StepPostCounter, Target: id, Counter: string(models.PostHitCount)},
		{Kind: models.StepChannelCounter, Target: "chat", Counter: string(models.ChannelHitCount)},
		{Kind: models.StepTopicCounter, Target: "t1", Counter: string(models.TopicHitCount)},
	}, steps)
}

func TestExecutor_AttachTopic_CreatesMissingTopic(t *testing.T) {
	_, exec, m := newServiceWithMocks(t)

	ref := models.PostRef{PostID: "P1", AuthorID: "M1", ChannelID: "chat", Title: "t"}
	topic := models.TopicInfo{TopicID: "T1", Content: "旅行"}

	gomock.InOrder(
		m.mappings.EXPECT().ActivateMapping(gomock.Any(), models.TopicPostMapping{
			ID: "T1_P1", TopicID: "T1", PostID: "P1", Title: "t", ChannelID: "chat",
			MemberID: "M1", CreatedTime: testNow, Status: models.MappingActive,
		}).Return(true, nil),
		m.topics.EXPECT().IncrementTopicCounter(gomock.Any(), "T1", models.TopicPostCount).Return(storage.ErrNotFound),
		m.topics.EXPECT().UpsertTopic(gomock.Any(), models.Topic{
			ID: "T1", Content: "旅行", ChannelID: "chat", CreatedTime: testNow,
			Status: models.TopicActive, TotalPostCount: 1,
		}).Return(nil),
	)

	require.NoError(t, exec.AttachTopic(context.Background(), ref, topic, testNow))
}

func TestExecutor_AttachTopic_AlreadyActiveIsNoop(t *testing.T) {
	_, exec, m := newServiceWithMocks(t)

	m.mappings.EXPECT().ActivateMapping(gomock.Any(), gomock.Any()).Return(false, nil)

	err := exec.AttachTopic(context.Background(), models.PostRef{PostID: "P1"}, models.TopicInfo{TopicID: "T1"}, testNow)
	require.NoError(t, err)
}

func TestExecutor_AttachTopic_RevertsMappingOnFailure(t *testing.T) {
	_, exec, m := newServiceWithMocks(t)

	gomock.InOrder(
		m.mappings.EXPECT().ActivateMapping(gomock.Any(), gomock.Any()).Return(true, nil),
		m.topics.EXPECT().IncrementTopicCounter(gomock.Any(), "T1", models.TopicPostCount).Return(errors.New("down")),
		m.mappings.EXPECT().DeactivateMapping(gomock.Any(), "T1_P1").Return(true, nil),
	)

	err := exec.AttachTopic(context.Background(), models.PostRef{PostID: "P1"}, models.TopicInfo{TopicID: "T1"}, testNow)
	require.Error(t, err)
}

func TestExecutor_DetachTopic_RevertsMappingOnFailure(t *testing.T) {
	_, exec, m := newServiceWithMocks(t)

	gomock.InOrder(
		m.mappings.EXPECT().DeactivateMapping(gomock.Any(), "T1_P1").Return(true, nil),
		m.topics.EXPECT().IncrementTopicCounter(gomock.Any(), "T1", models.TopicPostDeleteCount).Return(errors.New("down")),
		m.mappings.EXPECT().ActivateMapping(gomock.Any(), gomock.Any()).Return(true, nil),
	)

	err := exec.DetachTopic(context.Background(), models.PostRef{PostID: "P1"}, models.TopicInfo{TopicID: "T1"}, testNow)
	require.Error(t, err)
}

func TestExecutor_Notify(t *testing.T) {
	ref := models.PostRef{PostID: "P1", AuthorID: "M1", Title: "hello"}
	args := models.NoticeArgs{Category: models.NoticeCue, RecipientID: "M2", InitiatorID: "M1", Nickname: "one"}
	blocking := models.RelationFilter{Table: models.RelationBlocking, PartitionKey: "M2", RowKey: "M1", OnlyActive: true}

	t.Run("blocking lookup error", func(t *testing.T) {
		_, exec, m := newServiceWithMocks(t)
		m.rels.EXPECT().ListEntities(gomock.Any(), blocking).Return(nil, errors.New("pg down"))

		require.Error(t, exec.Notify(context.Background(), ref, args, testNow))
	})

	t.Run("already counted", func(t *testing.T) {
		_, exec, m := newServiceWithMocks(t)
		m.rels.EXPECT().ListEntities(gomock.Any(), blocking).Return(nil, nil)
		m.notices.EXPECT().UpsertNotification(gomock.Any(), gomock.Any()).Return(true, nil)

		require.NoError(t, exec.Notify(context.Background(), ref, args, testNow))
	})

	t.Run("counter failure leaves notice uncounted", func(t *testing.T) {
		_, exec, m := newServiceWithMocks(t)
		m.rels.EXPECT().ListEntities(gomock.Any(), blocking).Return(nil, nil)
		m.notices.EXPECT().UpsertNotification(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n models.Notification) (bool, error) {
				require.Equal(t, "cue:M1:P1", n.NoticeID)
				require.Equal(t, "hello", n.PostTitle)
				require.True(t, n.IsActive)
				return false, nil
			})
		m.notices.EXPECT().IncrementNotificationCounter(gomock.Any(), "M2", models.NoticeCue).Return(storage.ErrNotFound)

		err := exec.Notify(context.Background(), ref, args, testNow)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("self notice skipped", func(t *testing.T) {
		_, exec, _ := newServiceWithMocks(t)
		self := args
		self.RecipientID = "M1"

		require.NoError(t, exec.Notify(context.Background(), ref, self, testNow))
	})
}

func TestExecutor_Execute_Counters(t *testing.T) {
	_, exec, m := newServiceWithMocks(t)
	ctx := context.Background()
	task := models.Task{Post: models.PostRef{PostID: "P1"}}

	m.stats.EXPECT().IncrementChannelCounter(gomock.Any(), "chat", models.ChannelHitCount).Return(storage.ErrNotFound)
	err := exec.Execute(ctx, task, channelStep("chat", models.ChannelHitCount))
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.Contains(t, err.Error(), "channel_statistics chat.total_hit_count")

	m.members.EXPECT().IncrementMemberCounter(gomock.Any(), "M1", models.MemberCreationCount).Return(nil)
	require.NoError(t, exec.Execute(ctx, task, memberStep("M1", models.MemberCreationCount)))

	require.Error(t, exec.Execute(ctx, task, models.Step{Kind: models.StepMemberCounter, Target: "M1", Counter: "bogus"}))
	require.Error(t, exec.Execute(ctx, task, models.Step{Kind: "unknown"}))
	require.Error(t, exec.Execute(ctx, task, models.Step{Kind: models.StepTopicAttach}))
}
