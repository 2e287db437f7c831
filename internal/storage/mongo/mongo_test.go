package mongo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-platform/internal/config"
	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"github.com/stretchr/testify/require"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"go.mongodb.org/mongo-driver/bson"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Адрес контейнера прокидывается в ENV DATABASE_URL, а каждый тест
// создаёт свою БД с уникальным именем (см. newTestConfig).
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7.0",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// newTestConfig создаёт конфиг с отдельной тестовой БД.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	baseURL := os.Getenv("DATABASE_URL")
	if baseURL == "" {
		baseURL = "mongodb://localhost:27017"
	}

	return &config.Config{
		DB: config.DBConfig{
			URL:  baseURL,
			Name: "social_test_" + uuid.New().String(),
		},
	}
}

// mustNewMongo создаёт подключение к тестовой БД и регистрирует очистку по завершении теста.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()

	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION=1 to run MongoDB integration tests")
	}

	cfg := newTestConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, cfg)
	require.NoError(t, err, "cannot connect to MongoDB (DATABASE_URL=%s)", cfg.DB.URL)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)
	return ctx
}

func TestDatabaseFromURI(t *testing.T) {
	require.Equal(t, "posts", databaseFromURI("mongodb://localhost:27017/posts?replicaSet=rs0"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017"))
	require.Equal(t, defaultDBName, databaseFromURI("::bad::"))
}

func TestNormalizeContent(t *testing.T) {
	c := normalizeContent(models.PostContent{Title: "x"})
	require.NotNil(t, c.ImageFullnames)
	require.NotNil(t, c.Paragraphs)
	require.NotNil(t, c.CuedMembers)
	require.NotNil(t, c.Topics)
}

// countersOf читает документ статистики как набор счётчиков.
func countersOf(t *testing.T, m *Mongo, coll, id string) bson.M {
	t.Helper()
	var out bson.M
	require.NoError(t, m.db.Collection(coll).FindOne(testCtx(t), bson.D{{Key: "_id", Value: id}}).Decode(&out))
	return out
}

func TestPosts_InsertEditDelete(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	now := time.Now().UTC().Truncate(time.Millisecond)
	p := models.Post{
		ID:          "AbCdEfGh01234-_z",
		MemberID:    "M1",
		CreatedTime: now,
		Content:     models.PostContent{Title: "t1", ChannelID: "chat", Topics: []models.TopicInfo{{TopicID: "a", Content: "a"}}},
		Status:      models.PostPublished,
		Stats:       models.PostStatistics{TotalLikedCount: 4, TotalDislikedCount: 1},
	}
	require.NoError(t, m.InsertPost(ctx, p))
	require.ErrorIs(t, m.InsertPost(ctx, p), storage.ErrAlreadyExists)

	at := now.Add(time.Minute)
	edit := models.PostEdit{
		Content:  models.PostContent{Title: "t2", ChannelID: "chat"},
		Status:   models.PostAwaitingImages,
		Snapshot: p.Snapshot(at),
		At:       at,
	}
	require.NoError(t, m.EditPost(ctx, p.ID, 0, edit))
	require.ErrorIs(t, m.EditPost(ctx, p.ID, 0, edit), storage.ErrConflict)
	require.ErrorIs(t, m.EditPost(ctx, "missing000000000", 0, edit), storage.ErrNotFound)

	got, err := m.PostByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "t2", got.Content.Title)
	require.Equal(t, models.PostAwaitingImages, got.Status)
	require.EqualValues(t, 1, got.Version)
	require.EqualValues(t, 1, got.Stats.TotalEditCount)
	require.Zero(t, got.Stats.TotalLikedCount)
	require.Len(t, got.Edited, 1)
	require.EqualValues(t, 4, got.Edited[0].TotalLikedCount)
	require.Equal(t, "t1", got.Edited[0].Content.Title)
	require.NotNil(t, got.LastEditedTime)

	require.NoError(t, m.AttachImages(ctx, p.ID, 1, []string{"post/a.png"}))
	require.ErrorIs(t, m.AttachImages(ctx, p.ID, 2, nil), storage.ErrConflict)

	require.NoError(t, m.IncrementPostCounter(ctx, p.ID, models.PostHitCount))
	require.NoError(t, m.MarkPostDeleted(ctx, p.ID, 2))

	got, err = m.PostByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, models.PostDeleted, got.Status)
	require.EqualValues(t, 1, got.Stats.TotalHitCount)
	require.Equal(t, []string{"post/a.png"}, got.Content.ImageFullnames)
}

func TestStatistics_NoUpsert(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	require.ErrorIs(t, m.IncrementMemberCounter(ctx, "M1", models.MemberCreationCount), storage.ErrNotFound)
	require.ErrorIs(t, m.IncrementChannelCounter(ctx, "chat", models.ChannelPostCount), storage.ErrNotFound)

	_, err := m.memberStats.InsertOne(ctx, bson.D{{Key: "_id", Value: "M1"}})
	require.NoError(t, err)
	require.NoError(t, m.IncrementMemberCounter(ctx, "M1", models.MemberCreationCount))
	require.NoError(t, m.IncrementMemberCounter(ctx, "M1", models.MemberCreationCount))
	require.EqualValues(t, 2, countersOf(t, m, memberStatisticsCollection, "M1")["total_creation_count"])
}

// Параллельные создатели одной темы сходятся к одному документу.
func TestUpsertTopic_ConcurrentCreators(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	topic := models.Topic{ID: "5peF6KGM", Content: "旅行", ChannelID: "chat", Status: 200, CreatedTime: time.Now().UTC()}

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- m.UpsertTopic(ctx, topic)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := m.TopicByID(ctx, topic.ID)
	require.NoError(t, err)
	require.EqualValues(t, n, got.TotalPostCount)
	require.Equal(t, "旅行", got.Content)

	require.NoError(t, m.IncrementTopicCounter(ctx, topic.ID, models.TopicHitCount))
	require.ErrorIs(t, m.IncrementTopicCounter(ctx, "nope", models.TopicHitCount), storage.ErrNotFound)
}

func TestMappings_Transitions(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	tp := models.TopicPostMapping{ID: "T_P", TopicID: "T", PostID: "P", Title: "x", CreatedTime: time.Now().UTC()}

	ok, err := m.ActivateMapping(ctx, tp)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.ActivateMapping(ctx, tp)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = m.DeactivateMapping(ctx, "T_P")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.DeactivateMapping(ctx, "T_P")
	require.NoError(t, err)
	require.False(t, ok)

	got, err := m.MappingByID(ctx, "T_P")
	require.NoError(t, err)
	require.Equal(t, models.MappingDeleted, got.Status)
}

func TestNotifications_UpsertKeepsCounted(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	n := models.Notification{MemberID: "M2", NoticeID: "cue:M1:P", Category: models.NoticeCue, CreatedTime: time.Now().UTC()}

	counted, err := m.UpsertNotification(ctx, n)
	require.NoError(t, err)
	require.False(t, counted)
	require.NoError(t, m.MarkNotificationCounted(ctx, "M2", "cue:M1:P"))

	counted, err = m.UpsertNotification(ctx, n)
	require.NoError(t, err)
	require.True(t, counted)

	cnt, err := m.notifications.CountDocuments(ctx, bson.D{{Key: "member_id", Value: "M2"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, cnt)
}

func TestOutbox_ClaimSaveRelease(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	now := time.Now().UTC().Truncate(time.Millisecond)
	task := models.Task{
		ID: "t1", Operation: "create", Status: models.TaskPending,
		Steps:         []models.Step{{Kind: models.StepMemberCounter, Target: "M1", Counter: "total_creation_count"}},
		NextAttemptAt: now, CreatedAt: now, UpdatedAt: now, OccurredAt: now,
	}
	require.NoError(t, m.EnqueueTask(ctx, task))
	require.ErrorIs(t, m.EnqueueTask(ctx, task), storage.ErrAlreadyExists)

	claimed, err := m.ClaimDueTasks(ctx, now, time.Minute, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	require.NotNil(t, claimed[0].LeaseUntil)

	claimed, err = m.ClaimDueTasks(ctx, now, time.Minute, 10)
	require.NoError(t, err)
	require.Empty(t, claimed)

	released, err := m.ReleaseExpiredLeases(ctx, now.Add(2*time.Minute))
	require.NoError(t, err)
	require.EqualValues(t, 1, released)

	task.Status = models.TaskDone
	task.Steps[0].Done = true
	require.NoError(t, m.SaveTask(ctx, task))

	purged, err := m.PurgeFinished(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)
}
