package memory

import (
	"context"
	"testing"
	"time"

	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestPosts_EditCAS(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()

	p := models.Post{ID: "P", Status: models.PostPublished, Stats: models.PostStatistics{TotalLikedCount: 3}}
	require.NoError(t, s.InsertPost(ctx, p))
	require.ErrorIs(t, s.InsertPost(ctx, p), storage.ErrAlreadyExists)

	at := time.Unix(100, 0)
	e := models.PostEdit{Content: models.PostContent{Title: "new"}, Status: models.PostPublished, Snapshot: p.Snapshot(at), At: at}
	require.NoError(t, s.EditPost(ctx, "P", 0, e))
	require.ErrorIs(t, s.EditPost(ctx, "P", 0, e), storage.ErrConflict)
	require.ErrorIs(t, s.EditPost(ctx, "nope", 0, e), storage.ErrNotFound)

	got, err := s.PostByID(ctx, "P")
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Version)
	require.Len(t, got.Edited, 1)
	require.EqualValues(t, 3, got.Edited[0].TotalLikedCount)
	require.Zero(t, got.Stats.TotalLikedCount)
	require.EqualValues(t, 1, got.Stats.TotalEditCount)
}

func TestPosts_AttachImagesOnlyFromAwaiting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()

	require.NoError(t, s.InsertPost(ctx, models.Post{ID: "P", Status: models.PostAwaitingImages}))
	require.NoError(t, s.AttachImages(ctx, "P", 0, []string{"a.png"}))
	require.ErrorIs(t, s.AttachImages(ctx, "P", 1, []string{"b.png"}), storage.ErrConflict)

	got, _ := s.PostByID(ctx, "P")
	require.Equal(t, models.PostPublished, got.Status)
	require.Equal(t, []string{"a.png"}, got.Content.ImageFullnames)
}

func TestCounters_MissingDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()

	require.ErrorIs(t, s.IncrementMemberCounter(ctx, "M", models.MemberCreationCount), storage.ErrNotFound)
	s.PutMember(models.Member{ID: "M", Status: 1})
	require.NoError(t, s.IncrementMemberCounter(ctx, "M", models.MemberCreationCount))
	require.EqualValues(t, 1, s.MemberStats("M")[string(models.MemberCreationCount)])
}

func TestMappings_Transitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()

	m := models.TopicPostMapping{ID: "T_P", TopicID: "T", PostID: "P"}
	ok, err := s.ActivateMapping(ctx, m)
	require.NoError(t, err)
	require.True(t, ok)

	ok, _ = s.ActivateMapping(ctx, m)
	require.False(t, ok)

	ok, _ = s.DeactivateMapping(ctx, "T_P")
	require.True(t, ok)
	ok, _ = s.DeactivateMapping(ctx, "T_P")
	require.False(t, ok)

	ok, _ = s.ActivateMapping(ctx, m)
	require.True(t, ok)
}

func TestNotifications_CountedSurvivesOverwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()

	n := models.Notification{MemberID: "M", NoticeID: "cue:I:P", IsActive: true}
	counted, err := s.UpsertNotification(ctx, n)
	require.NoError(t, err)
	require.False(t, counted)
	require.NoError(t, s.MarkNotificationCounted(ctx, "M", "cue:I:P"))

	counted, err = s.UpsertNotification(ctx, n)
	require.NoError(t, err)
	require.True(t, counted)
	require.Len(t, s.NotificationsOf("M"), 1)
}

func TestRelations_ReplaceAndMerge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()

	r := models.Relation{Table: models.RelationSaving, PartitionKey: "M", RowKey: "P", IsActive: true,
		Props: map[string]any{"a": 1, "b": 2}}
	require.NoError(t, s.UpsertEntity(ctx, r, models.UpsertReplace))

	r.Props = map[string]any{"b": 3}
	require.NoError(t, s.UpsertEntity(ctx, r, models.UpsertMerge))
	got, _ := s.ListEntities(ctx, models.RelationFilter{Table: models.RelationSaving, PartitionKey: "M"})
	require.Len(t, got, 1)
	require.Equal(t, map[string]any{"a": 1, "b": 3}, got[0].Props)

	require.NoError(t, s.UpsertEntity(ctx, r, models.UpsertReplace))
	got, _ = s.ListEntities(ctx, models.RelationFilter{Table: models.RelationSaving, PartitionKey: "M", RowKey: "P"})
	require.Equal(t, map[string]any{"b": 3}, got[0].Props)

	r.IsActive = false
	require.NoError(t, s.UpsertEntity(ctx, r, models.UpsertMerge))
	got, _ = s.ListEntities(ctx, models.RelationFilter{Table: models.RelationSaving, PartitionKey: "M", OnlyActive: true})
	require.Empty(t, got)
}

func TestOutbox_ClaimLeaseAndPurge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()
	now := time.Unix(1000, 0)

	require.NoError(t, s.EnqueueTask(ctx, models.Task{ID: "a", Status: models.TaskPending, NextAttemptAt: now}))
	require.NoError(t, s.EnqueueTask(ctx, models.Task{ID: "b", Status: models.TaskPending, NextAttemptAt: now.Add(time.Hour)}))

	claimed, err := s.ClaimDueTasks(ctx, now, time.Minute, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	require.Equal(t, "a", claimed[0].ID)

	// Аренда действует — повторно не выдаётся.
	claimed, _ = s.ClaimDueTasks(ctx, now.Add(time.Second), time.Minute, 10)
	require.Empty(t, claimed)

	n, _ := s.ReleaseExpiredLeases(ctx, now.Add(2*time.Minute))
	require.EqualValues(t, 1, n)

	var task models.Task
	for _, tk := range s.Tasks() {
		if tk.ID == "a" {
			task = tk
		}
	}
	task.Status = models.TaskDone
	task.UpdatedAt = now
	require.NoError(t, s.SaveTask(ctx, task))

	n, _ = s.PurgeFinished(ctx, now.Add(time.Hour))
	require.EqualValues(t, 1, n)
	require.Len(t, s.Tasks(), 1)
}
