package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func samplePost() Post {
	return Post{
		ID:          "AAAAAAAAAAAAAAAA",
		MemberID:    "M1",
		CreatedTime: time.Unix(1700000000, 0),
		Content: PostContent{
			Title:          "title",
			ImageFullnames: []string{"a.png"},
			Paragraphs:     []string{"p1", "p2"},
			CuedMembers:    []CuedMember{{MemberID: "M2", Nickname: "two"}},
			ChannelID:      "chat",
			Topics:         []TopicInfo{{TopicID: "t", Content: "topic"}},
		},
		Status:          PostPublished,
		AllowEditing:    true,
		AllowCommenting: true,
		Stats: PostStatistics{
			TotalHitCount:       10,
			TotalLikedCount:     5,
			TotalUndoLikedCount: 2,
			TotalSavedCount:     3,
			TotalUndoSavedCount: 1,
		},
	}
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, PostAwaitingImages, StatusFor(true))
	require.Equal(t, PostPublished, StatusFor(false))
	require.True(t, PostDeleted.IsDeleted())
	require.False(t, PostAwaitingImages.IsVisible())
	require.Equal(t, "awaiting_images", PostAwaitingImages.String())
}

// Эффективные значения вычисляются из пар счётчиков.
func TestRestrict_EffectiveCounts(t *testing.T) {
	t.Parallel()

	rp := samplePost().Restrict()
	require.Equal(t, "title", rp.Title)
	require.EqualValues(t, 3, rp.TotalLikedCount)
	require.EqualValues(t, 2, rp.TotalSavedCount)
	require.EqualValues(t, 1700000000, rp.CreatedTimeBySecond)
	require.False(t, rp.Edited)
}

// Удалённый пост скрывает всё содержимое, независимо от флагов.
func TestRestrict_DeletedHidesContent(t *testing.T) {
	t.Parallel()

	p := samplePost()
	p.Status = PostDeleted
	now := time.Now()
	p.LastEditedTime = &now

	rp := p.Restrict()
	require.Equal(t, int(PostDeleted), rp.Status)
	require.Empty(t, rp.Title)
	require.Empty(t, rp.ImageFullnames)
	require.Empty(t, rp.Paragraphs)
	require.Empty(t, rp.CuedMembers)
	require.Empty(t, rp.ChannelID)
	require.Empty(t, rp.Topics)
	require.False(t, rp.AllowCommenting)
	require.Zero(t, rp.TotalLikedCount)
	require.True(t, rp.Edited)
}

func TestSnapshot_CapturesResettableCounters(t *testing.T) {
	t.Parallel()

	p := samplePost()
	p.Stats.TotalDislikedCount = 4
	p.Stats.TotalAffairCount = 7
	at := time.Unix(1700000100, 0)

	s := p.Snapshot(at)
	require.Equal(t, p.Content, s.Content)
	require.EqualValues(t, 5, s.TotalLikedCount)
	require.EqualValues(t, 2, s.TotalUndoLikedCount)
	require.EqualValues(t, 4, s.TotalDislikedCount)
	require.EqualValues(t, 7, s.TotalAffairCount)
	require.Equal(t, at, s.EditedTime)
}

func TestTask_Pending(t *testing.T) {
	t.Parallel()

	task := Task{Steps: []Step{{Done: true}, {}, {Done: true}, {}}}
	require.Equal(t, []int{1, 3}, task.Pending())
	require.False(t, task.Completed())

	task.Steps[1].Done, task.Steps[3].Done = true, true
	require.True(t, task.Completed())
}

func TestCounters_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, MemberCreationCount.Valid())
	require.False(t, MemberCounter("total_anything").Valid())
	require.True(t, ChannelHitCount.Valid())
	require.True(t, TopicPostDeleteCount.Valid())
	require.True(t, PostMemberHitCount.Valid())
	require.False(t, PostCounter("total_edit_count").Valid())
	require.True(t, NoticeCue.Valid())
	require.False(t, NotificationCategory("like").Valid())
}
