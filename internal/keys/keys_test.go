package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPostID_ShapeAndUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewPostID()
		require.Len(t, id, PostIDLength)
		require.True(t, ValidPostID(id), id)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestValidPostID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id string
		ok bool
	}{
		{"AbCdEfGh01234-_z", true},
		{"", false},
		{"short", false},
		{"AbCdEfGh01234-_zz", false},
		{"AbCdEfGh0123/+==", false},
		{"AbCdEfGh 1234-_z", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.ok, ValidPostID(tt.id), tt.id)
	}
}

// Одинаковый текст всегда даёт одинаковый id, разный — разный.
func TestTopicID_Deterministic(t *testing.T) {
	t.Parallel()

	require.Equal(t, TopicID("聖誕假期"), TopicID("聖誕假期"))
	require.Equal(t, TopicID("旅行"), TopicID("  旅行 "))
	require.NotEqual(t, TopicID("旅行"), TopicID("美食"))
	require.Equal(t, "5peF6KGM", TopicID("旅行"))
}

func TestMappingID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "5peF6KGM_AbCdEfGh01234-_z", MappingID("5peF6KGM", "AbCdEfGh01234-_z"))
}

func TestNoticeID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "cue:M1:P1", NoticeID("cue", "M1", "P1", ""))
	require.Equal(t, "cue:M1:P1:C1", NoticeID("cue", "M1", "P1", "C1"))
	require.Equal(t, NoticeID("save", "M1", "P1", ""), NoticeID("save", "M1", "P1", ""))
	require.NotEqual(t, NoticeID("save", "M1", "P1", ""), NoticeID("cue", "M1", "P1", ""))
}
