package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-platform/internal/models"
)

// Имена операций в задачах fan-out.
const (
	opInitiate     = "initiate"
	opCreate       = "create"
	opAttachImages = "attach_images"
	opEdit         = "edit"
	opDelete       = "delete"
	opView         = "view"
	opSave         = "save"
	opUndoSave     = "undo_save"
)

func newTask(operation string, p models.Post, now time.Time) models.Task {
	return models.Task{
		ID:        uuid.NewString(),
		Operation: operation,
		Post: models.PostRef{
			PostID:    p.ID,
			AuthorID:  p.MemberID,
			ChannelID: p.Content.ChannelID,
			Title:     p.Content.Title,
		},
		OccurredAt: now,
	}
}

func memberStep(memberID string, c models.MemberCounter) models.Step {
	return models.Step{Kind: models.StepMemberCounter, Target: memberID, Counter: string(c)}
}

func channelStep(channelID string, c models.ChannelCounter) models.Step {
	return models.Step{Kind: models.StepChannelCounter, Target: channelID, Counter: string(c)}
}

func postStep(postID string, c models.PostCounter) models.Step {
	return models.Step{Kind: models.StepPostCounter, Target: postID, Counter: string(c)}
}

func topicSteps(topics []models.TopicInfo, c models.TopicCounter) []models.Step {
	out := make([]models.Step, 0, len(topics))
	for _, t := range topics {
		out = append(out, models.Step{Kind: models.StepTopicCounter, Target: t.TopicID, Counter: string(c)})
	}

	return out
}

func attachSteps(topics []models.TopicInfo) []models.Step {
	return topicLinkSteps(models.StepTopicAttach, topics)
}

func detachSteps(topics []models.TopicInfo) []models.Step {
	return topicLinkSteps(models.StepTopicDetach, topics)
}

func topicLinkSteps(kind models.StepKind, topics []models.TopicInfo) []models.Step {
	out := make([]models.Step, 0, len(topics))
	for _, t := range topics {
		t := t
		out = append(out, models.Step{Kind: kind, Target: t.TopicID, Topic: &t})
	}

	return out
}

// cueSteps — уведомления упомянутым участникам от initiator.
// Список упоминаний уже ограничен при нормализации.
func cueSteps(initiator models.Member, cues []models.CuedMember) []models.Step {
	out := make([]models.Step, 0, len(cues))
	for _, c := range cues {
		out = append(out, models.Step{
			Kind:   models.StepNotify,
			Target: c.MemberID,
			Notice: &models.NoticeArgs{
				Category:    models.NoticeCue,
				RecipientID: c.MemberID,
				InitiatorID: initiator.ID,
				Nickname:    initiator.Nickname,
			},
		})
	}

	return out
}

// topicDiff — явная разность множеств тем по id: removed есть только в old,
// added только в next. Общие темы не попадают ни в один список.
func topicDiff(old, next []models.TopicInfo) (removed, added []models.TopicInfo) {
	oldSet := make(map[string]struct{}, len(old))
	for _, t := range old {
		oldSet[t.TopicID] = struct{}{}
	}

	nextSet := make(map[string]struct{}, len(next))
	for _, t := range next {
		nextSet[t.TopicID] = struct{}{}
		if _, ok := oldSet[t.TopicID]; !ok {
			added = append(added, t)
		}
	}

	for _, t := range old {
		if _, ok := nextSet[t.TopicID]; !ok {
			removed = append(removed, t)
		}
	}

	return removed, added
}

// newCues — упоминания из next, которых не было в old.
func newCues(old, next []models.CuedMember) []models.CuedMember {
	seen := make(map[string]struct{}, len(old))
	for _, c := range old {
		seen[c.MemberID] = struct{}{}
	}

	var out []models.CuedMember
	for _, c := range next {
		if _, ok := seen[c.MemberID]; !ok {
			out = append(out, c)
		}
	}

	return out
}
