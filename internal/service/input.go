package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/go-social-platform/internal/keys"
	"github.com/pribylovaa/go-social-platform/internal/models"
)

// Входные структуры сервисного слоя.

// CueInput — упоминание участника.
type CueInput struct {
	MemberID string `json:"memberId" validate:"required"`
	Nickname string `json:"nickname"`
}

// TopicInput — тема поста. Клиентский topicId игнорируется: id выводится из текста.
type TopicInput struct {
	TopicID string `json:"topicId"`
	Content string `json:"content" validate:"required"`
}

// PostInput — тело initiate/edit.
type PostInput struct {
	Title      string       `json:"title"             validate:"required"`
	Paragraphs []string     `json:"paragraphsArr"`
	Cues       []CueInput   `json:"cuedMemberInfoArr" validate:"dive"`
	ChannelID  string       `json:"channelId"         validate:"required"`
	Topics     []TopicInput `json:"topicInfoArr"      validate:"dive"`
	HasImages  bool         `json:"hasImages"`
}

// CreateInput — прямое создание поста сразу с изображениями.
type CreateInput struct {
	PostInput
	ImageFullnames []string `json:"imageFullnamesArr"`
}

// postCommand — проверенный и нормализованный PostInput.
type postCommand struct {
	content   models.PostContent
	hasImages bool
}

// normalize проверяет схему и лимиты и собирает содержимое поста:
//   - title и тексты тем без крайних пробелов;
//   - упоминания без дублей, лишние сверх MaxCues отбрасываются;
//   - темы без дублей по выведенному id.
func (s *Service) normalize(in PostInput) (postCommand, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.ChannelID = strings.TrimSpace(in.ChannelID)
	in.Cues = append([]CueInput(nil), in.Cues...)
	in.Topics = append([]TopicInput(nil), in.Topics...)
	for i := range in.Cues {
		in.Cues[i].MemberID = strings.TrimSpace(in.Cues[i].MemberID)
	}
	for i := range in.Topics {
		in.Topics[i].Content = strings.TrimSpace(in.Topics[i].Content)
	}

	if err := s.validate.Struct(in); err != nil {
		return postCommand{}, err
	}

	if utf8.RuneCountInString(in.Title) > s.limits.MaxTitleLength {
		return postCommand{}, fmt.Errorf("title longer than %d", s.limits.MaxTitleLength)
	}

	if len(in.Paragraphs) > s.limits.MaxParagraphs {
		return postCommand{}, fmt.Errorf("more than %d paragraphs", s.limits.MaxParagraphs)
	}

	cues := make([]models.CuedMember, 0, len(in.Cues))
	seenCue := make(map[string]struct{}, len(in.Cues))
	for _, c := range in.Cues {
		id := c.MemberID
		if _, ok := seenCue[id]; ok {
			continue
		}
		if len(cues) == s.limits.MaxCues {
			break
		}
		seenCue[id] = struct{}{}
		cues = append(cues, models.CuedMember{MemberID: id, Nickname: strings.TrimSpace(c.Nickname)})
	}

	topics := make([]models.TopicInfo, 0, len(in.Topics))
	seenTopic := make(map[string]struct{}, len(in.Topics))
	for _, t := range in.Topics {
		if utf8.RuneCountInString(t.Content) > s.limits.MaxTopicLength {
			return postCommand{}, fmt.Errorf("topic longer than %d", s.limits.MaxTopicLength)
		}
		id := keys.TopicID(t.Content)
		if _, ok := seenTopic[id]; ok {
			continue
		}
		seenTopic[id] = struct{}{}
		topics = append(topics, models.TopicInfo{TopicID: id, Content: t.Content})
	}

	if len(topics) > s.limits.MaxTopics {
		return postCommand{}, fmt.Errorf("more than %d topics", s.limits.MaxTopics)
	}

	paragraphs := in.Paragraphs
	if paragraphs == nil {
		paragraphs = []string{}
	}

	return postCommand{
		content: models.PostContent{
			Title:          in.Title,
			ImageFullnames: []string{},
			Paragraphs:     paragraphs,
			CuedMembers:    cues,
			ChannelID:      in.ChannelID,
			Topics:         topics,
		},
		hasImages: in.HasImages,
	}, nil
}

// normalizeImages проверяет список полных имён изображений.
func (s *Service) normalizeImages(images []string) ([]string, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images")
	}

	if len(images) > s.limits.MaxImages {
		return nil, fmt.Errorf("more than %d images", s.limits.MaxImages)
	}

	out := make([]string, 0, len(images))
	for _, name := range images {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty image name")
		}
		out = append(out, name)
	}

	return out, nil
}
