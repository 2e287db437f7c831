package mocks

import (
	"github.com/pribylovaa/go-social-platform/internal/storage"
)

// Моки обязаны реализовывать контракты хранилищ.
var (
	_ storage.Posts            = (*MockPosts)(nil)
	_ storage.Members          = (*MockMembers)(nil)
	_ storage.Channels         = (*MockChannels)(nil)
	_ storage.ChannelDirectory = (*MockChannelDirectory)(nil)
	_ storage.Topics           = (*MockTopics)(nil)
	_ storage.TopicMappings    = (*MockTopicMappings)(nil)
	_ storage.Notifications    = (*MockNotifications)(nil)
	_ storage.Relations        = (*MockRelations)(nil)
	_ storage.Outbox           = (*MockOutbox)(nil)
	_ storage.Images           = (*MockImages)(nil)
)
