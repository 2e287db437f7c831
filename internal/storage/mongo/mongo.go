package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-social-platform/internal/config"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	memberCollection            = "member"
	memberStatisticsCollection  = "member_statistics"
	channelCollection           = "channel"
	channelStatisticsCollection = "channel_statistics"
	postCollection              = "post"
	topicCollection             = "topic"
	topicPostCollection         = "topic_post"
	notificationCollection      = "notification"
	notificationStatsCollection = "notification_statistics"
	outboxCollection            = "fanout_outbox"
	defaultDBName               = "social"
)

// Mongo - тонкий адаптер Entity Store поверх MongoDB: по коллекции на вид сущности.
type Mongo struct {
	client *mongodriver.Client
	db     *mongodriver.Database

	members       *mongodriver.Collection
	memberStats   *mongodriver.Collection
	channels      *mongodriver.Collection
	channelStats  *mongodriver.Collection
	posts         *mongodriver.Collection
	topics        *mongodriver.Collection
	topicPosts    *mongodriver.Collection
	notifications *mongodriver.Collection
	noticeStats   *mongodriver.Collection
	outbox        *mongodriver.Collection
}

var (
	_ storage.Posts         = (*Mongo)(nil)
	_ storage.Members       = (*Mongo)(nil)
	_ storage.Channels      = (*Mongo)(nil)
	_ storage.Topics        = (*Mongo)(nil)
	_ storage.TopicMappings = (*Mongo)(nil)
	_ storage.Notifications = (*Mongo)(nil)
	_ storage.Outbox        = (*Mongo)(nil)
)

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := cfg.DB.Name
	if dbName == "" {
		dbName = databaseFromURI(cfg.DB.URL)
	}
	db := cli.Database(dbName)

	m := &Mongo{
		client:        cli,
		db:            db,
		members:       db.Collection(memberCollection),
		memberStats:   db.Collection(memberStatisticsCollection),
		channels:      db.Collection(channelCollection),
		channelStats:  db.Collection(channelStatisticsCollection),
		posts:         db.Collection(postCollection),
		topics:        db.Collection(topicCollection),
		topicPosts:    db.Collection(topicPostCollection),
		notifications: db.Collection(notificationCollection),
		noticeStats:   db.Collection(notificationStatsCollection),
		outbox:        db.Collection(outboxCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping проверяет доступность primary (для /healthz).
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes создает индексы, необходимые сервису.
// - post: лента автора (member_id + created_time desc)
// - topic_post: выдача постов темы и поиск связей поста
// - notification: уникальный ключ (member_id, notice_id)
// - fanout_outbox: выборка задач к исполнению и очистка завершённых
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	specs := []struct {
		coll   *mongodriver.Collection
		models []mongodriver.IndexModel
	}{
		{m.posts, []mongodriver.IndexModel{{
			Keys:    bson.D{{Key: "member_id", Value: 1}, {Key: "created_time", Value: -1}},
			Options: options.Index().SetName("member_created_desc"),
		}}},
		{m.topicPosts, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "topic_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_time", Value: -1}},
				Options: options.Index().SetName("topic_status_created_desc"),
			},
			{
				Keys:    bson.D{{Key: "post_id", Value: 1}},
				Options: options.Index().SetName("post_id"),
			},
		}},
		{m.notifications, []mongodriver.IndexModel{{
			Keys:    bson.D{{Key: "member_id", Value: 1}, {Key: "notice_id", Value: 1}},
			Options: options.Index().SetName("member_notice_unique").SetUnique(true),
		}}},
		{m.outbox, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "next_attempt_at", Value: 1}},
				Options: options.Index().SetName("status_next_attempt"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: 1}},
				Options: options.Index().SetName("status_updated"),
			},
		}},
	}

	for _, s := range specs {
		if _, err := s.coll.Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("mongo ensure indexes on %s: %w", s.coll.Name(), err)
		}
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}

// incOne выполняет $inc +1 по _id без upsert. Нет документа — storage.ErrNotFound.
func incOne(ctx context.Context, coll *mongodriver.Collection, id, field string) error {
	res, err := coll.UpdateByID(ctx, id, bson.D{
		{Key: "$inc", Value: bson.D{{Key: field, Value: 1}}},
	})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}
