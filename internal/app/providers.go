package app

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/trannm-ct/channel-chat/internal/config"
	"github.com/trannm-ct/channel-chat/internal/models"
	"github.com/trannm-ct/channel-chat/internal/repo/blob"
	"github.com/trannm-ct/channel-chat/internal/repo/memory"
	"github.com/trannm-ct/channel-chat/internal/repo/messagestore"
	"github.com/trannm-ct/channel-chat/internal/repo/mongodb"
	"github.com/trannm-ct/channel-chat/internal/usecase"
)

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	opts := options.Client().
		SetAppName("channel-chat").
		SetDirect(cfg.Database.Direct).
		SetHosts(cfg.Database.Hosts)

	if cfg.Database.Username != "" {
		opts.SetAuth(options.Credential{
			Username:      cfg.Database.Username,
			Password:      cfg.Database.Password,
			AuthSource:    cfg.Database.AuthDB,
			AuthMechanism: "SCRAM-SHA-1",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("init mongo client: %w", err)
	}

	mongoDB := mongoClient.Database(cfg.Database.Database)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
		OnStop: func(ctx context.Context) error {
			return mongoClient.Disconnect(ctx)
		},
	})

	return &mongodb.DB{
		Client:   mongoClient,
		Database: mongoDB,
	}, nil
}

func newBlobClient(cfg *config.Config) (*s3.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return blob.NewClient(ctx, cfg.Storage)
}

func newBlobStore(client *s3.Client, cfg *config.Config) *blob.Store {
	return blob.NewStore(client, cfg.Storage)
}

func newLocalStore(cfg *config.Config) *memory.Store {
	if cfg.Chat.SeedLocal {
		return memory.New(models.SeedMessages()...)
	}
	return memory.New()
}

func newRouter(local *memory.Store, remote mongodb.MessageRepository, cfg *config.Config) *messagestore.Router {
	return messagestore.NewRouter(local, remote, cfg.Chat.UseRemote)
}

func newChannelList(cfg *config.Config) models.ChannelList {
	return models.ChannelList(cfg.Chat.Channels)
}

func newChannelView(cfg *config.Config, store *messagestore.Router, notifier *usecase.Notifier) *usecase.ChannelView {
	return usecase.NewChannelView(models.ChannelList(cfg.Chat.Channels), cfg.Chat.DefaultChannel, store, notifier)
}
