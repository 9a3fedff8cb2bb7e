package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trannm-ct/channel-chat/internal/models"
	"github.com/trannm-ct/channel-chat/internal/repo/messagestore"
)

type MessageRepository interface {
	messagestore.Store
	SeedMessages(ctx context.Context, msgs []models.Message) error
}

// messageDoc is the remote wire shape. The document key is the millisecond
// timestamp rendered as a string; the display date is never stored and gets
// rebuilt from the timestamp on read.
type messageDoc struct {
	ID        string                `bson:"_id"`
	Author    string                `bson:"author"`
	Channel   string                `bson:"channel"`
	Content   string                `bson:"content"`
	Timestamp int64                 `bson:"timestamp"`
	ImageURL  models.RemoteImageURL `bson:"imageUri,omitempty"`
}

func docFromMessage(msg models.Message) messageDoc {
	return messageDoc{
		ID:        msg.DocID(),
		Author:    msg.Author,
		Channel:   msg.Channel,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		ImageURL:  msg.ImageURL,
	}
}

func (d messageDoc) toMessage() models.Message {
	msg := models.Message{
		Author:    d.Author,
		Channel:   d.Channel,
		Content:   d.Content,
		Timestamp: d.Timestamp,
		ImageURL:  d.ImageURL,
	}
	return msg.WithDerivedDate()
}

type messageRepo struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *DB) MessageRepository {
	return &messageRepo{
		collection: db.Database.Collection("messages"),
	}
}

// Append upserts the document under its timestamp key. A colliding key
// silently overwrites the earlier document, matching the document store's
// set semantics; callers get no error.
func (r *messageRepo) Append(ctx context.Context, msg models.Message) error {
	doc := docFromMessage(msg)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("append message %s: %w", doc.ID, err)
	}
	return nil
}

// GetMessagesForChannel runs an equality query on the channel field and
// rebuilds each hit into a message, oldest first.
func (r *messageRepo) GetMessagesForChannel(ctx context.Context, channel string) ([]models.Message, error) {
	filter := bson.M{"channel": channel}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find channel messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := make([]models.Message, 0)
	for cursor.Next(ctx) {
		var doc messageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, doc.toMessage())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return messages, nil
}

// SeedMessages bulk-writes the fixture set, one upsert per message so the
// operation is idempotent.
func (r *messageRepo) SeedMessages(ctx context.Context, msgs []models.Message) error {
	writes := make([]mongo.WriteModel, 0, len(msgs))
	for _, msg := range msgs {
		doc := docFromMessage(msg)
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	if len(writes) == 0 {
		return nil
	}
	if _, err := r.collection.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("bulk write seed messages: %w", err)
	}
	return nil
}
