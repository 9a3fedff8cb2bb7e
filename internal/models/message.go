package models

import (
	"strconv"
	"time"
)

// RemoteImageURL is a durable, publicly fetchable location of an uploaded
// attachment. Local device references never appear here; they only exist in
// a ComposeDraft until the uploader resolves them.
type RemoteImageURL string

// Message is a chat message as seen by viewers and stored by the message
// stores. The millisecond Timestamp doubles as the document key in the
// remote store, so two messages created in the same millisecond collide and
// the later write wins.
type Message struct {
	Author    string         `bson:"author" json:"author"`
	Channel   string         `bson:"channel" json:"channel"`
	Content   string         `bson:"content" json:"content"`
	Timestamp int64          `bson:"timestamp" json:"timestamp"`
	Date      time.Time      `bson:"-" json:"date"`
	ImageURL  RemoteImageURL `bson:"imageUri,omitempty" json:"image_uri,omitempty"`
}

// NewMessage builds a message stamped with the current time.
func NewMessage(author, channel, content string) Message {
	now := time.Now()
	return Message{
		Author:    author,
		Channel:   channel,
		Content:   content,
		Timestamp: now.UnixMilli(),
		Date:      now,
	}
}

// DocID is the remote document key for this message.
func (m Message) DocID() string {
	return strconv.FormatInt(m.Timestamp, 10)
}

func (m Message) HasImage() bool {
	return m.ImageURL != ""
}

// WithDerivedDate reconstructs the display date from the stored timestamp.
// The date field is never persisted remotely.
func (m Message) WithDerivedDate() Message {
	m.Date = time.UnixMilli(m.Timestamp)
	return m
}

// ComposeDraft is the composer's input before a message is assembled.
// LocalImageURI, when set, is a device-scoped file reference that must be
// uploaded and replaced by a RemoteImageURL before the message may be
// persisted.
type ComposeDraft struct {
	Content       string `json:"content"`
	LocalImageURI string `json:"image_uri,omitempty"`
}

func (d ComposeDraft) HasImage() bool {
	return d.LocalImageURI != ""
}
