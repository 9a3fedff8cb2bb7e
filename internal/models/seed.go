package models

import "time"

// SeedMessages is the fixed message set used to prime the local store and
// to populate an empty remote store. Timestamps derive from the dates, so
// the set is stable across runs.
func SeedMessages() []Message {
	mk := func(date time.Time, author, channel, content string) Message {
		return Message{
			Author:    author,
			Channel:   channel,
			Content:   content,
			Timestamp: date.UnixMilli(),
			Date:      date,
		}
	}
	return []Message{
		mk(time.Date(2024, 9, 15, 9, 12, 0, 0, time.UTC),
			"alice@example.com", "Food", "Anyone up for dumplings this weekend?"),
		mk(time.Date(2024, 9, 15, 9, 14, 30, 0, time.UTC),
			"bob@example.com", "Food", "Count me in, the new place downtown is great."),
		mk(time.Date(2024, 9, 16, 18, 45, 0, 0, time.UTC),
			"carol@example.com", "Crafts", "Finished the quilt square swap, photos soon."),
		mk(time.Date(2024, 9, 17, 7, 30, 0, 0, time.UTC),
			"dave@example.com", "Outdoors", "Trailhead parking lot fills up by 8am on Saturdays."),
		mk(time.Date(2024, 9, 18, 12, 0, 0, 0, time.UTC),
			"alice@example.com", "Arts", "The watercolor exhibit runs through October."),
		mk(time.Date(2024, 9, 19, 20, 5, 0, 0, time.UTC),
			"erin@example.com", "Gatherings", "Potluck moved to the community room, same time."),
	}
}
