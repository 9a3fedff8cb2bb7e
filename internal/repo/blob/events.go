package blob

import "github.com/trannm-ct/channel-chat/internal/models"

type UploadState string

const (
	UploadRunning UploadState = "running"
	UploadDone    UploadState = "done"
	UploadFailed  UploadState = "failed"
)

// UploadEvent is one notification from an in-flight upload. An upload emits
// zero or more progress events (Terminal false) followed by exactly one
// terminal event carrying either the durable URL or the error, after which
// the channel is closed.
type UploadEvent struct {
	Transferred int64
	Total       int64
	State       UploadState
	Terminal    bool
	URL         models.RemoteImageURL
	Err         error
}

// Wait drains the event stream and returns the terminal outcome. Progress
// events are passed to onProgress when it is non-nil.
func Wait(events <-chan UploadEvent, onProgress func(UploadEvent)) (models.RemoteImageURL, error) {
	var terminal UploadEvent
	for ev := range events {
		if ev.Terminal {
			terminal = ev
			continue
		}
		if onProgress != nil {
			onProgress(ev)
		}
	}
	return terminal.URL, terminal.Err
}
