package blob

import (
	"strings"

	"github.com/Wolfiri/b1nb0t/emoji"
	"github.com/Wolfiri/b1nb0t/handler"
	"github.com/Wolfiri/b1nb0t/notify"
	"github.com/Wolfiri/b1nb0t/review"
)

var (
	eng        *review.Engine
	emojiHost  *emoji.Manager
	dispatcher *notify.Dispatcher

	// Marker snowflakes, extracted from the configured "name:id" markers,
	// used to recognize decision reactions on council queue messages.
	approveMarkerID string
	rejectMarkerID  string
)

// Setup wires the handler package to the review engine and its
// collaborators. Must run before the Discord session opens.
func Setup(engine *review.Engine, host *emoji.Manager, d *notify.Dispatcher, approveMarker, rejectMarker string) {
	eng = engine
	emojiHost = host
	dispatcher = d
	approveMarkerID = markerID(approveMarker)
	rejectMarkerID = markerID(rejectMarker)
}

// RegisterHandlers registers the moderation slash command handlers.
func RegisterHandlers() {
	handler.AddCommandHandler("blob", BlobCommandHandler)
}

// markerID extracts the emoji snowflake from a "name:id" marker string.
func markerID(marker string) string {
	if idx := strings.LastIndex(marker, ":"); idx >= 0 {
		return marker[idx+1:]
	}
	return marker
}
