package utils

import (
	"sync"
	"time"
)

// The gateway can redeliver a MessageCreate after a reconnect, which would
// intake the same suggestion twice. Seen message IDs are remembered for a
// short window to drop redeliveries.
var (
	seenMessages = make(map[string]time.Time)
	seenMutex    = &sync.Mutex{}
	seenTTL      = 10 * time.Minute
)

func init() {
	go startSeenJanitor()
}

// MarkMessageSeen records a suggestion message ID as processed. It returns
// false if the message was already seen inside the TTL window.
func MarkMessageSeen(messageID string) bool {
	seenMutex.Lock()
	defer seenMutex.Unlock()

	if _, found := seenMessages[messageID]; found {
		return false
	}
	seenMessages[messageID] = time.Now()
	return true
}

// startSeenJanitor runs a background process to clean up expired entries.
func startSeenJanitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		seenMutex.Lock()
		for id, at := range seenMessages {
			if time.Since(at) > seenTTL {
				delete(seenMessages, id)
			}
		}
		seenMutex.Unlock()
	}
}
