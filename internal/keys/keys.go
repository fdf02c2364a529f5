// Package keys derives the Redis key space used by the waiter bot. All
// durable state lives under two families of keys: one hash per calendar day
// holding that day's food orders, and one sorted set per user holding the
// archived group messages.
//
// Every function here is pure; the day key embeds a local-time calendar date
// so order data partitions (and can age out) naturally by day.
package keys

import (
	"strconv"
	"time"
)

const (
	// orderPrefix scopes the per-day order hashes.
	orderPrefix = "food_orders:"
	// messagePrefix scopes the per-user message archives.
	messagePrefix = "messages:user:"

	// dateLayout is the calendar-date format embedded in day keys (YYYY-MM-DD).
	dateLayout = "2006-01-02"
)

// Orders returns the hash key holding all orders for the given calendar date.
// dateStr is expected in YYYY-MM-DD form (see DateString).
func Orders(dateStr string) string {
	return orderPrefix + dateStr
}

// MessageArchive returns the sorted-set key holding the archived messages of
// one Telegram user, identified by their stable numeric ID.
func MessageArchive(userID int64) string {
	return messagePrefix + strconv.FormatInt(userID, 10)
}

// DateString formats a moment as the calendar date used in day keys, in the
// time zone the deployment runs in.
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
// Used by the ops API to reject malformed day keys before hitting the store.
// time.Parse tolerates missing zero padding, so the round-trip check keeps
// the key space canonical.
func ValidDate(s string) bool {
	t, err := time.Parse(dateLayout, s)
	return err == nil && t.Format(dateLayout) == s
}
