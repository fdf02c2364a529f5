// Package domain defines the persistence models for daily food orders and
// archived group messages, together with their wire codecs. These types form
// the core data layer of the waiter bot: orders travel as small JSON blobs in
// the fields of a per-day Redis hash, archived messages as members of a
// per-user sorted set scored by send time.
package domain

import (
	"encoding/json"
	"math"
	"time"
)

// missingFood is the display fallback when a stored payload carries no food
// text (documented default of the wire format).
const missingFood = "N/A"

// OrderRecord is one user's food order for one calendar day.
//
// Fields:
//   - Owner: the caller-chosen display label (@handle > first name > numeric
//     fallback). It is the order's identity within a day: the hash field name.
//   - Food: free-form food text, caller-trimmed and non-empty on write.
//   - PlacedAt: when the order was placed. Display/sort only, never identity.
//     Zero when the stored payload had no usable timestamp; zero sorts first.
type OrderRecord struct {
	Owner    string    `json:"owner"`
	Food     string    `json:"food"`
	PlacedAt time.Time `json:"placed_at"`
}

// MessageEntry is one archived group message.
//
// The message text doubles as the uniqueness key within a user's archive:
// identical text collapses into a single entry whose SentAt reflects the most
// recent send. That is an accepted quirk of the scoring scheme, not a bug.
type MessageEntry struct {
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// orderPayload is the stored shape of one order: the value blob behind a hash
// field. The owner is not repeated inside the blob; it is the field name.
type orderPayload struct {
	Food         string `json:"food"`
	TimestampISO string `json:"timestamp_iso,omitempty"`
}

// EncodeOrderPayload serializes food text and placement time into the opaque
// string blob stored as a hash-field value.
func EncodeOrderPayload(food string, placedAt time.Time) (string, error) {
	p := orderPayload{Food: food}
	if !placedAt.IsZero() {
		p.TimestampISO = placedAt.Format(time.RFC3339)
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeOrderPayload parses a stored blob back into an OrderRecord, attaching
// the hash-field name as the owner. Unknown fields are ignored; a missing
// food text degrades to "N/A" and a missing or unparsable timestamp to the
// zero time. Only malformed JSON is an error.
func DecodeOrderPayload(owner, raw string) (OrderRecord, error) {
	var p orderPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return OrderRecord{}, err
	}
	rec := OrderRecord{Owner: owner, Food: p.Food}
	if rec.Food == "" {
		rec.Food = missingFood
	}
	if p.TimestampISO != "" {
		if ts, err := time.Parse(time.RFC3339, p.TimestampISO); err == nil {
			rec.PlacedAt = ts
		}
	}
	return rec, nil
}

// TimeToScore converts a send time to the sorted-set score: floating-point
// seconds since the Unix epoch.
func TimeToScore(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// ScoreToTime converts a sorted-set score back to a timestamp. NaN and
// infinities are rejected so a corrupt score is skipped, not propagated.
func ScoreToTime(score float64) (time.Time, bool) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(score)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))), true
}
