package blueprint

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/dukerupert/hudson/internal/model"
)

// chainPayload is the canonical form hashed for each history entry.
type chainPayload struct {
	Prev          string                  `json:"prev"`
	ID            string                  `json:"id"`
	Action        model.HistoryAction     `json:"action"`
	Description   string                  `json:"description"`
	UserID        string                  `json:"user_id"`
	UserName      string                  `json:"user_name"`
	UserRole      model.Role              `json:"user_role"`
	Timestamp     string                  `json:"timestamp"`
	RelatedItemID string                  `json:"related_item_id"`
	Changes       map[string]model.Change `json:"changes"`
}

// Digest returns the BLAKE2b-256 digest of h chained to prev. The Digest
// field of h itself is ignored.
func Digest(prev string, h model.HistoryEntry) string {
	p := chainPayload{
		Prev:          prev,
		ID:            h.ID,
		Action:        h.Action,
		Description:   h.Description,
		UserID:        h.UserID,
		UserName:      h.UserName,
		UserRole:      h.UserRole,
		Timestamp:     h.Timestamp.UTC().Format(time.RFC3339Nano),
		RelatedItemID: h.RelatedItemID,
		Changes:       h.Changes,
	}
	// Marshal cannot fail: every field is a string or a JSON-decoded value.
	b, _ := json.Marshal(p)
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// VerifyHistory recomputes the digest chain and reports the first entry
// whose stored digest does not match.
func VerifyHistory(history []model.HistoryEntry) error {
	prev := ""
	for i, h := range history {
		want := Digest(prev, h)
		if h.Digest != want {
			return fmt.Errorf("history entry %d (%s): %w", i, h.ID, ErrHistoryTampered)
		}
		prev = h.Digest
	}
	return nil
}

// ExtendsHistory reports whether next is prev with zero or more entries
// appended and every earlier entry unchanged.
func ExtendsHistory(prev, next []model.HistoryEntry) bool {
	if len(next) < len(prev) {
		return false
	}
	for i := range prev {
		if prev[i].Digest != next[i].Digest || prev[i].ID != next[i].ID {
			return false
		}
	}
	return true
}
