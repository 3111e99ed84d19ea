package todos

import (
	"encoding/json"
	"time"
)

// SanitizePatch validates a raw partial-update payload against the
// whitelist of mutable fields, exactly {text, completed}. An "_id" key is
// tolerated (clients commonly echo the whole document back); any other
// key, including completedAt and _creator, rejects the payload.
//
// When completed is present, completedAt is derived here: true yields the
// current timestamp, false clears any previous value. completedAt is never
// itself a legal input.
func SanitizePatch(body []byte, now time.Time) (*Patch, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, ErrInvalidProperties
	}

	for key := range fields {
		switch key {
		case "text", "completed", "_id":
		default:
			return nil, ErrInvalidProperties
		}
	}

	patch := &Patch{}

	if raw, ok := fields["text"]; ok {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, ErrInvalidProperties
		}
		patch.Text = &text
	}

	if raw, ok := fields["completed"]; ok {
		var completed bool
		if err := json.Unmarshal(raw, &completed); err != nil {
			return nil, ErrInvalidProperties
		}
		patch.Completed = &completed
		if completed {
			ms := now.UnixMilli()
			patch.CompletedAt = &ms
		}
	}

	return patch, nil
}
