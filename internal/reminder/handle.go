package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Handle identifies the two weekly registrations that back one activity:
// the advance warning and the reminder at the start time itself.
type Handle struct {
	Advance string `json:"advance,omitempty"`
	Main    string `json:"main,omitempty"`
}

// Encode packs the handle into the opaque string stored on the activity.
func (h Handle) Encode() string {
	data, err := json.Marshal(h)
	if err != nil {
		return ""
	}
	return string(data)
}

// IDs returns the non-empty registration ids, advance first.
func (h Handle) IDs() []string {
	var ids []string
	if h.Advance != "" {
		ids = append(ids, h.Advance)
	}
	if h.Main != "" {
		ids = append(ids, h.Main)
	}
	return ids
}

// ParseHandle unpacks a stored handle. A value that is not a JSON object is a
// legacy single registration id and becomes the main reminder.
func ParseHandle(s string) (Handle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Handle{}, errors.New("empty reminder handle")
	}
	if !strings.HasPrefix(s, "{") {
		return Handle{Main: s}, nil
	}
	var h Handle
	if err := json.Unmarshal([]byte(s), &h); err != nil {
		return Handle{}, fmt.Errorf("invalid reminder handle: %w", err)
	}
	return h, nil
}
