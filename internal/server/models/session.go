// Package models holds the persisted entities of the wellness-session
// platform: users and the session records they author.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is the lifecycle state of a session record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Level is the difficulty rating of a session.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelAll          Level = "all"
)

const DefaultDuration = 30 // minutes

// TagList is an ordered list of trimmed tags. It unmarshals from either a
// JSON array of strings or a single comma-separated string, since the
// browsing client submits both shapes.
type TagList []string

func (t *TagList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = normalizeTags(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return err
	}
	*t = normalizeTags(strings.Split(joined, ","))
	return nil
}

func normalizeTags(raw []string) TagList {
	tags := make(TagList, 0, len(raw))
	for _, tag := range raw {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// Session is an authored wellness-content record (not an auth session).
// Each record is owned by exactly one user; the owner never changes.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        TagList   `json:"tags"`
	JSONFileURL string    `json:"jsonFileUrl"`
	Status      Status    `json:"status"`
	Duration    int       `json:"duration"`
	Level       Level     `json:"level"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PublishedSession is a session as it appears in the public listing,
// annotated with the owner's email.
type PublishedSession struct {
	Session
	OwnerEmail string `json:"ownerEmail"`
}
