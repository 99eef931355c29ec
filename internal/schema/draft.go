// Package schema defines the versioned persisted record shapes and upgrades
// records written by older releases to the current version.
package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/maemreyo/glean-teleprompter/internal/prompter"
)

// Draft is the durable record for a teleprompter document: a flat,
// denormalized projection of the nested live configuration plus the script
// content. The underscored fields are record metadata, everything else is
// user data.
type Draft struct {
	ID        string `json:"_id"`
	Version   string `json:"_version"`
	Timestamp int64  `json:"_timestamp"` // ms since epoch, set on every save

	Content         string  `json:"content"`
	BackgroundURL   string  `json:"backgroundUrl"`
	MusicURL        string  `json:"musicUrl"`
	FontSize        int     `json:"fontSize"`
	TextColor       string  `json:"textColor"`
	BackgroundColor string  `json:"backgroundColor"`
	ScrollSpeed     int     `json:"scrollSpeed"`
	Alignment       string  `json:"alignment"`
	LineSpacing     float64 `json:"lineSpacing"`
	SideMargin      int     `json:"sideMargin"`
	Opacity         float64 `json:"opacity"`
}

// NewDraft projects the live configuration and script content into a fresh
// draft record stamped with the current schema version and a new identity.
func NewDraft(content string, cfg prompter.ConfigSnapshot) Draft {
	d := Draft{
		ID:      uuid.New().String(),
		Version: CurrentVersion,
		Content: content,
	}
	d.ApplyConfig(cfg)
	d.Touch()
	return d
}

// ApplyConfig refreshes the denormalized settings from the live snapshot.
func (d *Draft) ApplyConfig(cfg prompter.ConfigSnapshot) {
	d.FontSize = cfg.Typography.FontSize
	d.Alignment = cfg.Typography.Alignment
	d.LineSpacing = cfg.Typography.LineHeight
	d.TextColor = cfg.Colors.TextColor
	d.BackgroundColor = cfg.Colors.BackgroundColor
	d.Opacity = cfg.Colors.Opacity
	d.ScrollSpeed = cfg.Animations.ScrollSpeed
	d.SideMargin = cfg.Layout.SideMargin
}

// Config projects the draft's denormalized settings back onto base. Fields
// the record does not carry keep their base values.
func (d Draft) Config(base prompter.ConfigSnapshot) prompter.ConfigSnapshot {
	cfg := base
	cfg.Typography.FontSize = d.FontSize
	cfg.Typography.Alignment = d.Alignment
	cfg.Typography.LineHeight = d.LineSpacing
	cfg.Colors.TextColor = d.TextColor
	cfg.Colors.BackgroundColor = d.BackgroundColor
	cfg.Colors.Opacity = d.Opacity
	cfg.Animations.ScrollSpeed = d.ScrollSpeed
	cfg.Layout.SideMargin = d.SideMargin
	return cfg
}

// Touch stamps the record with the current time.
func (d *Draft) Touch() {
	d.Timestamp = time.Now().UnixMilli()
}

// Collection is the recent-drafts list, distinct from the single active-draft
// slot. Drafts are unique by ID.
type Collection struct {
	SchemaVersion string  `json:"_schemaVersion"`
	LastUpdated   int64   `json:"_lastUpdated"`
	Drafts        []Draft `json:"drafts"`
}

// NewCollection returns an empty collection at the current schema version.
func NewCollection() Collection {
	return Collection{SchemaVersion: CurrentVersion}
}

// Upsert inserts the draft, replacing any existing entry with the same ID.
func (c *Collection) Upsert(d Draft) {
	for i := range c.Drafts {
		if c.Drafts[i].ID == d.ID {
			c.Drafts[i] = d
			c.LastUpdated = time.Now().UnixMilli()
			return
		}
	}
	c.Drafts = append(c.Drafts, d)
	c.LastUpdated = time.Now().UnixMilli()
}

// Remove deletes the draft with the given ID, reporting whether it existed.
func (c *Collection) Remove(id string) bool {
	for i := range c.Drafts {
		if c.Drafts[i].ID == id {
			c.Drafts = append(c.Drafts[:i], c.Drafts[i+1:]...)
			c.LastUpdated = time.Now().UnixMilli()
			return true
		}
	}
	return false
}

// Get returns the draft with the given ID.
func (c *Collection) Get(id string) (Draft, bool) {
	for i := range c.Drafts {
		if c.Drafts[i].ID == id {
			return c.Drafts[i], true
		}
	}
	return Draft{}, false
}
