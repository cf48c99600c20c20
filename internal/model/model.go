package model

import "time"

type Space struct {
	ID          string    `json:"id" yaml:"id" toml:"id"`
	Name        string    `json:"name" yaml:"name" toml:"name"`
	Description string    `json:"description" yaml:"description" toml:"description"`
	Icon        string    `json:"icon" yaml:"icon" toml:"icon"`
	Color       string    `json:"color" yaml:"color" toml:"color"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt"`
}

type Page struct {
	ID      string `json:"id" yaml:"id" toml:"id"`
	SpaceID string `json:"spaceId" yaml:"spaceId" toml:"spaceId"`

	// ParentID is nil for a root page.
	ParentID *string `json:"parentId" yaml:"parentId,omitempty" toml:"parentId,omitempty"`

	Title string `json:"title" yaml:"title" toml:"title"`
	// Content is the editor's serialized output. It is stored and returned verbatim.
	Content string `json:"content" yaml:"content" toml:"content"`
	Emoji   string `json:"emoji" yaml:"emoji" toml:"emoji"`

	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt"`
	IsFavorite bool      `json:"isFavorite" yaml:"isFavorite" toml:"isFavorite"`
}

// Parent returns the parent id, or "" for a root page.
func (p Page) Parent() string {
	if p.ParentID == nil {
		return ""
	}
	return *p.ParentID
}

func (p Page) IsRoot() bool { return p.ParentID == nil }

// PageUpdate is a partial page. Nil fields are left unchanged.
type PageUpdate struct {
	Title      *string       `json:"title,omitempty"`
	Content    *string       `json:"content,omitempty"`
	Emoji      *string       `json:"emoji,omitempty"`
	SpaceID    *string       `json:"spaceId,omitempty"`
	Parent     *ParentUpdate `json:"parent,omitempty"`
	IsFavorite *bool         `json:"isFavorite,omitempty"`
}

// ParentUpdate distinguishes "move to root" (ID == nil) from "leave the parent alone"
// (no ParentUpdate at all).
type ParentUpdate struct {
	ID *string `json:"id"`
}

func (u PageUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Emoji == nil && u.SpaceID == nil && u.Parent == nil && u.IsFavorite == nil
}

// TreeNode is a page together with its children, for hierarchical display.
type TreeNode struct {
	Page     Page        `json:"page"`
	Children []*TreeNode `json:"children"`
	Expanded bool        `json:"isExpanded"`
	Depth    int         `json:"depth"`
}

type EventType string

const (
	EventPageCreate   EventType = "page.create"
	EventPageUpdate   EventType = "page.update"
	EventPageDelete   EventType = "page.delete"
	EventPageFavorite EventType = "page.favorite"
)

// Event is an in-memory activity record. Nothing is written to disk.
type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     EventType `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload,omitempty"`
}

func StringPtr(s string) *string { return &s }

func BoolPtr(b bool) *bool { return &b }
