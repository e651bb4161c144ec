package types

import "time"

// Article is a title/body record owned by exactly one user.
type Article struct {
	// ID is the unique identifier of the article.
	ID int64 `json:"id" db:"id"`

	// OwnerID identifies the user who created the article.
	// It is set once at creation and never reassigned.
	OwnerID int64 `json:"ownerId" db:"user_id"`

	// Title is the free-text headline of the article.
	Title string `json:"title" db:"title"`

	// Slug is derived from Title and recomputed whenever Title changes.
	Slug string `json:"slug" db:"slug"`

	// Body is the free-text content of the article.
	Body string `json:"body" db:"body"`

	// CreatedAt is the timestamp when the article was created.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent edit.
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ArticleUpdate is a partial article change. Nil fields are left untouched.
type ArticleUpdate struct {
	Title *string
	Slug  *string
	Body  *string
}

// ArticleEventType names a lifecycle transition of an article.
type ArticleEventType string

const (
	ArticleCreated ArticleEventType = "article.created"
	ArticleUpdated ArticleEventType = "article.updated"
	ArticleDeleted ArticleEventType = "article.deleted"
)

// ArticleEvent is published to the message broker after a successful mutation.
type ArticleEvent struct {
	Type       ArticleEventType `json:"type"`
	ArticleID  int64            `json:"articleId"`
	OwnerID    int64            `json:"ownerId"`
	Slug       string           `json:"slug,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}
