package entity

import "time"

type VoteDirection string

const (
	Upvote   VoteDirection = "upvote"
	Downvote VoteDirection = "downvote"
)

func (d VoteDirection) Valid() bool {
	return d == Upvote || d == Downvote
}

type Post struct {
	ID          string    `json:"_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	AuthorImage string    `json:"author_image,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	PostTime    time.Time `json:"post_time"`
	Upvote      int64     `json:"upvote"`
	Downvote    int64     `json:"downvote"`

	// Derived on read, never stored.
	VoteDifference int64 `json:"voteDifference"`
}

func (p *Post) Score() int64 {
	return p.Upvote - p.Downvote
}

// Derive fills the fields computed from stored counters.
func (p *Post) Derive() *Post {
	p.VoteDifference = p.Score()
	return p
}
