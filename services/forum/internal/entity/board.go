package entity

import "time"

type Tag struct {
	ID        string    `json:"_id"`
	Name      string    `json:"tag"`
	CreatedAt time.Time `json:"created_at"`
}

type Announcement struct {
	ID          string    `json:"_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	AuthorImage string    `json:"author_image,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PostTime    time.Time `json:"post_time"`
}
