package entity

import "time"

type Comment struct {
	ID             string    `json:"_id"`
	PostID         string    `json:"post_id"`
	PostTitle      string    `json:"post_title,omitempty"`
	CommenterName  string    `json:"commenter_name"`
	CommenterEmail string    `json:"commenter_email"`
	CommenterImage string    `json:"commenter_image,omitempty"`
	Comment        string    `json:"comment"`
	Feedback       *string   `json:"feedback,omitempty"`
	PostTime       time.Time `json:"post_time"`
}

// Reported is true once a non-empty feedback annotation is attached.
func (c *Comment) Reported() bool {
	return c.Feedback != nil && *c.Feedback != ""
}
