package entity

import "time"

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

type Status string

const (
	StatusRegular Status = "Regular"
	StatusGold    Status = "Gold"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image,omitempty"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
	Warning   string    `json:"warning,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleOf resolves the effective role of a stored user. A missing record or
// any role value other than exactly "Admin" is a plain user.
func RoleOf(u *User) Role {
	if u != nil && u.Role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// UserPatch lists the fields a single update may set; nil means untouched.
type UserPatch struct {
	Role    *Role
	Status  *Status
	Warning *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Role == nil && p.Status == nil && p.Warning == nil
}

// UpdateResult mirrors what the store reports for a single-record update.
type UpdateResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}
