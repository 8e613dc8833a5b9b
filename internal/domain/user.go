package domain

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher
}

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	Role         UserRole `json:"role"`
}

// Public returns a copy safe to hand to clients.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
