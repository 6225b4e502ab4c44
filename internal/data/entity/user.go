package entity

type User struct {
	BaseNoDelete
	Email        string  `db:"email" json:"email"`
	PasswordHash string  `db:"password_hash" json:"password_hash"`
	Name         *string `db:"name" json:"name,omitempty"`
}

// Owner is the key favorites and history are stored under for this user.
func (u *User) Owner() string {
	return u.ID.String()
}
