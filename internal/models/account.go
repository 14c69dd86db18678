package models

// Account is a row of the "user" table. Password holds the bcrypt hash.
type Account struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
