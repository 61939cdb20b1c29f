package model

type Admin struct {
	ID           int64  `json:"id"`
	Username     string `json:"usuario"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
}
