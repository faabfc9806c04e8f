package models

type Admin struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
