package models

import "time"

// User is the document stored in the "users" partition, keyed by uid.
type User struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}
