package entity

import "time"

// User mirrors the Firebase Auth profile plus app-level fields. This core
// only reads it, except for the profile sync endpoint which upserts it.
type User struct {
	ID        string    `json:"id" firestore:"id"`
	Username  string    `json:"username" firestore:"username"`
	FullName  string    `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	PushToken string    `json:"push_token,omitempty" firestore:"pushToken,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
