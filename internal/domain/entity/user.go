package entity

import "time"

// User is an editor or reader account. The ID comes from the external auth
// provider; the backend never mints user IDs.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// Save is a user bookmark on a story. The (StoryID, UserID) pair is unique.
type Save struct {
	StoryID   string
	UserID    string
	CreatedAt time.Time
}

// Subscriber is a newsletter signup. Email is unique; phone is optional.
type Subscriber struct {
	ID        string
	Email     string
	Phone     string
	CreatedAt time.Time
}
