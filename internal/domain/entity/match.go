package entity

import "time"

// Match is immutable after creation; there is no edit flow, only external
// administration may remove one.
type Match struct {
	ID                string    `json:"id" firestore:"id"`
	MatchName         string    `json:"match_name" firestore:"matchName"`
	Location          string    `json:"location" firestore:"location"`
	Latitude          *float64  `json:"latitude" firestore:"latitude"`
	Longitude         *float64  `json:"longitude" firestore:"longitude"`
	Date              time.Time `json:"date" firestore:"date"`
	Price             int       `json:"price" firestore:"price"`
	PlayersCount      int       `json:"players_count" firestore:"playersCount"`
	RequiredPositions []string  `json:"required_positions" firestore:"requiredPositions"`
	UserID            string    `json:"user_id" firestore:"userId"`
	CreatorName       string    `json:"creator_name" firestore:"creatorName"`
	CreatedAt         time.Time `json:"created_at" firestore:"createdAt"`
}

// HasCoordinates reports whether both coordinates are set. Listings created
// before the map picker shipped may carry neither.
func (m *Match) HasCoordinates() bool {
	return m.Latitude != nil && m.Longitude != nil
}
