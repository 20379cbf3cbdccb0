package entity

import "time"

const (
	ParticipantStatusPending  = "pending"
	ParticipantStatusApproved = "approved"
	ParticipantStatusRejected = "rejected"
)

// Participant is a join request. It is created in "pending" state, moves at
// most once to "approved" or "rejected", and is never deleted. At most one
// exists per (match, user); the store enforces this through the document id.
type Participant struct {
	ID        string    `json:"id" firestore:"id"`
	MatchID   string    `json:"match_id" firestore:"matchId"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Status    string    `json:"status" firestore:"status"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// ParticipantID is the deterministic document id for a (match, user) pair.
func ParticipantID(matchID, userID string) string {
	return matchID + "_" + userID
}

func (p *Participant) IsTerminal() bool {
	return p.Status == ParticipantStatusApproved || p.Status == ParticipantStatusRejected
}

func IsValidDecision(decision string) bool {
	return decision == ParticipantStatusApproved || decision == ParticipantStatusRejected
}
