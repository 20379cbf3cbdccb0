package entity

import "time"

// Chat is the single thread shared by a match's organizer and all of its
// participants. It is created lazily on the first join request and keyed by
// the match id, so a match can never grow a second thread.
type Chat struct {
	ID        string    `json:"id" firestore:"id"`
	MatchID   string    `json:"match_id" firestore:"matchId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
