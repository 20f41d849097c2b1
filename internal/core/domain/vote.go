package domain

// Vote marks that UserID upvoted PostID. The pair is the identity; there is no payload.
type Vote struct {
	PostID string
	UserID string
}

// Vote directions accepted by the votes endpoint.
const (
	VoteRemove = 0
	VoteAdd    = 1
)
