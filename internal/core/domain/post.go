package domain

import "time"

// Post is a piece of user-authored content. Every post has exactly one owner.
type Post struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	Published bool
	Rating    *int
	CreatedAt time.Time
}

// PostWithVotes pairs a post with the number of votes it has received.
type PostWithVotes struct {
	Post  Post
	Votes int64
}

// PostPatch carries a partial update. Only fields with Set == true are written.
type PostPatch struct {
	Title     Optional[string]
	Content   Optional[string]
	Published Optional[bool]
	Rating    Optional[*int]
}

// IsEmpty reports whether the patch would change nothing.
func (p PostPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Content.Set && !p.Published.Set && !p.Rating.Set
}

// Apply writes the supplied fields onto post.
func (p PostPatch) Apply(post *Post) {
	if p.Title.Set {
		post.Title = p.Title.Value
	}
	if p.Content.Set {
		post.Content = p.Content.Value
	}
	if p.Published.Set {
		post.Published = p.Published.Value
	}
	if p.Rating.Set {
		post.Rating = p.Rating.Value
	}
}
