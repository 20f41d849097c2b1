// Package policy holds the authorization predicates for posts and votes.
// Every function is pure: it only looks at the resource and the actor.
package policy

import "github.com/inkwell/posts-api/internal/core/domain"

// CanViewPost always allows; posts are public content.
func CanViewPost(_ *domain.Post, _ *domain.User) bool {
	return true
}

// CanCreatePost allows active users only.
func CanCreatePost(user *domain.User) bool {
	return user != nil && user.IsActive
}

// CanUpdatePost allows the owner only.
func CanUpdatePost(post *domain.Post, user *domain.User) bool {
	return isOwner(post, user)
}

// CanDeletePost allows the owner only.
func CanDeletePost(post *domain.Post, user *domain.User) bool {
	return isOwner(post, user)
}

// CanVote allows active users that do not own the post.
func CanVote(post *domain.Post, user *domain.User) bool {
	if post == nil || user == nil {
		return false
	}
	return user.IsActive && post.OwnerID != user.ID
}

func isOwner(post *domain.Post, user *domain.User) bool {
	if post == nil || user == nil {
		return false
	}
	return post.OwnerID == user.ID
}
