package service

import "ratehub/internal/http-api/models"

// canModify implements the shared object-level rule for reviews and
// comments: the author, a moderator, or an admin may write; everyone else
// is read-only.
func canModify(actor *models.User, authorID *string) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() || actor.IsModerator() {
		return true
	}
	return authorID != nil && *authorID == actor.ID
}
