package auth

import "github.com/flamingoair/flamingo-backend/internal/domain"

// CanModify is the single owner-or-admin policy. Both the booking and the
// payment services consult it instead of repeating inline role checks.
func CanModify(caller *domain.Identity, ownerID int64) bool {
	if caller == nil {
		return false
	}
	return caller.UserID == ownerID || caller.IsAdmin()
}
