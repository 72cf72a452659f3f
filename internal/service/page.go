// Package service implements the business logic over the repository
// layer. Every operation takes the acting principal explicitly; there is
// no ambient current-user state.
package service

import "murmur/internal/models"

// validatePage rejects negative pagination before anything reaches the
// store.
func validatePage(skip, limit int) error {
	if skip < 0 {
		return models.NewValidationError("skip must not be negative")
	}
	if limit < 0 {
		return models.NewValidationError("limit must not be negative")
	}
	return nil
}
