package services

import "github.com/articled/apiserver/types"

// Authorize allows principalID to act on article only if it owns it.
// A nil article is denied exactly like a foreign one.
func Authorize(principalID int64, article *types.Article) error {
	if article == nil || article.OwnerID != principalID {
		return ErrAccessDenied
	}
	return nil
}
