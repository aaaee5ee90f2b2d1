package model

import "github.com/samber/lo"

// MostRecent returns the newest element of a platform listing.
//
// The deployments and deployment-statuses endpoints return entries newest-first,
// so the newest entry is the first one. Every caller that needs "the latest"
// goes through here; if the ordering guarantee ever changes, sort here.
func MostRecent[T any](items []T) (T, bool) {
	return lo.First(items)
}
