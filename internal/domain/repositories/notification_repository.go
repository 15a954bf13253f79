package repositories

// NotificationRepository delivers fire-and-forget user notifications.
// Implementations must not block the caller on delivery and must swallow
// delivery errors (logging them at most).
type NotificationRepository interface {
	// NotifyRemoteChanges announces newly detected remote commits for a
	// repository.
	NotifyRemoteChanges(repositoryName string, remoteAhead int)
}
