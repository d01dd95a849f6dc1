package usecase

// Notifier is the notification collaborator. Delivery is best-effort:
// implementations log failures and never propagate them.
type Notifier interface {
	Notify(userID, title, message string)
	NotifyBulk(userIDs []string, title, message string)
}
