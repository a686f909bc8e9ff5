package notification_preferences

import "context"

type UserService interface {
	NotificationPreferences(ctx context.Context, userID string) ([]string, error)
	UpdateNotificationPreferences(ctx context.Context, userID string, prefs []string) ([]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
