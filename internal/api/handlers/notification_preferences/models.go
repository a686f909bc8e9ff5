package notification_preferences

// PreferencesRequest HTTP request model
type PreferencesRequest struct {
	NotificationPreferences []string `json:"notification_preferences"`
}

// PreferencesResponse HTTP response model
type PreferencesResponse struct {
	NotificationPreferences []string `json:"notification_preferences"`
	Message                 string   `json:"message,omitempty"`
}
