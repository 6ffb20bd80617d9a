package models

// PushNotification is a push payload destined for the admin devices.
type PushNotification struct {
	Title string            `json:"title" binding:"required"`
	Body  string            `json:"body" binding:"required"`
	Topic string            `json:"topic"`
	Data  map[string]string `json:"data"`
}

// Email is a transactional message handed to the email provider.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
