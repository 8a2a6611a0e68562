package mail

// LeadNotificationData carries the fixed template parameter set for the
// new-inquiry notification sent to the business inbox.
type LeadNotificationData struct {
	FromName  string
	FromEmail string
	Phone     string
	Subject   string
	Message   string
	ReplyTo   string
}

type AcknowledgmentData struct {
	Name    string
	Subject string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Inbox    string
}
