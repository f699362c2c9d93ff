package mail

type StaleLeadAlertData struct {
	LeadName         string
	Status           string
	HoursSinceUpdate int64
}

type StatusChangeData struct {
	LeadName  string
	OldStatus string
	NewStatus string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
