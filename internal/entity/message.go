package entity

const (
	MessageTypeSMS   = "sms"
	MessageTypeEmail = "email"
)

type Message struct {
	Type       string   // sms or email
	Subject    string   // email only
	Message    string   // body
	Recipients []string // phone numbers or email addresses
}
