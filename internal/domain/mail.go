package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type NewAccountMailData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ResetPasswordMailData struct {
	Name       string `json:"name"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type FollowUpMailData struct {
	Name       string `json:"name"`
	ClientName string `json:"clientName"`
	Task       string `json:"task"`
	Date       string `json:"date"`
}
