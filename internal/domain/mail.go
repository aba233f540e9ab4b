package domain

// MailSubject selects one of the canned transactional messages.
// The values are sent verbatim by the mobile app in the "subject" field.
type MailSubject string

const (
	SubjectAccountActivated MailSubject = "Compte Activer"
	SubjectActivationCode   MailSubject = "Activation de compte"
	SubjectForgotPassword   MailSubject = "Mot de passe oublié"
	SubjectChangePassword   MailSubject = "Changer mot de passe"
)

// RequiresCode reports whether the message for this subject carries a verification code.
func (s MailSubject) RequiresCode() bool {
	return s != SubjectAccountActivated
}

// Known reports whether s is one of the supported subjects.
func (s MailSubject) Known() bool {
	switch s {
	case SubjectAccountActivated, SubjectActivationCode, SubjectForgotPassword, SubjectChangePassword:
		return true
	}
	return false
}

// Mail is a rendered message ready for the transport.
type Mail struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}
