package domain

import "time"

// CodePurpose tags which action a verification code may authorize.
// Values are the ones the mobile app writes into the directory.
type CodePurpose string

const (
	CodePurposeForgotPassword  CodePurpose = "motDePasseOublie"
	CodePurposeChangePassword  CodePurpose = "changerMotDePasse"
	CodePurposeActivateAccount CodePurpose = "activationDeCompte"
)

// AllowsPasswordReset reports whether a code with this purpose may authorize a password change.
func (p CodePurpose) AllowsPasswordReset() bool {
	return p == CodePurposeForgotPassword || p == CodePurposeChangePassword
}

// UserRecord is a directory entry. The same shape is stored in every partition
// (users, patients, practitioners); Partition is filled in on read.
type UserRecord struct {
	UserID           string       `json:"id" dynamodbav:"user_id"`
	Email            string       `json:"email" dynamodbav:"email"`
	PasswordHash     string       `json:"-" dynamodbav:"password_hash"`
	VerificationCode *string      `json:"-" dynamodbav:"verification_code,omitempty"`
	CodeExpiresAt    *time.Time   `json:"-" dynamodbav:"code_expires_at,omitempty"`
	CodeType         *CodePurpose `json:"-" dynamodbav:"code_type,omitempty"`
	FCMToken         *string      `json:"-" dynamodbav:"fcm_token,omitempty"`
	UpdatedAt        time.Time    `json:"updated" dynamodbav:"updated_at"`
	Partition        string       `json:"-" dynamodbav:"-"`
}
