package model

import "time"

// PrivateContact holds the contact details that are only shown after the visitor
// enters the matching access code.
//
// AccessCode is tagged json:"-" so it never leaves the server in an API response,
// even when the whole row is encoded after a successful unlock.
type PrivateContact struct {
	ID          string    `json:"id"          db:"id"`
	AccessCode  string    `json:"-"           db:"access_code"`
	Phone       string    `json:"phone"       db:"phone"`
	Email       string    `json:"email"       db:"email"`
	LinkedInURL string    `json:"linkedinUrl" db:"linkedin_url"`
	Location    string    `json:"location"    db:"location"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}
