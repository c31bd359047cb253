package model

import "time"

// Explicit media types for Project.MediaType. When the column is empty the media
// URL is classified by its suffix and host instead.
const (
	MediaTypeImage         = "image"
	MediaTypeVideo         = "video"
	MediaTypeExternalVideo = "external_video"
)

// Project is one row of the projects table.
type Project struct {
	ID           string    `json:"id"           db:"id"`
	Title        string    `json:"title"        db:"title"`
	Description  string    `json:"description"  db:"description"`
	Technologies []string  `json:"technologies" db:"technologies"`
	Bullets      []string  `json:"bullets"      db:"bullets"`
	MediaURL     string    `json:"mediaUrl"     db:"media_url"`
	MediaType    string    `json:"mediaType"    db:"media_type"`
	WebsiteURL   string    `json:"websiteUrl"   db:"website_url"`
	Category     string    `json:"category"     db:"category"`
	Featured     bool      `json:"featured"     db:"featured"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
}
