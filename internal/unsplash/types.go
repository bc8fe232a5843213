package unsplash

import (
	"strings"
	"time"
)

// Photo mirrors one element of GET /photos.
type Photo struct {
	ID          string    `json:"id"`
	CreatedAt   string    `json:"created_at"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Description *string   `json:"description"`
	URLs        PhotoURLs `json:"urls"`
	LikedByUser bool      `json:"liked_by_user"`
}

// PhotoURLs lists the rendition URLs of a photo.
type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// ParsedCreatedAt returns the creation time, or nil when the timestamp is
// missing or malformed.
func (p Photo) ParsedCreatedAt() *time.Time {
	return parseTime(p.CreatedAt)
}

// DescriptionText returns the description, empty when the API sent null.
func (p Photo) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return strings.TrimSpace(*p.Description)
}

// ProfileResult mirrors GET /me.
type ProfileResult struct {
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

// UserResult mirrors the subset of GET /users/:username imagefeed reads.
type UserResult struct {
	Username     string       `json:"username"`
	ProfileImage ProfileImage `json:"profile_image"`
}

// ProfileImage lists avatar renditions.
type ProfileImage struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

func parseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
