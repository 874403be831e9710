package entity

import "time"

// User is the aggregate root for the user domain. The bcrypt hash in
// Password is a redundant local copy of the credential held by the external
// identity provider; ProviderID is the back-reference into the provider's
// own user record. Email and Username are globally unique.
type User struct {
	ID             string
	Email          string
	Username       string
	Password       string
	Name           string
	PhoneNumber    string
	ProfilePicture string
	Tagline        string
	Bio            string
	SocialLinks    map[string]string // platform -> URL
	Topics         []string
	Blogs          []string // owned blog-post ids, denormalized back-reference
	Role           string
	Verified       bool
	ProviderID     string
	CreatedAt      time.Time
}

// PublicProfile is the safe projection of a User: everything except the
// password hash and provider back-reference. No endpoint ever returns the
// credential fields.
type PublicProfile struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	Username       string            `json:"username,omitempty"`
	Name           string            `json:"name"`
	PhoneNumber    string            `json:"phone_number,omitempty"`
	ProfilePicture string            `json:"profile_picture,omitempty"`
	Tagline        string            `json:"tagline,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	SocialLinks    map[string]string `json:"social_links,omitempty"`
	Topics         []string          `json:"topics,omitempty"`
	Blogs          []string          `json:"blogs"`
	Role           string            `json:"role,omitempty"`
	Verified       bool              `json:"verified"`
	CreatedAt      time.Time         `json:"created_at"`
}

// Public returns the safe projection for API responses.
func (u *User) Public() PublicProfile {
	blogs := u.Blogs
	if blogs == nil {
		blogs = []string{}
	}
	return PublicProfile{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		Name:           u.Name,
		PhoneNumber:    u.PhoneNumber,
		ProfilePicture: u.ProfilePicture,
		Tagline:        u.Tagline,
		Bio:            u.Bio,
		SocialLinks:    u.SocialLinks,
		Topics:         u.Topics,
		Blogs:          blogs,
		Role:           u.Role,
		Verified:       u.Verified,
		CreatedAt:      u.CreatedAt,
	}
}
