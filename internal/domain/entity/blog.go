package entity

import "time"

// BlogPost is a content record. Author must reference an existing User;
// the slug is derived from title + author id and is never mutated directly.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	BannerImage string    `json:"banner_image,omitempty"`
	Slug        string    `json:"slug"`
	IsPublished bool      `json:"is_published"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// BlogWithAuthor joins a post with minimal author info for listings.
type BlogWithAuthor struct {
	BlogPost
	AuthorName    string `json:"author_name"`
	AuthorPicture string `json:"author_picture,omitempty"`
}
