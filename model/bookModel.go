// model/book.go
package model

import "time"

type Book struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	ISBN          string     `json:"isbn,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	Category      string     `json:"category,omitempty"`
	Description   string     `json:"description,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	PageCount     int        `json:"page_count"`
	IsAvailable   bool       `json:"is_available"`
}

// CreateBookReq represents catalog creation payload
// swagger:model CreateBookReq
type CreateBookReq struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	ISBN          string `json:"isbn"`
	Publisher     string `json:"publisher"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	CoverImageURL string `json:"cover_image_url"`
	PublishedDate string `json:"published_date"`
	PageCount     int    `json:"page_count" validate:"gte=0"`
}
