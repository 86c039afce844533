package models

import "time"

// News is one published news item on the public site.
type News struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	AuthorID     *string    `json:"authorId"`
	AuthorName   string     `json:"authorName"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	LastEditedBy *string    `json:"lastEditedBy"`
	LastEditedAt *time.Time `json:"lastEditedAt"`
}

// CreateNewsRequest is the body of a news create call.
type CreateNewsRequest struct {
	Title   string `json:"title" binding:"required,notblank,max=200"`
	Content string `json:"content" binding:"required,notblank"`
}

// EditNewsRequest is the body of a news edit call.
type EditNewsRequest struct {
	ID      int    `json:"id" binding:"required"`
	Title   string `json:"title" binding:"required,notblank,max=200"`
	Content string `json:"content" binding:"required,notblank"`
}

// DeleteNewsRequest is the body of a news delete call.
type DeleteNewsRequest struct {
	ID int `json:"id" binding:"required"`
}
