package model

import "time"

// Item is a record filed under a category. Items reference their category by
// back-relation; the category does not own their lifecycle, but a category
// with non-archived items cannot be deleted.
type Item struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"-"`
	CategoryID string    `json:"categoryId"`
	Title      string    `json:"title"`
	Note       string    `json:"note"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewItem(ownerID, categoryID, title, note string) *Item {
	now := time.Now()
	return &Item{
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Title:      title,
		Note:       note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
