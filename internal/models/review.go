package models

import "time"

// Review: отзыв покупателя о продавце.
type Review struct {
	ID           int64     `json:"id"`
	BusinessUser int64     `json:"business_user"`
	Reviewer     int64     `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReviewInput: запрос на создание отзыва. Автор берётся из Identity.
type ReviewInput struct {
	BusinessUser int64  `json:"business_user" validate:"required,gt=0"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Description  string `json:"description"`
}

// ReviewPatch: изменяемые поля отзыва.
type ReviewPatch struct {
	Rating      *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Description *string `json:"description"`
}

// ReviewFilter: параметры выборки отзывов.
type ReviewFilter struct {
	BusinessUserID *int64
	ReviewerID     *int64
	Ordering       string // updated_at | rating
	Desc           bool
	Page           int
	PageSize       int
}

// BaseInfo: сводные показатели платформы.
type BaseInfo struct {
	ReviewCount          int     `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int     `json:"business_profile_count"`
	OfferCount           int     `json:"offer_count"`
}
