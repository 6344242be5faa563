package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OfferType: ценовой уровень предложения.
type OfferType string

const (
	OfferBasic    OfferType = "basic"
	OfferStandard OfferType = "standard"
	OfferPremium  OfferType = "premium"
)

// Valid сообщает, является ли значение известным уровнем.
func (t OfferType) Valid() bool {
	switch t {
	case OfferBasic, OfferStandard, OfferPremium:
		return true
	default:
		return false
	}
}

// OfferDetail: ценовой уровень конкретного предложения.
type OfferDetail struct {
	ID                 int64           `json:"id"`
	OfferID            int64           `json:"-"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          OfferType       `json:"offer_type"`
}

// URL возвращает относительный адрес уровня в API.
func (d OfferDetail) URL() string {
	return fmt.Sprintf("/offerdetails/%d/", d.ID)
}

// UserDetails: публичные данные владельца предложения.
type UserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// Offer: предложение продавца вместе с его уровнями и агрегатами.
type Offer struct {
	ID              int64
	User            int64
	Title           string
	Image           string
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Details         []OfferDetail
	MinPrice        decimal.Decimal
	MinDeliveryTime int
	UserDetails     UserDetails
}

// DetailLink: ссылка на уровень в кратком представлении предложения.
type DetailLink struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// OfferListItem: элемент выдачи каталога.
type OfferListItem struct {
	ID              int64           `json:"id"`
	User            int64           `json:"user"`
	Title           string          `json:"title"`
	Image           string          `json:"image"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Details         []DetailLink    `json:"details"`
	MinPrice        decimal.Decimal `json:"min_price"`
	MinDeliveryTime int             `json:"min_delivery_time"`
	UserDetails     UserDetails     `json:"user_details"`
}

// OfferView: полное представление предложения со всеми уровнями.
type OfferView struct {
	ID              int64           `json:"id"`
	User            int64           `json:"user"`
	Title           string          `json:"title"`
	Image           string          `json:"image"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Details         []OfferDetail   `json:"details"`
	MinPrice        decimal.Decimal `json:"min_price"`
	MinDeliveryTime int             `json:"min_delivery_time"`
}

// OfferCreated: ответ на создание предложения.
type OfferCreated struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Details     []OfferDetail `json:"details"`
}

// AsListItem строит элемент каталога.
func (o Offer) AsListItem() OfferListItem {
	links := make([]DetailLink, 0, len(o.Details))
	for _, d := range o.Details {
		links = append(links, DetailLink{ID: d.ID, URL: d.URL()})
	}
	return OfferListItem{
		ID:              o.ID,
		User:            o.User,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         links,
		MinPrice:        o.MinPrice,
		MinDeliveryTime: o.MinDeliveryTime,
		UserDetails:     o.UserDetails,
	}
}

// AsView строит полное представление.
func (o Offer) AsView() OfferView {
	return OfferView{
		ID:              o.ID,
		User:            o.User,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         nonNilDetails(o.Details),
		MinPrice:        o.MinPrice,
		MinDeliveryTime: o.MinDeliveryTime,
	}
}

// AsCreated строит ответ на создание.
func (o Offer) AsCreated() OfferCreated {
	return OfferCreated{
		ID:          o.ID,
		Title:       o.Title,
		Image:       o.Image,
		Description: o.Description,
		Details:     nonNilDetails(o.Details),
	}
}

// Aggregate пересчитывает минимальную цену и срок по уровням.
func (o *Offer) Aggregate() {
	for i, d := range o.Details {
		if i == 0 || d.Price.LessThan(o.MinPrice) {
			o.MinPrice = d.Price
		}
		if i == 0 || d.DeliveryTimeInDays < o.MinDeliveryTime {
			o.MinDeliveryTime = d.DeliveryTimeInDays
		}
	}
}

func nonNilDetails(d []OfferDetail) []OfferDetail {
	if d == nil {
		return []OfferDetail{}
	}
	return d
}

// OfferDetailInput: уровень в запросе на создание предложения.
type OfferDetailInput struct {
	Title              string          `json:"title" validate:"required,max=255"`
	Revisions          int             `json:"revisions" validate:"min=-1"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days" validate:"required,gt=0"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          OfferType       `json:"offer_type" validate:"required"`
}

// OfferInput: запрос на создание предложения.
type OfferInput struct {
	Title       string             `json:"title" validate:"required,max=255"`
	Image       string             `json:"image"`
	Description string             `json:"description" validate:"required"`
	Details     []OfferDetailInput `json:"details" validate:"required,min=1,max=3,dive"`
}

// OfferDetailPatch: частичное обновление уровня, сопоставляемого по OfferType.
type OfferDetailPatch struct {
	Title              *string          `json:"title" validate:"omitempty,max=255"`
	Revisions          *int             `json:"revisions" validate:"omitempty,min=-1"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days" validate:"omitempty,gt=0"`
	Price              *decimal.Decimal `json:"price"`
	Features           []string         `json:"features"`
	OfferType          OfferType        `json:"offer_type" validate:"required"`
}

// OfferPatch: частичное обновление предложения.
type OfferPatch struct {
	Title       *string            `json:"title" validate:"omitempty,max=255"`
	Image       *string            `json:"image"`
	Description *string            `json:"description"`
	Details     []OfferDetailPatch `json:"details" validate:"omitempty,max=3,dive"`
}

// OfferOrdering: поле сортировки каталога.
type OfferOrdering string

const (
	OrderByUpdatedAt       OfferOrdering = "updated_at"
	OrderByMinPrice        OfferOrdering = "min_price"
	OrderByMinDeliveryTime OfferOrdering = "min_delivery_time"
)

// OfferFilter: параметры выборки каталога.
type OfferFilter struct {
	Search          string
	MinPrice        *decimal.Decimal
	MaxDeliveryTime *int
	CreatorID       *int64
	OwnerID         *int64 // ограничение выдачи для продавца
	Ordering        OfferOrdering
	Desc            bool
	Page            int
	PageSize        int
}

// OfferPage: страница каталога.
type OfferPage struct {
	Count int
	Items []Offer
}
