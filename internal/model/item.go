package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents something listed for donation, trade or sale.
// Type is deliberately an open string ("doacao", "troca", "venda", ...):
// the catalog accepts unrecognized values and passes them through.
type Item struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Title       string           `json:"title" gorm:"size:255;not null"`
	Description *string          `json:"description" gorm:"type:text"`
	Type        string           `json:"type" gorm:"size:50;not null"`
	ImageURL    *string          `json:"imageUrl" gorm:"column:image_url;size:2048"`
	UsageTime   *string          `json:"usageTime" gorm:"size:255"`
	Reason      *string          `json:"reason" gorm:"type:text"`
	OpenToTrade *bool            `json:"openToTrade"`
	Price       *decimal.Decimal `json:"price" gorm:"type:decimal(20,2)"`
	UserID      uint             `json:"userId" gorm:"not null;index"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// ItemOwner is the owner projection embedded in item listings.
type ItemOwner struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ItemWithOwner is an item joined with its owner's public fields.
type ItemWithOwner struct {
	Item
	User ItemOwner `json:"user"`
}

// WithOwner projects the preloaded owner onto the listing shape.
func (i Item) WithOwner() ItemWithOwner {
	return ItemWithOwner{
		Item: i,
		User: ItemOwner{ID: i.User.ID, Name: i.User.Name},
	}
}
