package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null"     json:"name"`
	IsActive  bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"sub_categories,omitempty"`
}

type SubCategory struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint      `gorm:"index;not null"           json:"category_id"`
	Name       string    `gorm:"uniqueIndex;not null"     json:"name"`
	IsActive   bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`

	Products []Product `gorm:"foreignKey:SubCategoryID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

type Product struct {
	ID            uint       `gorm:"primaryKey;autoIncrement"  json:"id"`
	SubCategoryID uint       `gorm:"index;not null"            json:"sub_category_id"`
	Name          string     `gorm:"not null"                  json:"name"`
	Brand         string     `gorm:"not null"                  json:"brand"`
	Description   string     `gorm:"not null"                  json:"description"`
	Price         float64    `gorm:"not null;check:price >= 0" json:"price"`
	Quantity      uint       `gorm:"not null;default:0"        json:"quantity"`
	IsActive      bool       `gorm:"default:true"              json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"buyer_id"`
	Status    string    `gorm:"not null;default:pending" json:"status"`
	Total     float64   `gorm:"not null"                 json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items   []OrderItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Address *DeliveryAddress `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"delivery_address,omitempty"`
}

type OrderItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint      `gorm:"index;not null"              json:"order_id"`
	ProductID uint      `gorm:"not null"                    json:"product_id"`
	Quantity  uint      `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64   `gorm:"not null"                    json:"unit_price"`
	LineTotal float64   `gorm:"not null"                    json:"line_total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DeliveryAddress struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID          uint      `gorm:"uniqueIndex;not null"     json:"order_id"`
	City             string    `gorm:"not null"                 json:"city"`
	StreetAddress    string    `gorm:"not null"                 json:"street_address"`
	ApartmentAddress string    `json:"apartment_address"`
	PostalCode       string    `json:"postal_code"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"not null"             json:"-"`
	IsStaff          bool      `gorm:"default:false"        json:"is_staff"`
	IsActive         bool      `gorm:"default:true"         json:"is_active"`
	IsConfirmedEmail bool      `gorm:"default:false"        json:"is_confirmed_email"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Address *UserAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"address,omitempty"`
}

type UserAddress struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"       json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	City             string    `gorm:"not null"                       json:"city"`
	StreetAddress    string    `gorm:"not null"                       json:"street_address"`
	ApartmentAddress string    `json:"apartment_address"`
	PostalCode       string    `json:"postal_code"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Complete reports whether the address carries the fields an order snapshot needs.
func (a *UserAddress) Complete() bool {
	return a != nil && a.City != "" && a.StreetAddress != ""
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"               json:"id"`
	Token     string    `gorm:"unique;not null"          json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	JTI       string    `gorm:"uniqueIndex;not null"     json:"jti"`
	ExpiresAt int64     `gorm:"not null"                 json:"expires_at"`
	Revoked   bool      `gorm:"default:false"            json:"revoked"`
}
