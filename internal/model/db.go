package model

import "time"

type Category struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:128;not null" json:"slug"`
}

type Product struct {
	ID          int64    `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"index;size:256;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       float64  `gorm:"not null" json:"price"`
	TgPostURL   *string  `gorm:"size:512" json:"tg_post_url"`
	Team        string   `gorm:"size:128" json:"team"`    // e.g. "Manchester United 2008"
	Size        string   `gorm:"size:16" json:"size"`     // e.g. "M", "L"
	Brand       *string  `gorm:"size:64" json:"brand"`    // e.g. "Adidas", "Nike"
	League      *string  `gorm:"size:64" json:"league"`   // e.g. "АПЛ", "Ла Лига"
	Season      *string  `gorm:"size:32" json:"season"`   // e.g. "2023-2026"
	KitType     *string  `gorm:"size:64" json:"kit_type"` // e.g. "Домашняя", "Гостевая"
	ImageURL    string   `gorm:"size:512" json:"image_url"`
	CategoryID  int64    `gorm:"index;not null" json:"category_id"`

	Category      *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	GalleryImages []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

type ProductImage struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	ProductID int64  `gorm:"index;not null" json:"product_id"`
	ImageURL  string `gorm:"size:512;not null" json:"image_url"`
}

type User struct {
	TelegramID int64   `gorm:"primaryKey" json:"telegram_id"`
	Username   *string `gorm:"size:128" json:"username"`
}

// CartItem references Product without a cascading FK on purpose: product
// deletion leaves orphan rows behind, which the cart service purges on read.
type CartItem struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	UserID    int64 `gorm:"index;not null" json:"user_id"`
	ProductID int64 `gorm:"index;not null" json:"product_id"`
	Quantity  int   `gorm:"not null;default:1" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type Favorite struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	UserID    int64 `gorm:"index;not null" json:"user_id"`
	ProductID int64 `gorm:"index;not null" json:"product_id"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

const (
	OrderStatusReceived  = "received"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
)

type Order struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	TotalPrice float64   `gorm:"not null;default:0" json:"total_price"`
	Status     string    `gorm:"size:20;index;not null;default:received" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a snapshot taken at order time. ProductID is nullable because
// the source product may be deleted later; name and price stay frozen.
type OrderItem struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	OrderID     int64   `gorm:"index;not null" json:"order_id"`
	ProductID   *int64  `gorm:"index" json:"product_id"`
	ProductName string  `gorm:"size:256;not null" json:"product_name"`
	Price       float64 `gorm:"not null" json:"price"`
	Quantity    int     `gorm:"not null;default:1" json:"quantity"`
}

type SizeSubscription struct {
	ID     int64  `gorm:"primaryKey" json:"id"`
	UserID int64  `gorm:"index;not null" json:"user_id"`
	Size   string `gorm:"size:16;index;not null" json:"size"`
}

type AdminAccount struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string    `gorm:"size:128;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
}
