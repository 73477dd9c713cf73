package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	OrderStatusNew = "new"

	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentProviderManual = "MANUAL"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"            json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"  json:"username"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"token"`
	UserID    uuid.UUID `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64     `gorm:"not null"        json:"expires_at"`
	Revoked   bool      `gorm:"default:false"   json:"revoked"`
}

type Brand struct {
	ID   uuid.UUID `gorm:"primaryKey"           json:"id"`
	Name string    `gorm:"not null"             json:"name"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID   uuid.UUID `gorm:"primaryKey"           json:"id"`
	Name string    `gorm:"not null"             json:"name"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID       `gorm:"primaryKey"                json:"id"`
	Title       string          `gorm:"not null"                  json:"title"`
	Slug        string          `gorm:"uniqueIndex;not null"      json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency    string          `gorm:"size:3;not null"           json:"currency"`
	Stock       int             `gorm:"not null;default:0"        json:"stock"`
	Active      bool            `gorm:"not null;default:true"     json:"active"`
	Color       string          `json:"color"`
	BrandID     *uuid.UUID      `gorm:"index"                     json:"brand_id,omitempty"`
	CategoryID  *uuid.UUID      `gorm:"index"                     json:"category_id,omitempty"`
	Images      []ProductImage  `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProductImage struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	ProductID uuid.UUID `gorm:"index;not null" json:"product_id"`
	URL       string    `gorm:"not null"       json:"url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
}

type Cart struct {
	ID        uuid.UUID       `gorm:"primaryKey"           json:"id"`
	UserID    uuid.UUID       `gorm:"uniqueIndex;not null" json:"user_id"`
	Currency  string          `gorm:"size:3"               json:"currency"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2)"   json:"subtotal"`
	Discount  decimal.Decimal `gorm:"type:decimal(12,2)"   json:"discount"`
	Tax       decimal.Decimal `gorm:"type:decimal(12,2)"   json:"tax"`
	Shipping  decimal.Decimal `gorm:"type:decimal(12,2)"   json:"shipping"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2)"   json:"total"`
	Items     []CartItem      `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem keeps at most one row per product per cart. Price, title and image
// are snapshotted at add time so the line stays renderable after catalog edits.
type CartItem struct {
	ID        uuid.UUID       `gorm:"primaryKey"                             json:"id"`
	CartID    uuid.UUID       `gorm:"uniqueIndex:idx_cart_product;not null"  json:"cart_id"`
	ProductID uuid.UUID       `gorm:"uniqueIndex:idx_cart_product;not null"  json:"product_id"`
	Quantity  int             `gorm:"not null;check:quantity > 0"            json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"            json:"unit_price"`
	Currency  string          `gorm:"size:3"                                 json:"currency"`
	Title     string          `json:"title"`
	Color     string          `json:"color"`
	ImageURL  string          `json:"image_url"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Order struct {
	ID              uuid.UUID       `gorm:"primaryKey"           json:"id"`
	UserID          uuid.UUID       `gorm:"index;not null"       json:"user_id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null" json:"order_number"`
	Status          string          `gorm:"not null"             json:"status"`
	Currency        string          `gorm:"size:3"               json:"currency"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2)"   json:"subtotal"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2)"   json:"discount"`
	Tax             decimal.Decimal `gorm:"type:decimal(12,2)"   json:"tax"`
	Shipping        decimal.Decimal `gorm:"type:decimal(12,2)"   json:"shipping"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2)"   json:"total"`
	ShippingAddress string          `json:"shipping_address"`
	BillingAddress  string          `json:"billing_address"`
	Notes           string          `json:"notes"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem.ProductID is nullable so historical orders survive product deletion.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                  json:"id"`
	OrderID   uuid.UUID       `gorm:"index;not null"              json:"order_id"`
	ProductID *uuid.UUID      `gorm:"index"                       json:"product_id"`
	Title     string          `gorm:"not null"                    json:"title"`
	Color     string          `json:"color"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	ImageURL  string          `json:"image_url"`
}

type Payment struct {
	ID        uint            `gorm:"primaryKey"           json:"id"`
	OrderID   uuid.UUID       `gorm:"uniqueIndex;not null" json:"order_id"`
	Provider  string          `gorm:"not null"             json:"provider"`
	Status    string          `gorm:"not null"             json:"status"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)"   json:"amount"`
	Currency  string          `gorm:"size:3"               json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Wishlist struct {
	ID     uuid.UUID      `gorm:"primaryKey"           json:"id"`
	UserID uuid.UUID      `gorm:"uniqueIndex;not null" json:"user_id"`
	Items  []WishlistItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type WishlistItem struct {
	ID         uint      `gorm:"primaryKey"                                json:"id"`
	WishlistID uuid.UUID `gorm:"uniqueIndex:idx_wishlist_product;not null" json:"wishlist_id"`
	ProductID  uuid.UUID `gorm:"uniqueIndex:idx_wishlist_product;not null" json:"product_id"`
}

type Address struct {
	ID          uint      `gorm:"primaryKey"         json:"id"`
	UserID      uuid.UUID `gorm:"index;not null"     json:"user_id"`
	Kind        string    `gorm:"not null;default:shipping" json:"kind"`
	Line1       string    `gorm:"not null"           json:"line1"`
	Line2       string    `json:"line2"`
	City        string    `gorm:"not null"           json:"city"`
	State       string    `json:"state"`
	PostalCode  string    `gorm:"not null"           json:"postal_code"`
	CountryCode string    `gorm:"size:2;not null"    json:"country_code"`
	Phone       string    `json:"phone"`
	IsDefault   bool      `gorm:"default:false"      json:"is_default"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderCounter is a single-row table incremented under a row lock; order
// numbers derive from it instead of a COUNT(*) read.
type OrderCounter struct {
	ID    uint  `gorm:"primaryKey"`
	Count int64 `gorm:"not null"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Brand{},
		&Category{},
		&Product{},
		&ProductImage{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&Wishlist{},
		&WishlistItem{},
		&Address{},
		&OrderCounter{},
	)
}
