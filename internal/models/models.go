package models

import (
	"time"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	Phone        string    `json:"phone"`
	AvatarURL    string    `json:"avatarUrl"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the server-side carrier of a cookie login. The cookie stores
// only the opaque token; role is always re-read from the users row.
type Session struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"-"`
	UserID    uint      `gorm:"index;not null"  json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"        json:"expires_at"`
	Revoked   bool      `gorm:"default:false"   json:"revoked"`
}

type Product struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Description  string    `gorm:"not null"                 json:"description"`
	Price        int64     `gorm:"not null"                 json:"price"`
	Category     string    `gorm:"index;not null"           json:"category"`
	Images       []string  `gorm:"serializer:json"          json:"images"`
	IsFeatured   bool      `gorm:"default:false"            json:"isFeatured"`
	IsTrending   bool      `gorm:"default:false"            json:"isTrending"`
	Rating       float64   `gorm:"default:0"                json:"rating"`
	ReviewsCount int       `gorm:"default:0"                json:"reviewsCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Service struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `gorm:"not null"                 json:"description"`
	Benefits    []string  `gorm:"serializer:json"          json:"benefits"`
	Images      []string  `gorm:"serializer:json"          json:"images"`
	IsFeatured  bool      `gorm:"default:false"            json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
}

type News struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Title      string    `gorm:"not null"                  json:"title"`
	Content    string    `gorm:"not null"                  json:"content"`
	Type       string    `gorm:"not null;default:news"     json:"type"`
	IsUrgent   bool      `gorm:"default:false"             json:"isUrgent"`
	ImageURL   string    `json:"imageUrl"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OrderLine is the snapshot of one cart line at checkout time. Later catalog
// price changes do not touch submitted orders.
type OrderLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  uint   `json:"quantity"`
}

type DeliveryInfo struct {
	County    string `json:"county"`
	SubCounty string `json:"subCounty"`
	Location  string `json:"location"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type Order struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       *uint        `gorm:"index"                    json:"userId"`
	Items        []OrderLine  `gorm:"serializer:json;not null" json:"items"`
	TotalAmount  int64        `gorm:"not null"                 json:"totalAmount"`
	DeliveryInfo DeliveryInfo `gorm:"serializer:json"          json:"deliveryInfo"`
	Status       string       `gorm:"default:pending"          json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type Appointment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index"                    json:"userId"`
	ServiceID uint      `gorm:"index;not null"           json:"serviceId"`
	Date      time.Time `gorm:"not null"                 json:"date"`
	Office    string    `gorm:"not null"                 json:"office"`
	Location  string    `gorm:"not null"                 json:"location"`
	Status    string    `gorm:"default:pending"          json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"userId"`
	ProductID uint      `gorm:"index;not null"           json:"productId"`
	Rating    int       `gorm:"not null"                 json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Favorite marks a product or a service, never both. The unique indexes keep
// duplicate toggle-on requests idempotent at the storage level.
type Favorite struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_product;uniqueIndex:idx_user_service" json:"userId"`
	ProductID *uint     `gorm:"uniqueIndex:idx_user_product"       json:"productId"`
	ServiceID *uint     `gorm:"uniqueIndex:idx_user_service"       json:"serviceId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ServiceOffice struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	County    string    `gorm:"not null"                 json:"county"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type KenyaCounty struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type KenyaSubCounty struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CountyID uint   `gorm:"index;not null"           json:"countyId"`
	Name     string `gorm:"not null"                 json:"name"`
}

type KenyaArea struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SubCountyID uint   `gorm:"index;not null"           json:"subCountyId"`
	Name        string `gorm:"not null"                 json:"name"`
}

type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"unique;not null"          json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type SiteSettings struct {
	ID                    uint      `gorm:"primaryKey"    json:"id"`
	DefaultWhatsappNumber string    `json:"defaultWhatsappNumber"`
	ShowUrgentBanner      bool      `gorm:"default:true"  json:"showUrgentBanner"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

type EmailChangeRequest struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"userId"`
	NewEmail  string    `gorm:"not null"                 json:"newEmail"`
	Status    string    `gorm:"default:pending"          json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
