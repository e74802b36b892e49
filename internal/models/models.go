package models

import (
	"time"
)

type Store struct {
	ID        int       `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name      string    `gorm:"size:80;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null"                     json:"created_at"`
	Products  []Product `gorm:"constraint:OnDelete:CASCADE"  json:"products"`
}

type Product struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:80;not null"         json:"name"`
	Price     float64   `gorm:"not null"                 json:"price"`
	CreatedAt time.Time `gorm:"not null"                 json:"created_at"`
	StoreID   int       `gorm:"index;not null"           json:"store_id"`
	Store     *Store    `json:"-"`
}

type User struct {
	ID           int    `gorm:"primaryKey;autoIncrement"     json:"id"`
	Username     string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:256;not null"            json:"-"`
}

// BlocklistEntry records the jti of a revoked token. Rows are insert-only:
// once a jti lands here the token stays revoked across restarts.
type BlocklistEntry struct {
	ID  int    `gorm:"primaryKey;autoIncrement"     json:"id"`
	JTI string `gorm:"size:36;uniqueIndex;not null" json:"jti"`
}

func (BlocklistEntry) TableName() string { return "blocklist" }
