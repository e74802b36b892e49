package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate value for unique field")
	ErrForeignKey = errors.New("referenced record does not exist")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo { return &GormRepo{DB: db} }

// classify maps driver-level failures onto the repo's sentinel errors so that
// handlers can tell a constraint violation (client error) from a storage
// failure (server error). TranslateError handles most drivers; the text match
// covers dialectors without an ErrorTranslator.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key"):
		return ErrDuplicate
	case strings.Contains(msg, "FOREIGN KEY constraint") || strings.Contains(msg, "violates foreign key"):
		return ErrForeignKey
	}
	return err
}
