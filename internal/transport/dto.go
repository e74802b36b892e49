package transport

import (
	"errors"
	"time"

	"storeapi/internal/models"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Request shapes use pointer fields so a missing field can be told apart from
// a zero value. Validate is called explicitly at the top of each handler.

type UserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (r *UserRequest) Validate() error {
	if r.Username == nil || *r.Username == "" {
		return errors.New("username is required")
	}
	if r.Password == nil || *r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type StoreCreateRequest struct {
	Name *string `json:"name"`
}

func (r *StoreCreateRequest) Validate() error {
	if r.Name == nil || *r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// StoreUpdateRequest merges provided fields over the stored record.
type StoreUpdateRequest struct {
	Name *string `json:"name"`
}

type ProductCreateRequest struct {
	Name    *string  `json:"name"`
	Price   *float64 `json:"price"`
	StoreID *int     `json:"store_id"`
}

func (r *ProductCreateRequest) Validate() error {
	if r.Name == nil || *r.Name == "" {
		return errors.New("name is required")
	}
	if r.Price == nil {
		return errors.New("price is required")
	}
	if r.StoreID == nil {
		return errors.New("store_id is required")
	}
	return nil
}

type ProductUpdateRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// Response shapes. The plain shape carries only self-owned fields; the full
// shape nests the plain shape of the related entity. store_id is accepted on
// input but never emitted, the nested store is emitted instead.

type StorePlain struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductPlain struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type StoreResponse struct {
	StorePlain
	Products []ProductPlain `json:"products"`
}

type ProductResponse struct {
	ProductPlain
	Store StorePlain `json:"store"`
}

func NewStorePlain(s *models.Store) StorePlain {
	return StorePlain{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
}

func NewProductPlain(p *models.Product) ProductPlain {
	return ProductPlain{ID: p.ID, Name: p.Name, Price: p.Price, CreatedAt: p.CreatedAt}
}

func NewStoreResponse(s *models.Store) StoreResponse {
	resp := StoreResponse{
		StorePlain: NewStorePlain(s),
		Products:   make([]ProductPlain, 0, len(s.Products)),
	}
	for i := range s.Products {
		resp.Products = append(resp.Products, NewProductPlain(&s.Products[i]))
	}
	return resp
}

func NewProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{ProductPlain: NewProductPlain(p)}
	if p.Store != nil {
		resp.Store = NewStorePlain(p.Store)
	}
	return resp
}
