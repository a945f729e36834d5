package dto

import "github.com/google/uuid"

type CreateAccessRequest struct {
	Name string `json:"name"`
}

type CreateStoreRequest struct {
	Name string `json:"name"`
}

type UpdateStoreRequest struct {
	Name string `json:"name"`
}

type StoreSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateProductRequest is built by the handler from the multipart form
// fields; images travel separately as ImageUpload values.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Amount      int     `json:"amount"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Amount      *int     `json:"amount"`
}

// ImageUpload carries one uploaded file buffer through the upload pipeline.
type ImageUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

type AddressRequest struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Zip          string `json:"zip"`
	HouseNumber  string `json:"house_number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
}
