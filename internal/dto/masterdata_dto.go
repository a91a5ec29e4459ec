package dto

// Master-data maintenance is routine CRUD; requests stay deliberately thin.

type CreateNamedRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

type CreateSubtitleRequest struct {
	Name          string `json:"name"           validate:"required,min=1,max=120"`
	PublicationID string `json:"publication_id" validate:"required,uuid"`
}

type CreateCustomerRequest struct {
	Name  string  `json:"name"  validate:"required,min=1,max=200"`
	Type  string  `json:"type"  validate:"required,oneof=school dealer"`
	City  *string `json:"city"  validate:"omitempty,max=120"`
	Phone *string `json:"phone" validate:"omitempty,max=30"`
}

type NamedResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type SubtitleResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PublicationID string `json:"publication_id"`
	Active        bool   `json:"active"`
}

type CustomerResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	City   *string `json:"city,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active bool    `json:"active"`
}
