package handler

import (
	"time"

	"github.com/labstack/echo/v4"
)

// envelope is the standard response wrapper for all successful responses.
// Errors use the matching shape rendered by the central error handler.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Request types ---

type createCustomerRequest struct {
	Name             string   `json:"name"             validate:"required,max=100"`
	Company          string   `json:"company"          validate:"required,max=100"`
	Email            string   `json:"email"            validate:"omitempty,email,max=254"`
	SubscriptionTier string   `json:"subscriptionTier" validate:"omitempty,oneof=basic premium enterprise"`
	Domains          []string `json:"domains"          validate:"omitempty,max=10,dive,max=253,fqdn"`
}

// updateCustomerRequest is a partial patch: nil fields are left unchanged.
type updateCustomerRequest struct {
	Name             *string   `json:"name"             validate:"omitempty,max=100"`
	Company          *string   `json:"company"          validate:"omitempty,max=100"`
	Email            *string   `json:"email"            validate:"omitempty,email,max=254"`
	SubscriptionTier *string   `json:"subscriptionTier" validate:"omitempty,oneof=basic premium enterprise"`
	Domains          *[]string `json:"domains"          validate:"omitempty,max=10,dive,max=253,fqdn"`
	HealthScore      *int      `json:"healthScore"      validate:"omitempty,min=0,max=100"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type customerResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Company          string   `json:"company"`
	Email            string   `json:"email,omitempty"`
	SubscriptionTier string   `json:"subscriptionTier"`
	Domains          []string `json:"domains"`
	HealthScore      int      `json:"healthScore"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

type paginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type listCustomersResponse struct {
	Customers  []customerResponse `json:"customers"`
	Pagination paginationResponse `json:"pagination"`
}

type searchMetadataResponse struct {
	SearchTerm  string `json:"searchTerm"`
	ResultCount int    `json:"resultCount"`
	TotalFound  int    `json:"totalFound"`
	Limit       int    `json:"limit"`
	SearchTime  string `json:"searchTime"`
}

type searchCustomersResponse struct {
	Results  []customerResponse     `json:"results"`
	Metadata searchMetadataResponse `json:"metadata"`
}

type deleteCustomerResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
