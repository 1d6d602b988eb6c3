package handler

import (
	"time"

	"github.com/insighthq/customer-intelligence/internal/core/domain"
	"github.com/insighthq/customer-intelligence/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createCustomerRequest) ports.CreateCustomerInput {
	return ports.CreateCustomerInput{
		Name:             req.Name,
		Company:          req.Company,
		Email:            req.Email,
		SubscriptionTier: req.SubscriptionTier,
		Domains:          req.Domains,
	}
}

func toUpdatePatch(req updateCustomerRequest) ports.UpdateCustomerPatch {
	return ports.UpdateCustomerPatch{
		Name:             req.Name,
		Company:          req.Company,
		Email:            req.Email,
		SubscriptionTier: req.SubscriptionTier,
		Domains:          req.Domains,
		HealthScore:      req.HealthScore,
	}
}

// --- Domain → HTTP response ---

func toCustomerResponse(c domain.Customer) customerResponse {
	domains := c.Domains
	if domains == nil {
		domains = []string{}
	}
	return customerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Company:          c.Company,
		Email:            c.Email,
		SubscriptionTier: string(c.SubscriptionTier),
		Domains:          domains,
		HealthScore:      c.HealthScore,
		CreatedAt:        c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toCustomerResponses(customers []domain.Customer) []customerResponse {
	out := make([]customerResponse, len(customers))
	for i, c := range customers {
		out[i] = toCustomerResponse(c)
	}
	return out
}

func toListResponse(r *ports.ListCustomersResult) listCustomersResponse {
	return listCustomersResponse{
		Customers: toCustomerResponses(r.Customers),
		Pagination: paginationResponse{
			Page:       r.Page,
			Limit:      r.Limit,
			Total:      r.Total,
			TotalPages: r.TotalPages,
		},
	}
}

func toSearchResponse(r *ports.SearchCustomersResult, elapsed time.Duration) searchCustomersResponse {
	return searchCustomersResponse{
		Results: toCustomerResponses(r.Results),
		Metadata: searchMetadataResponse{
			SearchTerm:  r.SearchTerm,
			ResultCount: len(r.Results),
			TotalFound:  r.TotalFound,
			Limit:       r.Limit,
			SearchTime:  elapsed.Round(time.Millisecond).String(),
		},
	}
}
