package handler

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/insighthq/customer-intelligence/internal/api/metrics"
	"github.com/insighthq/customer-intelligence/internal/core/domain"
	"github.com/insighthq/customer-intelligence/internal/core/ports"
)

// searchTermAllowed is an allow-list for free-text search input: letters,
// digits, and the characters that appear in names, companies and emails.
// Anything else is stripped before length checks run.
var searchTermAllowed = regexp.MustCompile(`[^a-zA-Z0-9 @._'-]+`)

// CustomerHandler handles HTTP requests for customer operations.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// List handles GET /customers.
//
// @Summary      List customers with filtering, sorting and pagination
// @Tags         customers
// @Produce      json
// @Param        page              query     int     false  "1-based page number"
// @Param        limit             query     int     false  "Items per page (max 100)"
// @Param        sortBy            query     string  false  "Field to sort by (e.g. name, healthScore, createdAt)"
// @Param        sortOrder         query     string  false  "asc or desc"
// @Param        subscriptionTier  query     string  false  "Exact tier match"
// @Param        healthScoreMin    query     int     false  "Inclusive lower health score bound"
// @Param        healthScoreMax    query     int     false  "Inclusive upper health score bound"
// @Param        company           query     string  false  "Case-insensitive company substring"
// @Param        searchTerm        query     string  false  "Substring matched against name, company or email"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListCustomers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toListResponse(result))
}

// Create handles POST /customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError("", "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.NewValidationError("", err.Error())
	}

	created, err := h.service.CreateCustomer(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.CustomersCreatedTotal.WithLabelValues(string(created.SubscriptionTier)).Inc()
	return respond(c, http.StatusCreated, toCustomerResponse(*created))
}

// Get handles GET /customers/:id.
//
// @Summary      Get a customer by id
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.service.GetCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toCustomerResponse(*customer))
}

// Update handles PUT /customers/:id.
//
// @Summary      Partially update a customer
// @Description  Only fields present in the body are changed. A patch touching
// @Description  subscriptionTier or domains recomputes the health score,
// @Description  overriding an explicit healthScore in the same patch.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Customer id"
// @Param        body  body      updateCustomerRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError("", "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.NewValidationError("", err.Error())
	}

	updated, err := h.service.UpdateCustomer(c.Request().Context(), c.Param("id"), toUpdatePatch(req))
	if err != nil {
		return err
	}

	metrics.CustomersUpdatedTotal.Inc()
	return respond(c, http.StatusOK, toCustomerResponse(*updated))
}

// Delete handles DELETE /customers/:id.
//
// @Summary      Delete a customer
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	// Trimmed to match the canonical id the service deletes by.
	id := strings.TrimSpace(c.Param("id"))
	if err := h.service.DeleteCustomer(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.CustomersDeletedTotal.Inc()
	return respond(c, http.StatusOK, deleteCustomerResponse{Deleted: true, ID: id})
}

// Search handles GET /customers/search.
//
// @Summary      Free-text customer search
// @Tags         customers
// @Produce      json
// @Param        q      query     string  true   "Search term (min 2 chars after sanitization)"
// @Param        limit  query     int     false  "Max results (default 10, max 50)"
// @Success      200    {object}  envelope
// @Failure      400    {object}  envelope
// @Router       /customers/search [get]
func (h *CustomerHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(searchTermAllowed.ReplaceAllString(c.QueryParam("q"), ""))
	if len(term) < 2 {
		return domain.NewValidationError("q", "search term must be at least 2 characters")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.NewValidationError("limit", "must be an integer")
		}
		limit = n
	}

	start := time.Now()
	result, err := h.service.SearchCustomers(c.Request().Context(), term, limit)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	metrics.SearchesTotal.Inc()
	metrics.SearchDuration.Observe(elapsed.Seconds())

	return respond(c, http.StatusOK, toSearchResponse(result, elapsed))
}

// Stats handles GET /customers/stats with ETag-based 304 support.
//
// @Summary      Aggregate customer statistics
// @Tags         customers
// @Produce      json
// @Success      200  {object}  envelope
// @Success      304  "Not Modified"
// @Router       /customers/stats [get]
func (h *CustomerHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	etag := statsETag(stats)
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return respond(c, http.StatusOK, stats)
}

// statsETag derives a weak validator from the stats payload. A content hash
// is all that is needed: stats change whenever the collection does.
func statsETag(stats *domain.CustomerStats) string {
	payload, err := json.Marshal(stats)
	if err != nil {
		return `"stats-0"`
	}
	h := fnv.New64a()
	_, _ = h.Write(payload)
	return fmt.Sprintf(`"stats-%x"`, h.Sum64())
}

func parseListFilter(c echo.Context) (ports.ListCustomersFilter, error) {
	filter := ports.ListCustomersFilter{
		SubscriptionTier: c.QueryParam("subscriptionTier"),
		Company:          c.QueryParam("company"),
		SearchTerm:       c.QueryParam("searchTerm"),
		SortBy:           c.QueryParam("sortBy"),
		SortOrder:        c.QueryParam("sortOrder"),
	}

	var err error
	if filter.Page, err = intQueryParam(c, "page"); err != nil {
		return filter, err
	}
	if filter.Limit, err = intQueryParam(c, "limit"); err != nil {
		return filter, err
	}
	if filter.HealthScoreMin, err = optionalIntQueryParam(c, "healthScoreMin"); err != nil {
		return filter, err
	}
	if filter.HealthScoreMax, err = optionalIntQueryParam(c, "healthScoreMax"); err != nil {
		return filter, err
	}
	return filter, nil
}

func intQueryParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func optionalIntQueryParam(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be an integer")
	}
	return &n, nil
}
