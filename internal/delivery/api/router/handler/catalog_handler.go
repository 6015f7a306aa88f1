package handler

import (
	"log/slog"
	"net/http"

	"supermarket/internal/delivery/api/response"
	"supermarket/internal/domain/entity"
	"supermarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves the read-only price-check endpoints.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// CategoryResponse is one shelf category.
type CategoryResponse struct {
	Number int    `json:"number"`
	Code   string `json:"code"`
}

// ProductResponse is a product as shown at the kiosk.
type ProductResponse struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	UnitPrice string `json:"unit_price"`
	Available int    `json:"available"`
}

// DiscountResponse describes one discount rule.
type DiscountResponse struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	Percentage bool   `json:"percentage"`
	Category   string `json:"category,omitempty"`
	Item       string `json:"item,omitempty"`
}

// QuoteRequest represents the request body for a price check. At most 50
// lines are priced at once.
type QuoteRequest struct {
	Items []usecase.QuoteItem `json:"items" validate:"required,min=1,max=50,dive"`
}

// QuoteLineResponse is one priced line of a quote.
type QuoteLineResponse struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
	Discount  string `json:"discount"`
}

// QuoteResponse is the priced cart. Nothing is reserved.
type QuoteResponse struct {
	Lines           []QuoteLineResponse `json:"lines"`
	Subtotal        string              `json:"subtotal"`
	Discount        string              `json:"discount"`
	DiscountedTotal string              `json:"discounted_total"`
	Tax             string              `json:"tax"`
	Total           string              `json:"total"`
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// ListCategories returns the categories in menu order.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories := h.catalogUC.Categories()
	out := make([]CategoryResponse, 0, len(categories))
	for i, category := range categories {
		out = append(out, CategoryResponse{Number: i + 1, Code: category.String()})
	}

	return response.Success(c, http.StatusOK, out)
}

// ListProducts returns every product, or the in-stock shelf of one category
// when ?category= is given.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var products []entity.Product
	if raw := c.QueryParam("category"); raw != "" {
		category, ok := entity.ParseCategory(raw)
		if !ok {
			return response.BadRequest(c, "INVALID_CATEGORY", "Unknown category "+raw)
		}
		products = h.catalogUC.Products(ctx, category)
	} else {
		products = h.catalogUC.ListProducts(ctx)
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}

	return response.Success(c, http.StatusOK, out)
}

// GetProduct returns a single product by name.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogUC.FindProduct(c.Request().Context(), c.Param("name"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// ListDiscounts returns the discount rules in priority order.
func (h *CatalogHandler) ListDiscounts(c echo.Context) error {
	rules := h.catalogUC.Discounts()
	out := make([]DiscountResponse, 0, len(rules))
	for i, rule := range rules {
		out = append(out, DiscountResponse{
			Number:     i + 1,
			Name:       rule.Name,
			Kind:       string(rule.Kind),
			Amount:     rule.Magnitude.String(),
			Percentage: rule.IsPercentage,
			Category:   rule.Category.String(),
			Item:       rule.ItemName,
		})
	}

	return response.Success(c, http.StatusOK, out)
}

// Quote prices a transient cart against current stock.
func (h *CatalogHandler) Quote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid quote input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	quote, err := h.catalogUC.Quote(c.Request().Context(), req.Items)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toQuoteResponse(quote))
}

func toProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		Name:      p.Name,
		Category:  p.Category.String(),
		UnitPrice: p.UnitPrice.StringFixed(2),
		Available: p.AvailableQuantity,
	}
}

func toQuoteResponse(quote *usecase.QuoteOutput) QuoteResponse {
	lines := make([]QuoteLineResponse, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		lines = append(lines, QuoteLineResponse{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			LineTotal: line.LineTotal.StringFixed(2),
			Discount:  line.Discount.StringFixed(2),
		})
	}

	return QuoteResponse{
		Lines:           lines,
		Subtotal:        quote.Totals.Subtotal.StringFixed(2),
		Discount:        quote.Totals.Discount.StringFixed(2),
		DiscountedTotal: quote.Totals.DiscountedTotal.StringFixed(2),
		Tax:             quote.Totals.Tax.StringFixed(2),
		Total:           quote.Totals.Total.StringFixed(2),
	}
}
