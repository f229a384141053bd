package handler

import (
	"log/slog"
	"net/http"

	"carspares/internal/delivery/http/response"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// CreateProductRequest represents the request body for listing a spare part
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
}

// CreateProduct handles listing a new spare part under the caller's account.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	sellerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), &usecase.CreateProductInput{
		SellerID:    sellerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product, "Product listed successfully")
}

// GetProduct handles retrieving a single product.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// ListProducts handles retrieving the full catalog.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productUC.ListProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// ListMyProducts handles retrieving the caller's own listings.
func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	sellerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	products, err := h.productUC.ListSellerProducts(c.Request().Context(), sellerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// getUserID extracts the authenticated user ID set by the auth middleware.
func (h *ProductHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
