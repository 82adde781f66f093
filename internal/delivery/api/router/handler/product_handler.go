package handler

import (
	"net/http"

	"educycle/internal/delivery/api/response"
	"educycle/internal/domain/entity"
	"educycle/internal/infra/metrics"
	"educycle/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler serves listings, bookmarks and share codes.
type ProductHandler struct {
	productUC usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(productUC usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// CreateProductRequest is the body of POST /api/products.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Condition   string   `json:"condition" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Images      []string `json:"images" validate:"required,min=1,dive,required"`
}

// UpdateProductRequest carries a partial product; absent fields are kept.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Condition   *string  `json:"condition"`
	Category    *string  `json:"category"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
	Status      *string  `json:"status" validate:"omitempty,oneof=available sold reserved"`
}

// UpdatePriceRequest is the body of PATCH /api/products/:id/price.
type UpdatePriceRequest struct {
	Price *float64 `json:"price" validate:"required,gte=0"`
}

// ToggleSaveResponse reports the bookmark state after a toggle.
type ToggleSaveResponse struct {
	Product *entity.Product `json:"product"`
	IsSaved bool            `json:"isSaved"`
}

// List returns every product, optionally filtered by ?query= and ?category=.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productUC.List(c.Request().Context(), entity.ProductFilter{
		Query:    c.QueryParam("query"),
		Category: entity.Category(c.QueryParam("category")),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products)
}

// Search is List under its historical path.
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.productUC.Search(c.Request().Context(), c.QueryParam("query"), entity.Category(c.QueryParam("category")))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products)
}

// MyListings returns the authenticated user's listings.
func (h *ProductHandler) MyListings(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	products, err := h.productUC.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products)
}

// MySaved returns the products the authenticated user bookmarked.
func (h *ProductHandler) MySaved(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	products, err := h.productUC.ListSaved(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products)
}

// SellerListings returns the listings of any seller.
func (h *ProductHandler) SellerListings(c echo.Context) error {
	sellerID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	products, err := h.productUC.ListByUser(c.Request().Context(), sellerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products)
}

// Get returns one product with its seller.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productUC.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product)
}

// QRCode renders a PNG linking to the product page.
func (h *ProductHandler) QRCode(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	png, err := h.productUC.ShareQRCode(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Create lists a new product for the authenticated seller.
func (h *ProductHandler) Create(c echo.Context) error {
	sellerID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productUC.Create(c.Request().Context(), sellerID, &usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Condition:   entity.Condition(req.Condition),
		Category:    entity.Category(req.Category),
		Images:      req.Images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	metrics.RecordMarketplaceEvent("product_created")

	return response.Success(c, http.StatusCreated, product)
}

// Update applies a partial change; only the seller may call it.
func (h *ProductHandler) Update(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := &usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
	}
	if req.Condition != nil {
		condition := entity.Condition(*req.Condition)
		input.Condition = &condition
	}
	if req.Category != nil {
		category := entity.Category(*req.Category)
		input.Category = &category
	}
	if req.Status != nil {
		status := entity.ProductStatus(*req.Status)
		input.Status = &status
	}

	product, err := h.productUC.Update(c.Request().Context(), userID, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product)
}

// UpdatePrice changes only the price.
func (h *ProductHandler) UpdatePrice(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePriceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productUC.UpdatePrice(c.Request().Context(), userID, id, *req.Price)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product)
}

// Delete removes a listing and every reference to it.
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.productUC.Delete(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// ToggleSave flips the authenticated user's bookmark on a product.
func (h *ProductHandler) ToggleSave(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	output, err := h.productUC.ToggleSave(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &ToggleSaveResponse{
		Product: output.Product,
		IsSaved: output.IsSaved,
	})
}
