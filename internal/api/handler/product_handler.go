package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/palengke/marketplace-api/internal/core/ports"
)

// ProductHandler handles the catalog routes. Create and update accept
// multipart forms so a listing and its image travel in one request.
type ProductHandler struct {
	productService ports.ProductService
	images         ports.ImageStore
}

func NewProductHandler(productService ports.ProductService, images ports.ImageStore) *ProductHandler {
	return &ProductHandler{productService: productService, images: images}
}

type decrementRequest struct {
	OrderQuantity int `json:"orderQuantity" validate:"required,gt=0"`
}

// Create adds a listing for the authenticated seller.
//
// @Summary      Add a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Product name"
// @Param        quantity     formData  int     true   "Stock quantity"
// @Param        unitPrice    formData  number  true   "Unit price"
// @Param        description  formData  string  false  "Description"
// @Param        category     formData  string  true   "Category"
// @Param        image        formData  file    false  "Product image"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	name := c.FormValue("name")
	category := c.FormValue("category")
	if name == "" || category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and category are required")
	}

	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || quantity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be a non-negative integer")
	}
	unitPrice, err := strconv.ParseFloat(c.FormValue("unitPrice"), 64)
	if err != nil || unitPrice <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "unitPrice must be a positive number")
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), ports.CreateProductInput{
		UserID:      userID,
		Name:        name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Description: c.FormValue("description"),
		Category:    category,
		Image:       imagePath,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update merges the submitted fields into an existing listing.
//
// @Summary      Update a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	input := ports.UpdateProductInput{
		UserID:      userID,
		ProductID:   c.Param("id"),
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}

	if raw := c.FormValue("quantity"); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil || quantity < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "quantity must be a non-negative integer")
		}
		input.Quantity = &quantity
	}
	if raw := c.FormValue("unitPrice"); raw != "" {
		unitPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || unitPrice <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "unitPrice must be a positive number")
		}
		input.UnitPrice = &unitPrice
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return err
	}
	input.Image = imagePath

	product, err := h.productService.Update(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete soft-deletes a listing owned by the authenticated seller.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	if err := h.productService.SoftDelete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// Get returns a single active listing.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// List returns every active listing.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}  map[string]any
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Search filters listings case-insensitively, OR-ing the supplied fields.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Param        category      query  string  false  "Category filter"
// @Param        name          query  string  false  "Name search term"
// @Param        businessName  query  string  false  "Business name search term"
// @Success      200  {array}  map[string]any
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.productService.Search(c.Request().Context(), ports.ProductSearchFilter{
		Category:     c.QueryParam("category"),
		Name:         c.QueryParam("name"),
		BusinessName: c.QueryParam("businessName"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Decrement reduces a listing's stock by the ordered quantity. This is a
// standalone call, deliberately separate from order placement.
//
// @Summary      Decrement product stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "Product ID"
// @Param        body  body  decrementRequest  true  "Ordered quantity"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id}/order [post]
func (h *ProductHandler) Decrement(c echo.Context) error {
	if _, err := actorID(c); err != nil {
		return err
	}

	var req decrementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.productService.DecrementOnOrder(c.Request().Context(), c.Param("id"), req.OrderQuantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// saveImage stores the optional "image" part of a multipart form and returns
// its served path. A missing file is not an error.
func (h *ProductHandler) saveImage(c echo.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		// Non-multipart requests simply have no image part.
		return "", nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "cannot read image upload")
	}
	defer src.Close()

	path, err := h.images.Save(c.Request().Context(), fileHeader.Filename, src)
	if err != nil {
		return "", err
	}
	return path, nil
}
