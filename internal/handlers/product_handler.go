package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockroom/internal/models"
	"stockroom/internal/services"
	"stockroom/internal/validators"
)

type ProductHandler struct {
	Service *services.ProductService
}

func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{Service: service}
}

// @Summary      Add a product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        product  body      models.CreateProductRequest  true  "Product"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Router       /add_product [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Service.Create(req.Name, req.ExpirationDate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate),
			errors.Is(err, validators.ErrProductNameEmpty),
			errors.Is(err, validators.ErrProductNameTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			internalError(c, "Failed to create product", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Product added successfully",
		"product": product,
	})
}

// @Summary      List products
// @Tags         Products
// @Produce      json
// @Success      200  {array}  models.Product
// @Router       /get_products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Service.List()
	if err != nil {
		internalError(c, "Failed to list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary      Get a product by id or name
// @Tags         Products
// @Produce      json
// @Param        id_or_name  path      string  true  "Product id or name"
// @Success      200         {object}  models.Product
// @Failure      404         {object}  map[string]string
// @Router       /get_product/{id_or_name} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.Service.Get(c.Param("id_or_name"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		internalError(c, "Failed to get product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// @Summary      Delete a product
// @Tags         Products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /delete_product/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	product, err := h.Service.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		internalError(c, "Failed to delete product", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Product %s with id %d has been deleted successfully", product.Name, product.ID),
	})
}
