package controller

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/internal/app/service"
	"github.com/woodnest/woodnest-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type DimensionPayload struct {
	Name   string   `json:"name" binding:"required"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Depth  *float64 `json:"depth"`
	Length *float64 `json:"length"`
	Price  float64  `json:"price" binding:"gte=0"`
}

type VariantPayload struct {
	DimensionIndex int  `json:"dimension_index" binding:"gte=0"`
	PolishColorID  uint `json:"polish_color_id" binding:"required"`
	StockQuantity  int  `json:"stock_quantity" binding:"gte=0"`
}

type KeptImagePayload struct {
	ImageID   uint `json:"image_id" binding:"required"`
	IsPrimary bool `json:"is_primary"`
}

// ImageSetPayload describes the image set of one color after the edit:
// which persisted images survive and which uploaded file, if any, is the
// new primary. Uploaded files travel in the multipart part named
// images_<color_id>.
type ImageSetPayload struct {
	ColorID    uint               `json:"color_id" binding:"required"`
	Kept       []KeptImagePayload `json:"kept"`
	PrimaryNew *int               `json:"primary_new"`
}

type ProductPayload struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	CategoryID  uint               `json:"category_id" binding:"required"`
	BasePrice   float64            `json:"base_price" binding:"gte=0"`
	Tags        []string           `json:"tags"`
	Dimensions  []DimensionPayload `json:"dimensions" binding:"required,min=1,dive"`
	Variants    []VariantPayload   `json:"variants" binding:"required,min=1,dive"`
	ColorIDs    []uint             `json:"color_ids"`
	Images      []ImageSetPayload  `json:"images"`
}

// GetProducts returns the storefront product list
// GET /api/v1/products
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search:           c.Query("search"),
		SortBy:           repository.ProductSort(c.DefaultQuery("sort", "created_at")),
		SortAscending:    c.Query("order") == "asc",
		IncludeRelations: true,
	}
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid category ID",
			})
			return
		}
		id := uint(categoryID)
		filter.CategoryID = &id
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filter.Offset = offset
	}

	products, err := ctrl.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	type listedProduct struct {
		ID           uint     `json:"id"`
		Name         string   `json:"name"`
		CategoryID   uint     `json:"category_id"`
		CategoryName string   `json:"category_name"`
		Tags         []string `json:"tags"`
		PriceMin     float64  `json:"price_min"`
		PriceMax     float64  `json:"price_max"`
		DisplayPrice string   `json:"display_price"`
		PrimaryImage string   `json:"primary_image,omitempty"`
	}

	listed := make([]listedProduct, 0, len(products))
	for i := range products {
		p := &products[i]
		min, max := p.PriceRange()
		entry := listedProduct{
			ID:           p.ID,
			Name:         p.Name,
			CategoryID:   p.CategoryID,
			CategoryName: p.Category.Name,
			Tags:         p.Tags,
			PriceMin:     min,
			PriceMax:     max,
			DisplayPrice: p.DisplayPrice(),
		}
		for _, img := range p.Images {
			if img.IsPrimary {
				entry.PrimaryImage = img.URL
				break
			}
		}
		listed = append(listed, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"products": listed,
		"count":    len(listed),
	})
}

// GetProductByID returns a product with its full variant matrix
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	min, max := product.PriceRange()
	c.JSON(http.StatusOK, gin.H{
		"product":       product,
		"price_min":     min,
		"price_max":     max,
		"display_price": product.DisplayPrice(),
	})
}

// CreateProduct creates a product with its dimensions, variants, colors
// and images in one submit (Admin only)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	ctrl.saveProduct(c, 0)
}

// UpdateProduct replaces a product's catalog data in one submit (Admin only)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctrl.saveProduct(c, id)
}

func (ctrl *ProductController) saveProduct(c *gin.Context, productID uint) {
	log := middleware.GetLoggerFromContext(c)

	payload, files, err := bindProductPayload(c)
	if err != nil {
		log.Warn("Invalid product payload", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	draft, err := ctrl.buildDraft(productID, payload, files)
	if err != nil {
		log.Warn("Failed to build product draft", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := ctrl.productService.SaveProduct(c.Request.Context(), draft)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDraft) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid product data",
				"details": err.Error(),
			})
			return
		}
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to save product", err, map[string]interface{}{
			"product_id": productID,
			"name":       payload.Name,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save product",
		})
		return
	}

	status := http.StatusOK
	message := "Product updated successfully"
	if productID == 0 {
		status = http.StatusCreated
		message = "Product created successfully"
	}

	log.Info("Product saved", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(status, gin.H{
		"message": message,
		"product": product,
	})
}

// bindProductPayload accepts either a plain JSON body or a multipart
// form whose product part holds the JSON and whose images_<color_id>
// parts hold the uploaded files.
func bindProductPayload(c *gin.Context) (*ProductPayload, map[uint][]*multipart.FileHeader, error) {
	contentType := c.ContentType()

	var payload ProductPayload
	files := make(map[uint][]*multipart.FileHeader)

	if strings.HasPrefix(contentType, "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, err
		}

		raw := c.PostForm("product")
		if raw == "" {
			return nil, nil, errors.New("missing product form field")
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, nil, err
		}

		for field, headers := range form.File {
			colorStr, ok := strings.CutPrefix(field, "images_")
			if !ok {
				continue
			}
			colorID, err := strconv.ParseUint(colorStr, 10, 32)
			if err != nil {
				continue
			}
			files[uint(colorID)] = headers
		}
		return &payload, files, nil
	}

	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, nil, err
	}
	return &payload, files, nil
}

func (ctrl *ProductController) buildDraft(productID uint, payload *ProductPayload, files map[uint][]*multipart.FileHeader) (*service.ProductDraft, error) {
	draft := ctrl.productService.NewDraft()
	draft.ProductID = productID
	draft.Name = payload.Name
	draft.Description = payload.Description
	draft.CategoryID = payload.CategoryID
	draft.BasePrice = payload.BasePrice
	draft.Tags = payload.Tags
	draft.ColorIDs = payload.ColorIDs

	for _, d := range payload.Dimensions {
		draft.AddDimension(service.DimensionEntry{
			Name:   d.Name,
			Width:  d.Width,
			Height: d.Height,
			Depth:  d.Depth,
			Length: d.Length,
			Price:  d.Price,
		})
	}
	// Variants are appended as submitted; SaveProduct validates the
	// dimension references. A variant may still point at a color that was
	// deselected in the same submit, matching how the admin form behaves.
	for _, v := range payload.Variants {
		draft.Variants = append(draft.Variants, service.VariantEntry{
			DimensionIndex: v.DimensionIndex,
			PolishColorID:  v.PolishColorID,
			StockQuantity:  v.StockQuantity,
		})
	}

	for _, set := range payload.Images {
		images := &service.ColorImages{}
		for _, kept := range set.Kept {
			images.Kept = append(images.Kept, service.KeptImage{
				ImageID:   kept.ImageID,
				IsPrimary: kept.IsPrimary,
			})
		}
		for i, header := range files[set.ColorID] {
			data, err := readUpload(header)
			if err != nil {
				return nil, err
			}
			images.Staged = append(images.Staged, service.StagedImage{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
				IsPrimary:   set.PrimaryNew != nil && *set.PrimaryNew == i,
			})
		}
		draft.Images[set.ColorID] = images
	}

	return draft, nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// DeleteProduct removes a product and its images (Admin only)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete product",
		})
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// parseIDParam reads a numeric path parameter, responding with 400 when
// it is not a valid ID.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}
