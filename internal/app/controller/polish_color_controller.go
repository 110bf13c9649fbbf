package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/woodnest/woodnest-backend/internal/app/service"
	apperrors "github.com/woodnest/woodnest-backend/internal/errors"
	"github.com/woodnest/woodnest-backend/internal/middleware"
)

type PolishColorController struct {
	colorService service.PolishColorService
}

func NewPolishColorController(colorService service.PolishColorService) *PolishColorController {
	return &PolishColorController{
		colorService: colorService,
	}
}

type PolishColorRequest struct {
	Name        string `json:"name" binding:"required"`
	HexCode     string `json:"hex_code"`
	Description string `json:"description"`
}

// GetPolishColors returns the shared polish color palette
// GET /api/v1/polish-colors
func (ctrl *PolishColorController) GetPolishColors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	colors, err := ctrl.colorService.ListPolishColors()
	if err != nil {
		log.Error("Failed to fetch polish colors", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch polish colors",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"polish_colors": colors,
		"count":         len(colors),
	})
}

// CreatePolishColor adds a color to the palette (Admin only)
// POST /api/v1/admin/polish-colors
func (ctrl *PolishColorController) CreatePolishColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PolishColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	color, err := ctrl.colorService.CreatePolishColor(req.Name, req.HexCode, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrInvalidHexCode) || errors.Is(err, service.ErrPolishColorNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		log.Error("Failed to create polish color", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.RespondWithParsed(c, apperrors.ParseError(err, "create polish color"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Polish color created successfully",
		"polish_color": color,
	})
}

// UpdatePolishColor updates a palette color (Admin only)
// PUT /api/v1/admin/polish-colors/:id
func (ctrl *PolishColorController) UpdatePolishColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PolishColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	color, err := ctrl.colorService.UpdatePolishColor(id, req.Name, req.HexCode, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrPolishColorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Polish color not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidHexCode) || errors.Is(err, service.ErrPolishColorNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		log.Error("Failed to update polish color", err, map[string]interface{}{
			"polish_color_id": id,
		})
		apperrors.RespondWithParsed(c, apperrors.ParseError(err, "update polish color"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Polish color updated successfully",
		"polish_color": color,
	})
}

// DeletePolishColor removes a palette color (Admin only)
// DELETE /api/v1/admin/polish-colors/:id
func (ctrl *PolishColorController) DeletePolishColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.colorService.DeletePolishColor(id); err != nil {
		if errors.Is(err, service.ErrPolishColorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Polish color not found",
			})
			return
		}
		log.Error("Failed to delete polish color", err, map[string]interface{}{
			"polish_color_id": id,
		})
		apperrors.RespondWithParsed(c, apperrors.ParseError(err, "delete polish color"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Polish color deleted successfully",
	})
}
