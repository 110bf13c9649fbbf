package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/woodnest/woodnest-backend/internal/app/service"
	"github.com/woodnest/woodnest-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	exportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportProducts streams the catalog as an xlsx workbook (Admin only)
// GET /api/v1/admin/export/products
func (ctrl *ExportController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, err := ctrl.exportService.ExportProducts()
	if err != nil {
		log.Error("Failed to export products", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export products",
		})
		return
	}

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportDiscounts streams the discount list as an xlsx workbook (Admin only)
// GET /api/v1/admin/export/discounts
func (ctrl *ExportController) ExportDiscounts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, err := ctrl.exportService.ExportDiscounts()
	if err != nil {
		log.Error("Failed to export discounts", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export discounts",
		})
		return
	}

	filename := fmt.Sprintf("discounts_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
