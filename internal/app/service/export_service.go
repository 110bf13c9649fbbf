package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportService produces the back office xlsx exports.
type ExportService interface {
	ExportProducts() (*bytes.Buffer, error)
	ExportDiscounts() (*bytes.Buffer, error)
}

type exportService struct {
	productRepo  repository.ProductRepository
	discountRepo repository.DiscountRepository
}

func NewExportService(productRepo repository.ProductRepository, discountRepo repository.DiscountRepository) ExportService {
	return &exportService{
		productRepo:  productRepo,
		discountRepo: discountRepo,
	}
}

// ExportProducts writes one row per variant so the sheet can be filtered
// by dimension and color directly in a spreadsheet.
func (s *exportService) ExportProducts() (*bytes.Buffer, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Product ID", "Name", "Category", "Price", "Dimension", "Color", "Stock", "Tags"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, p := range products {
		colorNames := make(map[uint]string, len(p.Colors))
		for _, c := range p.Colors {
			colorNames[c.ID] = c.Name
		}
		dimensionNames := make(map[uint]model.Dimension, len(p.Dimensions))
		for _, d := range p.Dimensions {
			dimensionNames[d.ID] = d
		}

		if len(p.Variants) == 0 {
			s.writeRow(f, sheet, row, []interface{}{
				p.ID, p.Name, p.Category.Name, p.DisplayPrice(), "", "", 0, strings.Join(p.Tags, ", "),
			})
			row++
			continue
		}

		for _, v := range p.Variants {
			dim := dimensionNames[v.DimensionID]
			s.writeRow(f, sheet, row, []interface{}{
				p.ID, p.Name, p.Category.Name, dim.Price, dim.Name,
				colorNames[v.PolishColorID], v.StockQuantity, strings.Join(p.Tags, ", "),
			})
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to write product export", err)
		return nil, err
	}

	logger.Info("Product export generated", map[string]interface{}{
		"products": len(products),
		"rows":     row - 2,
	})
	return buf, nil
}

func (s *exportService) ExportDiscounts() (*bytes.Buffer, error) {
	discounts, err := s.discountRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Discounts"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Name", "Type", "Scope", "Status", "Start", "End", "Coupon Code", "Usage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	now := time.Now()
	for i, d := range discounts {
		var code, usage string
		if d.Coupon != nil {
			code = d.Coupon.Code
			if d.Coupon.UsageLimit != nil {
				usage = fmt.Sprintf("%d/%d", d.Coupon.UsageCount, *d.Coupon.UsageLimit)
			} else {
				usage = fmt.Sprintf("%d", d.Coupon.UsageCount)
			}
		}
		s.writeRow(f, sheet, i+2, []interface{}{
			d.ID, d.Name, string(d.DiscountType), string(d.Scope), string(d.StatusAt(now)),
			d.StartDate.Format("2006-01-02"), d.EndDate.Format("2006-01-02"), code, usage,
		})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to write discount export", err)
		return nil, err
	}
	return buf, nil
}

func (s *exportService) writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}
