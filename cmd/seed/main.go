package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/woodnest/woodnest-backend/config"
	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/internal/app/service"
	"github.com/woodnest/woodnest-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a catalog workbook. One row per variant:
// Name | Category | Description | Tags | Dimension | Price | Color | Hex | Stock
// Consecutive rows with the same product name fold into one product.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	colorRepo := repository.NewPolishColorRepository(db.GetDB())

	productService := service.NewProductService(productRepo, noopStorage{}, false, 0)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	drafts, err := readCatalog(filePath, categoryRepo, colorRepo, productService)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(drafts))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for _, draft := range drafts {
		if _, err := productService.SaveProduct(context.Background(), draft); err != nil {
			log.Printf("Failed to import product %q: %v", draft.Name, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed!")
	fmt.Printf("Products imported: %d/%d\n", imported, len(drafts))
}

func readCatalog(
	filePath string,
	categoryRepo repository.CategoryRepository,
	colorRepo repository.PolishColorRepository,
	productService service.ProductService,
) ([]*service.ProductDraft, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	categories, err := loadCategories(categoryRepo)
	if err != nil {
		return nil, err
	}
	colors, err := loadColors(colorRepo)
	if err != nil {
		return nil, err
	}

	var drafts []*service.ProductDraft
	var current *service.ProductDraft
	dimensionIndex := make(map[string]int)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 9 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		categoryName := strings.TrimSpace(row[1])
		description := strings.TrimSpace(row[2])
		tags := strings.TrimSpace(row[3])
		dimensionName := strings.TrimSpace(row[4])
		priceStr := strings.TrimSpace(row[5])
		colorName := strings.TrimSpace(row[6])
		hexCode := strings.TrimSpace(row[7])
		stockStr := strings.TrimSpace(row[8])

		if name == "" || dimensionName == "" || colorName == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			skipped++
			continue
		}
		stock, _ := strconv.Atoi(stockStr)

		categoryID, err := resolveCategory(categoryRepo, categories, categoryName)
		if err != nil {
			return nil, err
		}
		colorID, err := resolveColor(colorRepo, colors, colorName, hexCode)
		if err != nil {
			return nil, err
		}

		if current == nil || current.Name != name {
			current = productService.NewDraft()
			current.Name = name
			current.Description = description
			current.CategoryID = categoryID
			if tags != "" {
				current.Tags = strings.Split(tags, ",")
				for j := range current.Tags {
					current.Tags[j] = strings.TrimSpace(current.Tags[j])
				}
			}
			drafts = append(drafts, current)
			dimensionIndex = make(map[string]int)
		}

		index, ok := dimensionIndex[dimensionName]
		if !ok {
			index = len(current.Dimensions)
			dimensionIndex[dimensionName] = index
			current.AddDimension(service.DimensionEntry{
				Name:  dimensionName,
				Price: price,
			})
		}

		if !containsID(current.ColorIDs, colorID) {
			current.ToggleColor(colorID)
		}

		if err := current.AddVariant(service.VariantEntry{
			DimensionIndex: index,
			PolishColorID:  colorID,
			StockQuantity:  stock,
		}); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	if skipped > 0 {
		fmt.Printf("Skipped rows: %d\n", skipped)
	}
	return drafts, nil
}

func loadCategories(repo repository.CategoryRepository) (map[string]uint, error) {
	categories, err := repo.FindAll()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uint, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}
	return byName, nil
}

func loadColors(repo repository.PolishColorRepository) (map[string]uint, error) {
	colors, err := repo.FindAll()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uint, len(colors))
	for _, c := range colors {
		byName[c.Name] = c.ID
	}
	return byName, nil
}

func resolveCategory(repo repository.CategoryRepository, byName map[string]uint, name string) (uint, error) {
	if id, ok := byName[name]; ok {
		return id, nil
	}
	category := model.Category{Name: name}
	if err := repo.Create(&category); err != nil {
		return 0, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	byName[name] = category.ID
	return category.ID, nil
}

func resolveColor(repo repository.PolishColorRepository, byName map[string]uint, name, hexCode string) (uint, error) {
	if id, ok := byName[name]; ok {
		return id, nil
	}
	normalized, err := service.NormalizeHex(hexCode)
	if err != nil {
		return 0, fmt.Errorf("invalid hex code for color %q: %w", name, err)
	}
	color := model.PolishColor{Name: name, HexCode: normalized}
	if err := repo.Create(&color); err != nil {
		return 0, fmt.Errorf("failed to create polish color %q: %w", name, err)
	}
	byName[name] = color.ID
	return color.ID, nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// noopStorage satisfies the product service's storage dependency; the
// seed workbook carries no images.
type noopStorage struct{}

func (noopStorage) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	return key, nil
}

func (noopStorage) Delete(_ context.Context, _ []string) error {
	return nil
}
