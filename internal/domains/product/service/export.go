package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"storefront-backend/internal/domains/product/model"
	"storefront-backend/internal/domains/product/repository"
	"storefront-backend/pkg/logger"
)

const (
	exportSheetName = "Products"
	exportPageSize  = 100
	MaxExportRows   = 5000
)

var exportHeaders = []string{
	"ID",
	"Name",
	"Slug",
	"Category ID",
	"Price",
	"Discount %",
	"Discounted Price",
	"Weight Unit",
	"Stock",
	"Popular",
	"Image URL",
	"Created At",
}

func (s *productService) ExportExcel(ctx context.Context, req model.ListProductsRequest) (*excelize.File, error) {
	var products []*model.Product

	for offset := 0; offset < MaxExportRows; offset += exportPageSize {
		page, total, err := s.repo.List(ctx, repository.ListFilter{
			CategorySlug: req.CategorySlug,
			PopularOnly:  req.PopularOnly,
			Search:       req.Search,
			Limit:        exportPageSize,
			Offset:       offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		products = append(products, page...)

		if len(page) < exportPageSize || offset+exportPageSize >= total {
			break
		}
	}
	if len(products) > MaxExportRows {
		products = products[:MaxExportRows]
	}

	f, err := buildProductsExcelFile(products)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	logger.Info("products exported", map[string]interface{}{"rows": len(products)})
	return f, nil
}

func buildProductsExcelFile(products []*model.Product) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheetName, "A1", lastHeader, headerStyle)
	}

	for i, p := range products {
		imageURL := ""
		if p.ImageURL != nil {
			imageURL = *p.ImageURL
		}

		row := []interface{}{
			p.ID.String(),
			p.Name,
			p.Slug,
			p.CategoryID.String(),
			p.Price.InexactFloat64(),
			p.DiscountPercent,
			p.DiscountedPrice().InexactFloat64(),
			string(p.WeightUnit),
			p.Stock,
			p.IsPopular,
			imageURL,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheetName, start, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
