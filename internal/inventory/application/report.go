package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/atlasvision/internal/inventory/domain"
	"github.com/wyfcoding/atlasvision/pkg/logging"
	"github.com/xuri/excelize/v2"
)

// InventoryReportService 生成库存报表。
type InventoryReportService struct {
	repo domain.InventoryRepository
}

// NewInventoryReportService 构造函数。
func NewInventoryReportService(repo domain.InventoryRepository) *InventoryReportService {
	return &InventoryReportService{repo: repo}
}

// ExportInventoryXLSX 导出店铺的商品清单为 XLSX 字节流,表头加每个商品一行。
func (s *InventoryReportService) ExportInventoryXLSX(ctx context.Context, shopID string) ([]byte, error) {
	start := time.Now()

	products, err := s.repo.ListAllProducts(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Inventory"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Product Name",
		"Category",
		"Last Price",
		"Seen Count",
		"Last Seen At",
		"Last Scan ID",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, p := range products {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, p.Name)
		write(2, p.Category)
		write(3, p.LastPrice.String())
		write(4, p.SeenCount)
		if p.LastSeenAt != nil {
			write(5, p.LastSeenAt.Format("2006-01-02 15:04:05"))
		} else {
			write(5, "")
		}
		write(6, p.LastScanID)

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "D", 12)
	_ = f.SetColWidth(sheet, "E", "E", 20)
	_ = f.SetColWidth(sheet, "F", "F", 38)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}

	logging.Info(ctx, "Inventory report exported",
		"shop_id", shopID,
		"rows", len(products),
		"elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}
