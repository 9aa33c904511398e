package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
)

// SheetChecks is the worksheet name of the check portfolio export.
const SheetChecks = "Cheques"

var checkHeaders = []string{
	"Número",
	"Tipo",
	"Estado",
	"Vencimiento",
	"Monto",
	"Banco",
	"Librador",
}

// Service produces XLSX bytes for exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ChecksXLSX returns a workbook with one row per check, in the given order,
// followed by a total row summing the amounts.
func (s *Service) ChecksXLSX(checks []entity.Check) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Rename the default sheet so the workbook has a single one.
	if err := f.SetSheetName(f.GetSheetName(0), SheetChecks); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range checkHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetChecks, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	row := 2
	amounts := make([]money.Money, 0, len(checks))
	for _, c := range checks {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetChecks, cell, v)
		}
		write(1, c.Number)
		write(2, string(c.Direction))
		write(3, string(c.Status))
		write(4, c.DueDate.String())
		write(5, c.Amount.Float64())
		write(6, c.Bank)
		write(7, c.Drawer)

		amounts = append(amounts, c.Amount)
		row++
	}

	totalLabel, _ := excelize.CoordinatesToCellName(4, row)
	totalCell, _ := excelize.CoordinatesToCellName(5, row)
	_ = f.SetCellValue(SheetChecks, totalLabel, "Total")
	_ = f.SetCellValue(SheetChecks, totalCell, money.Sum(amounts...).Float64())

	firstAmount, _ := excelize.CoordinatesToCellName(5, 2)
	if err := f.SetCellStyle(SheetChecks, firstAmount, totalCell, amountStyle); err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	_ = f.SetColWidth(SheetChecks, "A", "A", 14) // number
	_ = f.SetColWidth(SheetChecks, "B", "C", 12)
	_ = f.SetColWidth(SheetChecks, "D", "D", 14) // due date
	_ = f.SetColWidth(SheetChecks, "E", "E", 16) // amount
	_ = f.SetColWidth(SheetChecks, "F", "G", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.checks.ok",
		"rows", len(checks),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
