package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/alibiomar/ashe-admin-api/internal/config"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// Exporter defines the report export operations supported by the Google
// Sheets adapter.
type Exporter interface {
	AppendSnapshotRow(ctx context.Context, report models.StatsReport) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	snapshotRange string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		snapshotRange: cfg.SnapshotRange,
		logger:        logger,
	}, nil
}

// AppendSnapshotRow appends one flattened KPI row to the snapshot history
// sheet so non-console tooling can chart the store over time.
func (e *GoogleSheetExporter) AppendSnapshotRow(ctx context.Context, report models.StatsReport) error {
	row := []interface{}{
		report.LastUpdated.Format(time.RFC3339),
		report.KPIs.TotalRevenue,
		report.KPIs.TotalExpenses,
		report.KPIs.NetProfit,
		report.KPIs.TotalOrders,
		report.OfflineSales.Counts.Total,
		report.KPIs.TotalCustomers,
		report.Newsletter.Total,
		report.KPIs.AverageOrderValue,
		report.KPIs.ConversionRate,
		report.Inventory.TotalStockUnits,
		report.Inventory.InventoryValue,
		len(report.Inventory.OutOfStock),
		len(report.Inventory.LowStock),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot row into range %s: %w", e.snapshotRange, err)
	}

	e.logger.Debug("snapshot row appended to sheet", zap.String("range", e.snapshotRange))
	return nil
}
