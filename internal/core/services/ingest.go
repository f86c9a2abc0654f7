// internal/core/services/ingest.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// IngestService imports order workbooks. Everything from the first read
// to the stock recount runs in one transaction.
type IngestService struct {
	extractor ports.WorkbookExtractor
	tx        ports.Transactor
	cache     ports.CacheRepository
	events    ports.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// Statically assert that *IngestService implements the IngestService interface.
var _ ports.IngestService = (*IngestService)(nil)

// NewIngestService creates a new ingest service. cache and events may be nil.
func NewIngestService(
	extractor ports.WorkbookExtractor,
	tx ports.Transactor,
	cache ports.CacheRepository,
	events ports.EventPublisher,
	logger *slog.Logger,
) *IngestService {
	return &IngestService{
		extractor: extractor,
		tx:        tx,
		cache:     cache,
		events:    events,
		logger:    logger.With(slog.String("service", "ingest")),
		now:       time.Now,
	}
}

// Ingest reads the order sheet of data and applies it to storage
func (s *IngestService) Ingest(ctx context.Context, data []byte) (*domain.IngestReport, error) {
	started := s.now()

	workbook, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return nil, err
	}
	sheet, err := workbook.OrderSheet()
	if err != nil {
		return nil, err
	}
	rows, err := domain.ParseOrderRows(sheet)
	if err != nil {
		return nil, err
	}

	report := &domain.IngestReport{
		Sheet:     domain.OrderSheetName,
		RowsRead:  len(rows),
		StartedAt: started,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, gw ports.IngestGateway) error {
		return s.apply(ctx, gw, rows, report)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "ingest rolled back",
			slog.Int("rows", len(rows)),
			slog.String("error", err.Error()))
		return nil, err
	}

	report.Duration = s.now().Sub(started)
	s.logger.InfoContext(ctx, "ingest committed",
		slog.Int("rows", report.RowsRead),
		slog.Int("rows_skipped", report.RowsSkipped),
		slog.Int("warehouses_created", report.WarehousesCreated),
		slog.Int("serial_numbers_created", report.SerialNumbersCreated),
		slog.Int("warehouses_recounted", len(report.Stock)),
		slog.Duration("duration", report.Duration))

	s.afterCommit(ctx, report)
	return report, nil
}

func (s *IngestService) apply(ctx context.Context, gw ports.IngestGateway, rows []domain.OrderRow, report *domain.IngestReport) error {
	names, articles := OrderKeys(rows)

	existing, err := gw.FetchWarehousesByNamesAndArticles(ctx, names, articles)
	if err != nil {
		return fmt.Errorf("failed to fetch known warehouses: %w", err)
	}
	suppliers, err := gw.ListSuppliers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list suppliers: %w", err)
	}
	manufacturers, err := gw.ListManufacturers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list manufacturers: %w", err)
	}

	plan, err := Reconcile(rows, existing, supplierIDs(suppliers), manufacturerIDs(manufacturers))
	if err != nil {
		return err
	}
	report.RowsSkipped = plan.RowsSkipped

	if len(plan.Warehouses) > 0 {
		if err := gw.BulkInsertWarehouses(ctx, plan.Warehouses); err != nil {
			return err
		}
		report.WarehousesCreated = len(plan.Warehouses)
	}

	if plan.SerialCount() > 0 {
		ids, err := gw.ResolveWarehouseIDs(ctx, plan.Names, plan.Articles)
		if err != nil {
			return fmt.Errorf("failed to resolve warehouse ids: %w", err)
		}
		serials, err := plan.AttachWarehouseIDs(ids)
		if err != nil {
			return err
		}
		today := startOfDay(s.now())
		for _, sn := range serials {
			sn.DataInput = today
		}
		if err := gw.BulkInsertSerialNumbers(ctx, serials); err != nil {
			return err
		}
		report.SerialNumbersCreated = len(serials)
	}

	touched, err := gw.FetchWarehousesWithActiveSerials(ctx, plan.Names)
	if err != nil {
		return fmt.Errorf("failed to fetch warehouses for recount: %w", err)
	}
	counts := RecountStock(touched)
	if len(counts) > 0 {
		if err := gw.BulkUpdateStock(ctx, counts); err != nil {
			return err
		}
	}
	report.Stock = counts

	return nil
}

func (s *IngestService) afterCommit(ctx context.Context, report *domain.IngestReport) {
	if s.cache != nil {
		for _, entity := range []string{domain.EntityWarehouse, domain.EntitySerialNumber} {
			if err := s.cache.DeletePattern(ctx, CachePattern(entity)); err != nil {
				s.logger.WarnContext(ctx, "failed to invalidate cache",
					slog.String("entity", entity),
					slog.String("error", err.Error()))
			}
		}
	}

	if s.events == nil {
		return
	}
	if err := s.events.PublishIngestCompleted(ctx, report); err != nil {
		s.logger.WarnContext(ctx, "failed to publish ingest event", slog.String("error", err.Error()))
	}
	if len(report.Stock) > 0 {
		if err := s.events.PublishStockRecounted(ctx, report.Stock); err != nil {
			s.logger.WarnContext(ctx, "failed to publish stock event", slog.String("error", err.Error()))
		}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
