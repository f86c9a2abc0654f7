package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
	"github.com/ammerola/warehouse-ms/internal/core/services"
	"github.com/ammerola/warehouse-ms/test/helpers"
	"github.com/ammerola/warehouse-ms/test/mocks"
)

type ingestMocks struct {
	extractor *mocks.MockWorkbookExtractor
	tx        *mocks.MockTransactor
	gw        *mocks.MockIngestGateway
	cache     *mocks.MockCacheRepository
	events    *mocks.MockEventPublisher
}

func newIngestMocks(ctrl *gomock.Controller) *ingestMocks {
	return &ingestMocks{
		extractor: mocks.NewMockWorkbookExtractor(ctrl),
		tx:        mocks.NewMockTransactor(ctrl),
		gw:        mocks.NewMockIngestGateway(ctrl),
		cache:     mocks.NewMockCacheRepository(ctrl),
		events:    mocks.NewMockEventPublisher(ctrl),
	}
}

// runInTx makes the transactor call fn with the mocked gateway and return
// whatever fn returns.
func (m *ingestMocks) runInTx() {
	m.tx.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, ports.IngestGateway) error) error {
			return fn(ctx, m.gw)
		})
}

func (m *ingestMocks) knownParties() {
	m.gw.EXPECT().ListSuppliers(gomock.Any()).
		Return([]*domain.Supplier{{Base: domain.Base{ID: 1}, Contact: domain.Contact{Name: "Acme"}}}, nil)
	m.gw.EXPECT().ListManufacturers(gomock.Any()).
		Return([]*domain.Manufacturer{{Base: domain.Base{ID: 2}, Contact: domain.Contact{Name: "Netgear"}}}, nil)
}

func orderSheetRow(number int, name, article, supplier, manufacturer, sn string) domain.Row {
	return domain.Row{Number: number, Cells: map[string]string{
		domain.ColumnName:         name,
		domain.ColumnArticle:      article,
		domain.ColumnSupplier:     supplier,
		domain.ColumnManufacturer: manufacturer,
		domain.ColumnWarranty:     "12",
		domain.ColumnSerialNumber: sn,
		domain.ColumnPriceInput:   "100",
	}}
}

func routerWorkbook() domain.Workbook {
	return domain.Workbook{domain.OrderSheetName: domain.Sheet{
		orderSheetRow(2, "Router X", "RX-1", "Acme", "Netgear", "SN1"),
		orderSheetRow(3, "Router X", "RX-1", "Acme", "Netgear", "SN2"),
		{Number: 4, Cells: map[string]string{domain.ColumnName: "Итого"}},
	}}
}

func TestIngestService_Ingest_RouterScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newIngestMocks(ctrl)
	ctx := context.Background()

	m.extractor.EXPECT().Extract(gomock.Any(), []byte("xlsx")).Return(routerWorkbook(), nil)
	m.runInTx()

	gomock.InOrder(
		m.gw.EXPECT().FetchWarehousesByNamesAndArticles(gomock.Any(), []string{"Router X"}, []string{"RX-1"}).Return(nil, nil),
		m.gw.EXPECT().BulkInsertWarehouses(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ws []*domain.Warehouse) error {
				require.Len(t, ws, 1)
				assert.Equal(t, "Router X", ws[0].Name)
				assert.Equal(t, int64(1), *ws[0].SupplierID)
				assert.Equal(t, int64(2), *ws[0].ManufacturerID)
				return nil
			}),
		m.gw.EXPECT().ResolveWarehouseIDs(gomock.Any(), []string{"Router X"}, []string{"RX-1"}).
			Return(map[string]int64{"Router X": 10}, nil),
		m.gw.EXPECT().BulkInsertSerialNumbers(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, serials []*domain.SerialNumber) error {
				require.Len(t, serials, 2)
				for _, sn := range serials {
					assert.Equal(t, int64(10), sn.WarehouseID)
					assert.Equal(t, domain.StatusWarehouse, sn.Status)
					assert.False(t, sn.DataInput.IsZero())
				}
				assert.Equal(t, "SN1", serials[0].Name)
				assert.Equal(t, "SN2", serials[1].Name)
				return nil
			}),
		m.gw.EXPECT().FetchWarehousesWithActiveSerials(gomock.Any(), []string{"Router X"}).
			Return([]domain.WarehouseWithSerials{{
				Warehouse:     domain.Warehouse{Base: domain.Base{ID: 10}, Name: "Router X"},
				SerialNumbers: []domain.SerialNumber{{Name: "SN1"}, {Name: "SN2"}},
			}}, nil),
		m.gw.EXPECT().BulkUpdateStock(gomock.Any(), []domain.StockCount{{WarehouseID: 10, Name: "Router X", Count: 2}}).
			Return(nil),
	)
	m.knownParties()

	m.cache.EXPECT().DeletePattern(gomock.Any(), "wh:warehouse:*").Return(nil)
	m.cache.EXPECT().DeletePattern(gomock.Any(), "wh:serial_number:*").Return(nil)
	m.events.EXPECT().PublishIngestCompleted(gomock.Any(), gomock.Any()).Return(nil)
	m.events.EXPECT().PublishStockRecounted(gomock.Any(), []domain.StockCount{{WarehouseID: 10, Name: "Router X", Count: 2}}).Return(nil)

	svc := services.NewIngestService(m.extractor, m.tx, m.cache, m.events, helpers.TestLogger())
	report, err := svc.Ingest(ctx, []byte("xlsx"))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderSheetName, report.Sheet)
	assert.Equal(t, 3, report.RowsRead)
	assert.Equal(t, 1, report.RowsSkipped)
	assert.Equal(t, 1, report.WarehousesCreated)
	assert.Equal(t, 2, report.SerialNumbersCreated)
	assert.Len(t, report.Stock, 1)
}

func TestIngestService_Ingest_NothingNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newIngestMocks(ctrl)

	known := []domain.WarehouseWithSerials{{
		Warehouse:     domain.Warehouse{Base: domain.Base{ID: 10}, Name: "Router X", Article: "RX-1"},
		SerialNumbers: []domain.SerialNumber{{Name: "SN1"}, {Name: "SN2"}},
	}}

	m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(routerWorkbook(), nil)
	m.runInTx()
	m.gw.EXPECT().FetchWarehousesByNamesAndArticles(gomock.Any(), gomock.Any(), gomock.Any()).Return(known, nil)
	m.knownParties()
	m.gw.EXPECT().FetchWarehousesWithActiveSerials(gomock.Any(), []string{"Router X"}).Return(known, nil)
	m.gw.EXPECT().BulkUpdateStock(gomock.Any(), []domain.StockCount{{WarehouseID: 10, Name: "Router X", Count: 2}}).Return(nil)

	svc := services.NewIngestService(m.extractor, m.tx, nil, nil, helpers.TestLogger())
	report, err := svc.Ingest(context.Background(), []byte("xlsx"))
	require.NoError(t, err)
	assert.Zero(t, report.WarehousesCreated)
	assert.Zero(t, report.SerialNumbersCreated)
}

func TestIngestService_Ingest_FailsBeforeTransaction(t *testing.T) {
	tests := []struct {
		name     string
		workbook domain.Workbook
		extract  error
		check    func(t *testing.T, err error)
	}{
		{
			name:    "extract_error",
			extract: &domain.MalformedWorkbookError{Detail: "not a zip"},
			check: func(t *testing.T, err error) {
				var e *domain.MalformedWorkbookError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:     "missing_sheet",
			workbook: domain.Workbook{"Лист1": domain.Sheet{orderSheetRow(2, "Router X", "RX-1", "Acme", "Netgear", "SN1")}},
			check: func(t *testing.T, err error) {
				var e *domain.MissingSheetError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name: "bad_number",
			workbook: domain.Workbook{domain.OrderSheetName: domain.Sheet{{Number: 2, Cells: map[string]string{
				domain.ColumnArticle: "RX-1", domain.ColumnQuantity: "two",
			}}}},
			check: func(t *testing.T, err error) {
				var e *domain.MalformedWorkbookError
				assert.ErrorAs(t, err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newIngestMocks(ctrl)
			m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(tt.workbook, tt.extract)

			svc := services.NewIngestService(m.extractor, m.tx, m.cache, m.events, helpers.TestLogger())
			report, err := svc.Ingest(context.Background(), []byte("xlsx"))
			assert.Nil(t, report)
			assert.True(t, domain.IsIngestError(err))
			tt.check(t, err)
		})
	}
}

func TestIngestService_Ingest_MissingSupplierWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newIngestMocks(ctrl)

	wb := domain.Workbook{domain.OrderSheetName: domain.Sheet{
		orderSheetRow(2, "Router X", "RX-1", "Acme", "Netgear", "SN1"),
		orderSheetRow(3, "Hub", "HB-1", "", "Netgear", "SN2"),
	}}
	m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(wb, nil)
	m.runInTx()
	m.gw.EXPECT().FetchWarehousesByNamesAndArticles(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.knownParties()

	svc := services.NewIngestService(m.extractor, m.tx, m.cache, m.events, helpers.TestLogger())
	_, err := svc.Ingest(context.Background(), []byte("xlsx"))

	var e *domain.MissingSupplierError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 3, e.Row)
}

func TestIngestService_Ingest_SerialInsertFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newIngestMocks(ctrl)
	cause := &domain.BulkWriteError{Table: domain.EntitySerialNumber, Err: errors.New("numeric field overflow")}

	m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(routerWorkbook(), nil)
	m.runInTx()
	m.gw.EXPECT().FetchWarehousesByNamesAndArticles(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.knownParties()
	m.gw.EXPECT().BulkInsertWarehouses(gomock.Any(), gomock.Any()).Return(nil)
	m.gw.EXPECT().ResolveWarehouseIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]int64{"Router X": 10}, nil)
	m.gw.EXPECT().BulkInsertSerialNumbers(gomock.Any(), gomock.Any()).Return(cause)

	svc := services.NewIngestService(m.extractor, m.tx, m.cache, m.events, helpers.TestLogger())
	report, err := svc.Ingest(context.Background(), []byte("xlsx"))
	assert.Nil(t, report)
	assert.ErrorIs(t, err, cause)
}

func TestIngestService_Ingest_UnresolvedOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newIngestMocks(ctrl)

	m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(routerWorkbook(), nil)
	m.runInTx()
	m.gw.EXPECT().FetchWarehousesByNamesAndArticles(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.knownParties()
	m.gw.EXPECT().BulkInsertWarehouses(gomock.Any(), gomock.Any()).Return(nil)
	m.gw.EXPECT().ResolveWarehouseIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]int64{}, nil)

	svc := services.NewIngestService(m.extractor, m.tx, nil, nil, helpers.TestLogger())
	_, err := svc.Ingest(context.Background(), []byte("xlsx"))

	var e *domain.BulkWriteError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, domain.EntitySerialNumber, e.Table)
}

func TestIngestService_Ingest_AfterCommitFailuresAreLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newIngestMocks(ctrl)

	wb := domain.Workbook{domain.OrderSheetName: domain.Sheet{
		orderSheetRow(2, "Hub", "HB-1", "Acme", "Netgear", ""),
	}}
	m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(wb, nil)
	m.runInTx()
	m.gw.EXPECT().FetchWarehousesByNamesAndArticles(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.knownParties()
	m.gw.EXPECT().BulkInsertWarehouses(gomock.Any(), gomock.Any()).Return(nil)
	m.gw.EXPECT().FetchWarehousesWithActiveSerials(gomock.Any(), []string{"Hub"}).Return(nil, nil)

	m.cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(2)
	m.events.EXPECT().PublishIngestCompleted(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	svc := services.NewIngestService(m.extractor, m.tx, m.cache, m.events, helpers.TestLogger())
	report, err := svc.Ingest(context.Background(), []byte("xlsx"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.WarehousesCreated)
	assert.Empty(t, report.Stock)
}
