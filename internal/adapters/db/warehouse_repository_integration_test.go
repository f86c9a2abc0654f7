//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/warehouse-ms/internal/adapters/db"
	"github.com/ammerola/warehouse-ms/internal/adapters/events"
	"github.com/ammerola/warehouse-ms/internal/adapters/spreadsheet"
	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
	"github.com/ammerola/warehouse-ms/internal/core/services"
	"github.com/ammerola/warehouse-ms/test/helpers"
)

type WarehouseRepositorySuite struct {
	suite.Suite
	testDB        *helpers.TestDB
	warehouses    ports.WarehouseRepository
	serials       ports.SerialNumberRepository
	suppliers     ports.SupplierRepository
	manufacturers ports.ManufacturerRepository
	ingest        *services.IngestService
	ctx           context.Context
}

func (s *WarehouseRepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	log := helpers.TestLogger()
	s.warehouses = db.NewWarehouseRepository(s.testDB.Pool, log)
	s.serials = db.NewSerialNumberRepository(s.testDB.Pool, log)
	s.suppliers = db.NewSupplierRepository(s.testDB.Pool, log)
	s.manufacturers = db.NewManufacturerRepository(s.testDB.Pool, log)
	s.ingest = services.NewIngestService(
		spreadsheet.NewExtractor(log),
		db.NewTransactor(s.testDB.Database, log),
		nil,
		events.NoopPublisher{},
		log,
	)
	s.ctx = context.Background()
}

func (s *WarehouseRepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.Pool)
}

func (s *WarehouseRepositorySuite) seedParties() (supplier *domain.Supplier, manufacturer *domain.Manufacturer) {
	supplier = helpers.CreateTestSupplier(func(sp *domain.Supplier) { sp.Name = "Acme Trading" })
	s.Require().NoError(s.suppliers.Create(s.ctx, supplier))
	manufacturer = helpers.CreateTestManufacturer(func(m *domain.Manufacturer) { m.Name = "Netgear" })
	s.Require().NoError(s.manufacturers.Create(s.ctx, manufacturer))
	return supplier, manufacturer
}

func (s *WarehouseRepositorySuite) TestCreateAndGetOne() {
	w := helpers.CreateTestWarehouse()
	s.Require().NoError(s.warehouses.Create(s.ctx, w))
	s.NotZero(w.ID)
	s.False(w.CreatedAt.IsZero())

	got, err := s.warehouses.GetOne(s.ctx, w.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(w.Name, got.Name)
	s.Equal(w.Article, got.Article)
	s.Nil(got.DeletedAt)

	missing, err := s.warehouses.GetOne(s.ctx, w.ID+1000)
	s.NoError(err)
	s.Nil(missing)
}

func (s *WarehouseRepositorySuite) TestFindDuplicate() {
	supplier, _ := s.seedParties()

	dup, err := s.suppliers.FindDuplicate(s.ctx, &domain.Supplier{Contact: supplier.Contact})
	s.Require().NoError(err)
	s.Require().NotNil(dup)
	s.Equal(supplier.ID, dup.ID)

	other := supplier.Contact
	other.Phone = "+1 000 000"
	dup, err = s.suppliers.FindDuplicate(s.ctx, &domain.Supplier{Contact: other})
	s.NoError(err)
	s.Nil(dup)
}

func (s *WarehouseRepositorySuite) TestUpdate() {
	w := helpers.CreateTestWarehouse()
	s.Require().NoError(s.warehouses.Create(s.ctx, w))

	updated, err := s.warehouses.Update(s.ctx, w.ID, domain.Changes{"position": "A-12", "warranty": 24})
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Equal("A-12", *updated.Position)
	s.Equal(24, updated.Warranty)
	s.Equal(w.Name, updated.Name)

	s.Run("unknown_id", func() {
		got, err := s.warehouses.Update(s.ctx, w.ID+1000, domain.Changes{"warranty": 1})
		s.NoError(err)
		s.Nil(got)
	})

	s.Run("unknown_column", func() {
		_, err := s.warehouses.Update(s.ctx, w.ID, domain.Changes{"deleted_at": nil})
		var ve *domain.ValidationError
		s.ErrorAs(err, &ve)
	})
}

func (s *WarehouseRepositorySuite) TestSoftDelete() {
	w := helpers.CreateTestWarehouse()
	s.Require().NoError(s.warehouses.Create(s.ctx, w))

	deleted, err := s.warehouses.SoftDelete(s.ctx, w.ID)
	s.Require().NoError(err)
	s.True(deleted)

	got, err := s.warehouses.GetOne(s.ctx, w.ID)
	s.NoError(err)
	s.Nil(got)

	deleted, err = s.warehouses.SoftDelete(s.ctx, w.ID)
	s.NoError(err)
	s.False(deleted)

	s.Equal(1, helpers.CountRows(s.T(), s.testDB.Pool, "warehouse"))
}

func (s *WarehouseRepositorySuite) TestListFilters() {
	first := helpers.CreateTestWarehouse(func(w *domain.Warehouse) { w.Name = "Router X"; w.Article = "RX-1" })
	second := helpers.CreateTestWarehouse(func(w *domain.Warehouse) { w.Name = "Switch 100%"; w.Article = "SW-2" })
	s.Require().NoError(s.warehouses.BulkInsert(s.ctx, []*domain.Warehouse{first, second}))
	s.NotZero(first.ID)
	s.NotZero(second.ID)

	tests := []struct {
		name   string
		filter domain.ListFilter
		want   []int64
	}{
		{name: "all", filter: domain.ListFilter{}, want: []int64{first.ID, second.ID}},
		{name: "search_case_insensitive", filter: domain.ListFilter{Search: "router"}, want: []int64{first.ID}},
		{name: "search_escapes_percent", filter: domain.ListFilter{Search: "100%"}, want: []int64{second.ID}},
		{name: "need_id", filter: domain.ListFilter{IDs: []int64{second.ID}}, want: []int64{second.ID}},
		{name: "article_field", filter: domain.ListFilter{Fields: map[string]string{"article": "RX-1"}}, want: []int64{first.ID}},
		{name: "no_match", filter: domain.ListFilter{Search: "printer"}, want: []int64{}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			items, err := s.warehouses.List(s.ctx, tt.filter)
			s.Require().NoError(err)
			ids := make([]int64, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			s.Equal(tt.want, ids)
		})
	}
}

func (s *WarehouseRepositorySuite) TestListWithSerials() {
	w := helpers.CreateTestWarehouse()
	s.Require().NoError(s.warehouses.Create(s.ctx, w))

	live := helpers.CreateTestSerialNumber(w.ID)
	gone := helpers.CreateTestSerialNumber(w.ID)
	s.Require().NoError(s.serials.BulkInsert(s.ctx, []*domain.SerialNumber{live, gone}))
	_, err := s.serials.SoftDelete(s.ctx, gone.ID)
	s.Require().NoError(err)

	empty := helpers.CreateTestWarehouse()
	s.Require().NoError(s.warehouses.Create(s.ctx, empty))

	items, err := s.warehouses.ListWithSerials(s.ctx, domain.ListFilter{})
	s.Require().NoError(err)
	s.Require().Len(items, 2)

	s.Equal(w.ID, items[0].ID)
	s.Require().Len(items[0].SerialNumbers, 1)
	s.Equal(live.Name, items[0].SerialNumbers[0].Name)
	s.Equal(domain.StatusWarehouse, items[0].SerialNumbers[0].Status)
	s.True(live.PriceInput.Equal(items[0].SerialNumbers[0].PriceInput))

	s.NotNil(items[1].SerialNumbers)
	s.Empty(items[1].SerialNumbers)
}

func (s *WarehouseRepositorySuite) TestBulkUpdate() {
	w := helpers.CreateTestWarehouse()
	s.Require().NoError(s.warehouses.Create(s.ctx, w))

	err := s.warehouses.BulkUpdate(s.ctx, []domain.RowUpdate{
		domain.StockCount{WarehouseID: w.ID, Count: 7}.RowUpdate(),
	})
	s.Require().NoError(err)

	got, err := s.warehouses.GetOne(s.ctx, w.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.ProductCountInStock)
	s.Equal(7, *got.ProductCountInStock)

	err = s.warehouses.BulkUpdate(s.ctx, []domain.RowUpdate{{ID: w.ID, Changes: map[string]any{"id": 1}}})
	var bw *domain.BulkWriteError
	s.Require().ErrorAs(err, &bw)
	s.Equal(domain.EntityWarehouse, bw.Table)
}

func (s *WarehouseRepositorySuite) TestIngest_CreatesWarehousesAndSerials() {
	supplier, manufacturer := s.seedParties()

	data := helpers.BuildOrderWorkbook(s.T(), domain.OrderSheetName,
		helpers.OrderLine{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear",
			Warranty: "12", Quantity: "2", SerialNumber: "SN1", PriceInput: "100.50"},
		helpers.OrderLine{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear",
			Warranty: "12", Quantity: "2", SerialNumber: "SN2", PriceInput: "100.50"},
		helpers.OrderLine{Name: "Итого"},
	)

	report, err := s.ingest.Ingest(s.ctx, data)
	s.Require().NoError(err)
	s.Equal(3, report.RowsRead)
	s.Equal(1, report.RowsSkipped)
	s.Equal(1, report.WarehousesCreated)
	s.Equal(2, report.SerialNumbersCreated)

	items, err := s.warehouses.ListWithSerials(s.ctx, domain.ListFilter{})
	s.Require().NoError(err)
	s.Require().Len(items, 1)

	w := items[0]
	s.Equal("Router X", w.Name)
	s.Equal("RX-1", w.Article)
	s.Equal(12, w.Warranty)
	s.Equal(supplier.ID, *w.SupplierID)
	s.Equal(manufacturer.ID, *w.ManufacturerID)
	s.Require().NotNil(w.ProductCountInStock)
	s.Equal(2, *w.ProductCountInStock)

	s.Require().Len(w.SerialNumbers, 2)
	s.Equal("SN1", w.SerialNumbers[0].Name)
	s.Equal("SN2", w.SerialNumbers[1].Name)
	for _, sn := range w.SerialNumbers {
		s.Equal(domain.StatusWarehouse, sn.Status)
		s.True(decimal.RequireFromString("100.50").Equal(sn.PriceInput))
		s.Equal(w.ID, sn.WarehouseID)
	}
}

func (s *WarehouseRepositorySuite) TestIngest_IsIdempotent() {
	s.seedParties()

	data := helpers.BuildOrderWorkbook(s.T(), domain.OrderSheetName,
		helpers.OrderLine{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear", SerialNumber: "SN1"},
		helpers.OrderLine{Name: "Switch", Article: "SW-2", Supplier: "Acme Trading", Manufacturer: "Netgear"},
	)

	_, err := s.ingest.Ingest(s.ctx, data)
	s.Require().NoError(err)

	report, err := s.ingest.Ingest(s.ctx, data)
	s.Require().NoError(err)
	s.Zero(report.WarehousesCreated)
	s.Zero(report.SerialNumbersCreated)

	s.Equal(2, helpers.CountRows(s.T(), s.testDB.Pool, "warehouse"))
	s.Equal(1, helpers.CountRows(s.T(), s.testDB.Pool, "serial_number"))

	items, err := s.warehouses.List(s.ctx, domain.ListFilter{Search: "Router"})
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(1, *items[0].ProductCountInStock)
}

func (s *WarehouseRepositorySuite) TestIngest_RecountExcludesDeletedSerials() {
	s.seedParties()

	data := helpers.BuildOrderWorkbook(s.T(), domain.OrderSheetName,
		helpers.OrderLine{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear", SerialNumber: "SN1"},
		helpers.OrderLine{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear", SerialNumber: "SN2"},
	)
	_, err := s.ingest.Ingest(s.ctx, data)
	s.Require().NoError(err)

	sold, err := s.serials.List(s.ctx, domain.ListFilter{Search: "SN2"})
	s.Require().NoError(err)
	s.Require().Len(sold, 1)
	_, err = s.serials.SoftDelete(s.ctx, sold[0].ID)
	s.Require().NoError(err)

	more := helpers.BuildOrderWorkbook(s.T(), domain.OrderSheetName,
		helpers.OrderLine{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear", SerialNumber: "SN3"},
	)
	report, err := s.ingest.Ingest(s.ctx, more)
	s.Require().NoError(err)
	s.Equal(1, report.SerialNumbersCreated)
	s.Require().Len(report.Stock, 1)
	s.Equal(2, report.Stock[0].Count)
}

func (s *WarehouseRepositorySuite) TestIngest_RollsBack() {
	tests := []struct {
		name  string
		lines []helpers.OrderLine
		check func(err error)
	}{
		{
			name: "missing_supplier",
			lines: []helpers.OrderLine{
				{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear", SerialNumber: "SN1"},
				{Name: "Hub", Article: "HB-1", Manufacturer: "Netgear", SerialNumber: "SN2"},
			},
			check: func(err error) {
				var ms *domain.MissingSupplierError
				s.Require().ErrorAs(err, &ms)
				s.Equal("HB-1", ms.Article)
			},
		},
		{
			name: "missing_manufacturer",
			lines: []helpers.OrderLine{
				{Name: "Hub", Article: "HB-1", Supplier: "Acme Trading", SerialNumber: "SN2"},
			},
			check: func(err error) {
				var mm *domain.MissingManufacturerError
				s.ErrorAs(err, &mm)
			},
		},
		{
			name: "serial_insert_fails",
			lines: []helpers.OrderLine{
				{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear",
					SerialNumber: "SN1", PriceInput: "1000000000000000"},
			},
			check: func(err error) {
				var bw *domain.BulkWriteError
				s.Require().ErrorAs(err, &bw)
				s.Equal(domain.EntitySerialNumber, bw.Table)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			helpers.TruncateAllTables(s.T(), s.testDB.Pool)
			s.seedParties()

			_, err := s.ingest.Ingest(s.ctx, helpers.BuildOrderWorkbook(s.T(), domain.OrderSheetName, tt.lines...))
			s.Require().Error(err)
			s.True(domain.IsIngestError(err))
			tt.check(err)

			s.Zero(helpers.CountRows(s.T(), s.testDB.Pool, "warehouse"))
			s.Zero(helpers.CountRows(s.T(), s.testDB.Pool, "serial_number"))
		})
	}
}

func (s *WarehouseRepositorySuite) TestIngest_MissingSheet() {
	data := helpers.BuildOrderWorkbook(s.T(), "Лист1",
		helpers.OrderLine{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear"},
	)

	_, err := s.ingest.Ingest(s.ctx, data)
	var ms *domain.MissingSheetError
	s.ErrorAs(err, &ms)
}

func (s *WarehouseRepositorySuite) TestStockReport() {
	s.seedParties()
	data := helpers.BuildOrderWorkbook(s.T(), domain.OrderSheetName,
		helpers.OrderLine{Name: "Router X", Article: "RX-1", Supplier: "Acme Trading", Manufacturer: "Netgear", SerialNumber: "SN1"},
	)
	_, err := s.ingest.Ingest(s.ctx, data)
	s.Require().NoError(err)

	rows, err := db.NewStockReportReader(s.testDB.Database.SQLDB(), helpers.TestLogger()).StockReport(s.ctx, "router")
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("Acme Trading", rows[0].Supplier)
	s.Equal("Netgear", rows[0].Manufacturer)
	s.Equal(1, rows[0].ProductCountInStock)
	s.Equal(1, rows[0].LiveSerialNumbers)
}

func TestWarehouseRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(WarehouseRepositorySuite))
}
