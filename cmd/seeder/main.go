package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/warehouse-ms/internal/adapters/db"
	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/services"
	"github.com/ammerola/warehouse-ms/internal/pkg/config"
	"github.com/ammerola/warehouse-ms/internal/pkg/logger"
)

// orderLine is one data row of the generated ORDER sheet
type orderLine struct {
	Name         string
	Article      string
	Supplier     string
	Manufacturer string
	Warranty     int
	Quantity     int
	SerialNumber string
	PriceInput   decimal.Decimal
}

func main() {
	var (
		suppliers     = flag.Int("suppliers", 5, "Number of suppliers to create")
		manufacturers = flag.Int("manufacturers", 5, "Number of manufacturers to create")
		products      = flag.Int("products", 20, "Number of distinct products in the order workbook")
		serials       = flag.Int("serials", 3, "Maximum serial numbers per product")
		out           = flag.String("out", "./order.xlsx", "Where to write the order workbook")
		seed          = flag.Int64("seed", 0, "Random seed, 0 picks one")
		logLevel      = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun        = flag.Bool("dry-run", false, "Write the workbook without touching the database")
	)
	flag.Parse()

	log := logger.SetupLogger(*logLevel, "text").Logger

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	supplierNames := fakeNames(*suppliers)
	manufacturerNames := fakeNames(*manufacturers)

	ctx := context.Background()

	if !*dryRun {
		cfg, err := config.Load(log)
		if err != nil {
			log.Error("failed to load configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		database, err := db.NewDatabase(ctx, db.ConfigFrom(cfg.Database), log)
		if err != nil {
			log.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.Close()

		if err := seedParties(ctx, database, supplierNames, manufacturerNames, log); err != nil {
			log.Error("failed to seed parties", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	lines := fakeOrder(*products, *serials, supplierNames, manufacturerNames)
	data, err := renderOrderWorkbook(lines)
	if err != nil {
		log.Error("failed to render order workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Error("failed to write order workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("seed operation completed",
		slog.Int("suppliers", len(supplierNames)),
		slog.Int("manufacturers", len(manufacturerNames)),
		slog.Int("order_lines", len(lines)),
		slog.String("workbook", *out),
		slog.Bool("dry_run", *dryRun))
}

// seedParties creates the suppliers and manufacturers the generated order
// refers to. Existing names are kept.
func seedParties(ctx context.Context, q db.Querier, suppliers, manufacturers []string, log *slog.Logger) error {
	supplierService := services.NewSupplierService(db.NewSupplierRepository(q, log), nil, 0, log)
	for _, name := range suppliers {
		if _, err := supplierService.Create(ctx, &domain.Supplier{Contact: fakeContact(name)}); err != nil {
			var dup *domain.DuplicateEntityError
			if errors.As(err, &dup) {
				continue
			}
			return fmt.Errorf("supplier %q: %w", name, err)
		}
	}

	manufacturerService := services.NewManufacturerService(db.NewManufacturerRepository(q, log), nil, 0, log)
	for _, name := range manufacturers {
		if _, err := manufacturerService.Create(ctx, &domain.Manufacturer{Contact: fakeContact(name)}); err != nil {
			var dup *domain.DuplicateEntityError
			if errors.As(err, &dup) {
				continue
			}
			return fmt.Errorf("manufacturer %q: %w", name, err)
		}
	}
	return nil
}

func fakeNames(n int) []string {
	seen := make(map[string]struct{}, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := gofakeit.Company()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func fakeContact(name string) domain.Contact {
	return domain.Contact{
		Name:    name,
		Country: gofakeit.Country(),
		Address: gofakeit.Street(),
		Phone:   gofakeit.Phone(),
		Email:   gofakeit.Email(),
	}
}

// fakeOrder lists each product once per serial number, the way purchasing
// fills the sheet. Products without serials get a single row with the
// quantity set.
func fakeOrder(products, maxSerials int, suppliers, manufacturers []string) []orderLine {
	var lines []orderLine
	for i := 0; i < products; i++ {
		base := orderLine{
			Name:         gofakeit.ProductName(),
			Article:      gofakeit.Regex(`[A-Z]{2}-[0-9]{5}`),
			Supplier:     gofakeit.RandomString(suppliers),
			Manufacturer: gofakeit.RandomString(manufacturers),
			Warranty:     gofakeit.IntRange(0, 36),
			PriceInput:   decimal.NewFromFloat(gofakeit.Price(10, 5000)).Round(2),
		}

		count := gofakeit.IntRange(0, maxSerials)
		if count == 0 {
			base.Quantity = gofakeit.IntRange(1, 10)
			lines = append(lines, base)
			continue
		}
		for j := 0; j < count; j++ {
			line := base
			line.Quantity = 1
			line.SerialNumber = gofakeit.Regex(`SN[0-9A-F]{10}`)
			lines = append(lines, line)
		}
	}
	return lines
}

func renderOrderWorkbook(lines []orderLine) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(domain.OrderSheetName)
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range []string{
		domain.ColumnName, domain.ColumnArticle, domain.ColumnSupplier, domain.ColumnManufacturer,
		domain.ColumnWarranty, domain.ColumnQuantity, domain.ColumnSerialNumber, domain.ColumnPriceInput,
	} {
		header.AddCell().SetString(h)
	}

	for _, l := range lines {
		row := sheet.AddRow()
		row.AddCell().SetString(l.Name)
		row.AddCell().SetString(l.Article)
		row.AddCell().SetString(l.Supplier)
		row.AddCell().SetString(l.Manufacturer)
		row.AddCell().SetInt(l.Warranty)
		row.AddCell().SetInt(l.Quantity)
		row.AddCell().SetString(l.SerialNumber)
		price, _ := l.PriceInput.Float64()
		row.AddCell().SetFloat(price)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
