// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/ammerola/warehouse-ms/test/helpers"
)

var (
	benchSuppliers     = []string{"Nordic Parts", "Baltic Supply", "Ural Trade"}
	benchManufacturers = []string{"Bosch", "Makita", "Hilti"}
)

// generateOrder builds an order sheet of products, each listed once per
// serial number
func generateOrder(products, serialsPerProduct int) []helpers.OrderLine {
	lines := make([]helpers.OrderLine, 0, products*serialsPerProduct)
	for p := 0; p < products; p++ {
		name := fmt.Sprintf("%s %d", gofakeit.ProductName(), p)
		article := fmt.Sprintf("AR-%05d", p)
		for s := 0; s < serialsPerProduct; s++ {
			lines = append(lines, helpers.OrderLine{
				Name:         name,
				Article:      article,
				Supplier:     benchSuppliers[p%len(benchSuppliers)],
				Manufacturer: benchManufacturers[p%len(benchManufacturers)],
				Warranty:     "12",
				Quantity:     "1",
				SerialNumber: fmt.Sprintf("SN%05d-%03d", p, s),
				PriceInput:   fmt.Sprintf("%.2f", gofakeit.Price(10, 5000)),
			})
		}
	}
	return lines
}

func partyIDs(names []string) map[string]int64 {
	ids := make(map[string]int64, len(names))
	for i, n := range names {
		ids[n] = int64(i + 1)
	}
	return ids
}
