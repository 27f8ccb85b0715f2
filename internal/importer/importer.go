package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"harvest-direct/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
// Expected headers: name, description, category, unit, price_cents,
// stock_quantity, featured. Unknown columns are ignored.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		product, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if product == nil {
			continue
		}

		if _, err := i.productRepo.Upsert(ctx, *product); err != nil {
			return imported, fmt.Errorf("upsert %q: %w", product.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	name := field(record, index, "name")
	if name == "" {
		return nil, nil // blank/padding row
	}
	category := field(record, index, "category")
	if category == "" {
		return nil, fmt.Errorf("missing category for product %q", name)
	}

	price, err := parseInt64(field(record, index, "price_cents"))
	if err != nil || price < 0 {
		return nil, fmt.Errorf("invalid price_cents for product %q", name)
	}
	stock, err := parseInt64(field(record, index, "stock_quantity"))
	if err != nil || stock < 0 {
		return nil, fmt.Errorf("invalid stock_quantity for product %q", name)
	}

	return &domain.Product{
		Name:          name,
		Description:   field(record, index, "description"),
		Category:      category,
		Unit:          field(record, index, "unit"),
		PriceCents:    price,
		StockQuantity: int(stock),
		Featured:      strings.EqualFold(field(record, index, "featured"), "true"),
	}, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseInt64(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
