// Package loader reads seed data from files.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"supermarket/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const productColumns = 4

// CSVLoader handles loading of the product catalog from a CSV file
type CSVLoader struct {
	path string
}

// NewCSVLoader creates a new CSV loader for the given file
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// LoadProducts loads products in file order.
// Expected CSV format: name,price,category,quantity
func (l *CSVLoader) LoadProducts() ([]entity.Product, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	return readProducts(file)
}

func readProducts(r io.Reader) ([]entity.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return nil, errors.Wrap(err, "read catalog header")
	}

	var products []entity.Product
	lineNum := 1

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, errors.WithStack(readErr)
		}
		lineNum++

		if len(record) < productColumns {
			return nil, errors.Errorf("invalid catalog format at line %d: expected %d columns, got %d", lineNum, productColumns, len(record))
		}

		product, parseErr := parseProduct(record, lineNum)
		if parseErr != nil {
			return nil, parseErr
		}

		products = append(products, product)
	}

	return products, nil
}

func parseProduct(record []string, lineNum int) (entity.Product, error) {
	name := strings.TrimSpace(record[0])
	if name == "" {
		return entity.Product{}, errors.Errorf("line %d: product name is empty", lineNum)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return entity.Product{}, errors.Wrapf(err, "line %d: price", lineNum)
	}
	if price.IsNegative() {
		return entity.Product{}, errors.Errorf("line %d: price %s is negative", lineNum, record[1])
	}

	category, ok := entity.ParseCategory(strings.TrimSpace(record[2]))
	if !ok {
		return entity.Product{}, errors.Errorf("line %d: unknown category %q", lineNum, record[2])
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return entity.Product{}, errors.Wrapf(err, "line %d: quantity", lineNum)
	}
	if quantity < 0 {
		return entity.Product{}, errors.Errorf("line %d: quantity %d is negative", lineNum, quantity)
	}

	return entity.Product{
		Name:              name,
		UnitPrice:         price,
		Category:          category,
		AvailableQuantity: quantity,
	}, nil
}
