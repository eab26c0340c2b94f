package catalog

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/catalog"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/infrastructure/csvimport"
	"github.com/shopstream/backend/internal/infrastructure/telemetry"
)

// maxImportErrors caps how many row errors an import report carries
const maxImportErrors = 100

// ImportResult reports the outcome of a bulk product import
type ImportResult struct {
	TotalRows int                  `json:"totalRows"`
	Imported  int                  `json:"imported"`
	Errors    []csvimport.RowError `json:"errors,omitempty"`
}

func productImportRules() []csvimport.Rule {
	return []csvimport.Rule{
		csvimport.Column("name").Required().MaxLength(200).Unique().Build(),
		csvimport.Column("price").Required().Decimal().Min(decimal.Zero).Build(),
		csvimport.Column("description").Build(),
		csvimport.Column("categories").Build(),
		csvimport.Column("image_file").MaxLength(500).Build(),
	}
}

// ImportProducts bulk-creates products from a CSV file with columns
// name, price and optionally description, categories (semicolon
// separated) and image_file. The file is validated in full first; any
// row error rejects the whole file and nothing is written. Each created
// product is announced like a single create.
func (s *ProductService) ImportProducts(ctx context.Context, file io.Reader) (*ImportResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "import_products")
	defer span.End()

	reader, err := csvimport.NewReader(file)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError("INVALID_IMPORT_FILE", err.Error())
	}
	if missing := reader.MissingColumns("name", "price"); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_IMPORT_FILE",
			"Missing required columns: "+strings.Join(missing, ", "))
	}

	rows, result, err := s.validateImportRows(reader)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(result.Errors) > 0 {
		return result, nil
	}

	for _, row := range rows {
		product, err := productFromRow(row)
		if err != nil {
			result.Errors = append(result.Errors, csvimport.RowError{
				Line: row.Line, Code: "INVALID_PRODUCT", Message: err.Error(),
			})
			continue
		}
		if err := s.repo.Save(ctx, product); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		s.announce(ctx, product)
		result.Imported++
	}

	s.logger.Info("product import finished",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("rejected", len(result.Errors)),
	)
	return result, nil
}

func (s *ProductService) validateImportRows(reader *csvimport.Reader) ([]*csvimport.Row, *ImportResult, error) {
	validator := csvimport.NewValidator(productImportRules(), maxImportErrors)
	result := &ImportResult{}

	var rows []*csvimport.Row
	for {
		row, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, shared.NewDomainError("INVALID_IMPORT_FILE", err.Error())
		}
		if row.IsEmpty() {
			continue
		}
		result.TotalRows++
		if validator.ValidateRow(row) {
			rows = append(rows, row)
		}
	}

	result.Errors = validator.Errors()
	return rows, result, nil
}

func productFromRow(row *csvimport.Row) (*catalog.Product, error) {
	price, err := decimal.NewFromString(row.Get("price"))
	if err != nil {
		return nil, err
	}

	var categories []string
	for _, c := range strings.Split(row.Get("categories"), ";") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}

	return catalog.NewProduct(row.Get("name"), categories, row.Get("description"), row.Get("image_file"), price)
}
