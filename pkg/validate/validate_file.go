package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SahuH/Data-Analytics-Assistant/internal/dataset"
	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
	// FormatCSV - каталог с orders.csv, products.csv, order_items.csv, customers.csv.
	FormatCSV InputFormat = "csv"
)

// violationLister - валидатор, умеющий вернуть все нарушения сразу.
type violationLister interface {
	Violations(ds *domain.Dataset) []string
}

// ValidateFile - валидирует файл (JSON / JSONL) или каталог CSV и пишет результат в writer.
func ValidateFile(ctx context.Context, validator ports.DatasetValidator, filePath string, format InputFormat, ow io.Writer) (string, error) {
	resSummary := ""

	// auto: каталог -> CSV, иначе по расширению
	if format == FormatAuto {
		if info, err := os.Stat(filePath); err == nil && info.IsDir() {
			format = FormatCSV
		} else {
			switch strings.ToLower(filepath.Ext(filePath)) {
			case ".jsonl":
				format = FormatJSONL
			default:
				// по умолчанию считаем JSON
				format = FormatJSON
			}
		}
	}

	if format == FormatCSV {
		return validateCSVDir(ctx, validator, filePath, ow)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return resSummary, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return resSummary, fmt.Errorf("read file: %w", err)
		}
		ds, err := ValidateDatasetFromJSON(ctx, validator, raw)
		if err != nil {
			return "0 valid / 1 invalid", err
		}
		canonical, _ := json.Marshal(ds)
		if _, err := ow.Write(canonical); err != nil {
			return resSummary, fmt.Errorf("write json: %w", err)
		}
		if _, err := ow.Write([]byte("\n")); err != nil {
			return resSummary, fmt.Errorf("write newline: %w", err)
		}
		return "1 valid / 0 invalid", nil

	case FormatJSONL:
		result, err := ValidateJSONLStream(ctx, validator, file, ow)
		if err != nil {
			return resSummary, err
		}
		return fmt.Sprintf("%d valid / %d invalid", result.ValidLinesCount, result.InvalidLinesCount), nil

	default:
		return resSummary, fmt.Errorf("unsupported format: %s", format)
	}
}

// validateCSVDir - загружает каталог CSV и пишет в writer по строке на каждое нарушение.
func validateCSVDir(ctx context.Context, validator ports.DatasetValidator, dir string, ow io.Writer) (string, error) {
	ds, err := dataset.NewCSVSource(dir).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load csv: %w", err)
	}
	counts := ds.Counts()
	summary := fmt.Sprintf("orders=%d products=%d order_items=%d customers=%d",
		counts[domain.TableOrders], counts[domain.TableProducts],
		counts[domain.TableOrderItems], counts[domain.TableCustomers])

	verr := validator.Validate(ctx, ds)
	if verr == nil {
		return summary + ", 0 violations", nil
	}

	violations := []string{strings.TrimPrefix(verr.Error(), ErrInvalidDataset.Error()+": ")}
	if lister, ok := validator.(violationLister); ok {
		violations = lister.Violations(ds)
	}
	for _, v := range violations {
		if _, err := fmt.Fprintln(ow, v); err != nil {
			return summary, fmt.Errorf("write violation: %w", err)
		}
	}
	return fmt.Sprintf("%s, %d violations", summary, len(violations)), verr
}
