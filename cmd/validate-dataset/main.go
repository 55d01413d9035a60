package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SahuH/Data-Analytics-Assistant/internal/dataset"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/validate"
)

// CLI-приложение для проверки набора данных.
//
//	validate-dataset -dir ./data                 каталог с четырьмя CSV
//	validate-dataset -in batch.jsonl             пачки в формате Kafka-инжеста
//	validate-dataset -export ./data -seed 42     выгрузить синтетический набор в CSV
func main() {
	dir := flag.String("dir", "", "directory with orders.csv, products.csv, order_items.csv, customers.csv")
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty and -dir is empty, reads jsonl from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl|csv")
	exportDir := flag.String("export", "", "write a generated sample dataset as CSV into this directory and exit")
	seed := flag.Uint64("seed", dataset.DefaultSampleConfig().Seed, "sample generator seed (with -export)")
	flag.Parse()

	ctx := context.Background()

	if *exportDir != "" {
		cfg := dataset.DefaultSampleConfig()
		cfg.Seed = *seed
		if err := dataset.WriteCSV(*exportDir, dataset.Generate(cfg)); err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "sample dataset written to %s\n", *exportDir)
		return
	}

	format := validate.InputFormat(*formatStr)
	path := *inputPath
	switch {
	case *dir != "":
		path, format = *dir, validate.FormatCSV
	case path == "":
		// stdin вариант: считаем, что jsonl
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	if format == validate.FormatAuto {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			format = validate.FormatCSV
		}
	}

	// Полный набор проверяется целиком, пачки - только по ссылкам внутри себя.
	validator := validate.NewBatchValidator()
	if format == validate.FormatCSV {
		validator = validate.NewDatasetValidator()
	}

	summary, err := validate.ValidateFile(ctx, validator, path, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
