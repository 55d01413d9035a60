package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

func TestValidateJSONLStream_Mixed(t *testing.T) {
	ctx := context.Background()
	validator := NewDatasetValidator()

	line1 := oneLineJSON(minimalDatasetJSON("ORD-1", "completed"))
	line2 := oneLineJSON(minimalDatasetJSON("ORD-2", "lost")) // invalid status
	line3 := ""                                                // пустая строка - ок
	line4 := oneLineJSON(minimalDatasetJSON("ORD-3", "pending"))

	input := strings.Join([]string{line1, line2, line3, line4}, "\n")
	var out bytes.Buffer

	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 1 {
		t.Fatalf("unexpected counters: %+v", res)
	}

	outLines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(outLines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(outLines))
	}
	got := map[string]bool{}
	for _, line := range outLines {
		var ds domain.Dataset
		if err := json.Unmarshal([]byte(line), &ds); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		got[ds.Orders[0].OrderID] = true
	}
	if !got["ORD-1"] || !got["ORD-3"] {
		t.Fatalf("unexpected output: %v", got)
	}
}

func TestValidateJSONLStream_LargeLine(t *testing.T) {
	ctx := context.Background()
	validator := NewDatasetValidator()

	bigName := strings.Repeat("X", 200_000) // > 64KB
	raw := strings.Replace(minimalDatasetJSON("ORD-big", "completed"), `"Lamp"`, `"`+bigName+`"`, 1)

	var out bytes.Buffer
	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(oneLineJSON(raw)+"\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 1 {
		t.Fatalf("expected big line to be valid, got %+v", res)
	}
}
