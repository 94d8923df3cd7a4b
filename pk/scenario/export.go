package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/dialysim/dialysim/pk"
)

// CSV column headers for trace export. Absent trajectories leave their
// columns empty rather than dropping them, so downstream plotting code can
// rely on a fixed shape.
var traceColumns = []string{
	"time_minutes", "baseline", "peripheral", "no_removal", "fitted", "revised",
}

// ExportCSV writes every trajectory in the result onto the baseline grid.
func (r *Result) ExportCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(traceColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for i, t := range r.Baseline.Times {
		row := []string{
			strconv.FormatFloat(t, 'f', -1, 64),
			formatConc(r.Baseline.Central, i),
			formatConc(r.Baseline.Peripheral, i),
			formatConc(traceCentral(r.NoRemoval), i),
			formatConc(traceCentral(r.Fitted), i),
			formatConc(traceCentral(r.Revised), i),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	return nil
}

func traceCentral(tr *pk.ConcentrationTrace) []float64 {
	if tr == nil {
		return nil
	}
	return tr.Central
}

func formatConc(series []float64, i int) string {
	if i >= len(series) {
		return ""
	}
	return strconv.FormatFloat(series[i], 'f', 6, 64)
}
