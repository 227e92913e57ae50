package checks

import (
	"context"

	"budget-core/core/storage"
	"budget-core/feature/transactions"
)

// ImportsReport lists the import files in the bucket and the ones that have
// never been applied.
type ImportsReport struct {
	Files   []string `json:"files"`
	Pending []string `json:"pending"`
}

// CheckImports pairs every CSV under imports/ with its report.
func CheckImports(ctx context.Context, client storage.Client, bucket string) (*ImportsReport, error) {
	files, err := storage.ListKeys(ctx, client, bucket, "imports/", ".csv")
	if err != nil {
		return nil, err
	}
	reports, err := storage.ListKeys(ctx, client, bucket, "reports/", ".json")
	if err != nil {
		return nil, err
	}

	have := make(map[string]struct{}, len(reports))
	for _, key := range reports {
		have[key] = struct{}{}
	}

	report := &ImportsReport{Files: []string{}, Pending: []string{}}
	for _, f := range files {
		report.Files = append(report.Files, f)
		if _, ok := have[transactions.ReportKey(f)]; !ok {
			report.Pending = append(report.Pending, f)
		}
	}
	return report, nil
}
