package store

import (
	"context"

	"video-insights-go/internal/dataset"
	"video-insights-go/internal/types"
)

// ExcelStore reads the first sheet of an exported analysis workbook.
type ExcelStore struct {
	path string
}

func NewExcelStore(path string) *ExcelStore {
	return &ExcelStore{path: path}
}

func (s *ExcelStore) FetchRecords(ctx context.Context) ([]types.RawVideoRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataset.Load(s.path)
}
