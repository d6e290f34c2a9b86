package metasearch

import (
	"context"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/image"
	"github.com/kailas-cloud/metasearch/internal/domain/search/outcome"
	healthuc "github.com/kailas-cloud/metasearch/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, queries []string, c category.Category, limit *int) outcome.Response
}

func (m *mockSearchUC) Search(
	ctx context.Context, queries []string, c category.Category, limit *int,
) outcome.Response {
	return m.searchFn(ctx, queries, c, limit)
}

// --- imageUseCase mock ---

type mockImageUC struct {
	searchFn func(ctx context.Context, keywords []string, limit int) image.Response
}

func (m *mockImageUC) Search(ctx context.Context, keywords []string, limit int) image.Response {
	return m.searchFn(ctx, keywords, limit)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
