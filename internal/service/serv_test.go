package service_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/linemk/grouparena/internal/catalog"
	"github.com/linemk/grouparena/internal/domain/models"
	"github.com/linemk/grouparena/internal/service"
	"github.com/linemk/grouparena/internal/storage"
	"github.com/stretchr/testify/assert"
)

// fakeSource - фиктивный источник, считает вызовы Load
type fakeSource struct {
	doc   *models.Document
	err   error
	calls int
}

var _ storage.Source = (*fakeSource)(nil)

func (f *fakeSource) Load(ctx context.Context) (*models.Document, error) {
	f.calls++
	return f.doc, f.err
}

func TestCatalogService_Init(t *testing.T) {
	src := &fakeSource{doc: &models.Document{Categories: []models.Category{
		{Name: "Party", Games: []models.RawGame{{Name: "Charades"}}},
	}}}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := service.NewCatalogService(logger, src, catalog.MinSize)

	svc.Init(context.Background())
	svc.Init(context.Background())

	assert.Equal(t, 1, src.calls, "source is read exactly once")
	assert.False(t, svc.Failed())
	assert.NoError(t, svc.LoadError())
	assert.Equal(t, catalog.MinSize, svc.Catalog().Len())
	assert.Equal(t, []string{"Party"}, svc.Catalog().Categories())
}

func TestCatalogService_InitFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("network down")}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := service.NewCatalogService(logger, src, catalog.MinSize)

	svc.Init(context.Background())
	svc.Init(context.Background())

	assert.Equal(t, 1, src.calls, "no retry after failure")
	assert.True(t, svc.Failed())
	assert.EqualError(t, svc.LoadError(), "network down")
	assert.Zero(t, svc.Catalog().Len())
	assert.Empty(t, svc.Catalog().Games())
}

func TestCatalogService_BeforeInit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := service.NewCatalogService(logger, &fakeSource{}, catalog.MinSize)

	assert.NotNil(t, svc.Catalog())
	assert.Zero(t, svc.Catalog().Len())
}
