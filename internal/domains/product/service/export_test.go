package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/product/model"
)

func TestExportExcel(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var existing []*model.Product
	for i := 0; i < 150; i++ {
		p := product(fmt.Sprintf("Item %03d", i), fmt.Sprintf("item-%03d", i), "10.00", 0)
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		existing = append(existing, p)
	}
	existing[149].DiscountPercent = 25

	repo := newFakeRepo(existing...)
	svc, _ := newService(t, repo)

	f, err := svc.ExportExcel(context.Background(), model.ListProductsRequest{})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 151)

	assert.Equal(t, exportHeaders, rows[0])

	// newest first
	newest := rows[1]
	assert.Equal(t, "Item 149", newest[1])
	assert.Equal(t, "item-149", newest[2])
	assert.Equal(t, "10", newest[4])
	assert.Equal(t, "25", newest[5])
	assert.Equal(t, "7.5", newest[6])
	assert.Equal(t, "pcs", newest[7])
	assert.Equal(t, "2024-05-01 14:29:00", newest[11])
}

func TestExportExcel_AppliesFilters(t *testing.T) {
	popular := product("Popular", "popular", "1.00", 0)
	popular.IsPopular = true
	repo := newFakeRepo(popular, product("Plain", "plain", "1.00", 0))
	svc, _ := newService(t, repo)

	f, err := svc.ExportExcel(context.Background(), model.ListProductsRequest{PopularOnly: true, Page: 3, Limit: 1})
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, repo.lastFilter.PopularOnly)
	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Popular", rows[1][1])
}
