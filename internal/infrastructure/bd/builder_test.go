package db

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refurb-tracker/pkg/types"
)

var testMap = map[string]string{
	"id":           "id",
	"category":     "category",
	"stock_status": "stock_status",
	"created_at":   "created_at",
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func TestApplyListParams_DefaultOrderAndPagination(t *testing.T) {
	b := ApplyListParams(psql().Select("*").From("devices"), types.Filter{
		Limit: 20, Offset: 40, WithPagination: true,
	}, testMap)

	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM devices ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 40", query)
	assert.Empty(t, args)
}

func TestApplyListParams_FiltersAndSort(t *testing.T) {
	b := ApplyListParams(psql().Select("*").From("devices"), types.Filter{
		Filter: map[string]interface{}{
			"stock_status": "in_stock, reserved",
			"category":     "Smartphone",
			"unknown":      "x",
		},
		Sort:           map[string]string{"category": "desc", "password": "asc"},
		WithPagination: false,
		Limit:          50,
	}, testMap)

	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT * FROM devices WHERE category = $1 AND stock_status IN ($2,$3) ORDER BY category DESC, id DESC",
		query)
	assert.Equal(t, []interface{}{"Smartphone", "in_stock", "reserved"}, args)
}

func TestApplySearch(t *testing.T) {
	b := ApplySearch(psql().Select("id").From("devices"), "  50%_off ", []string{"brand", "model"})
	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM devices WHERE (brand ILIKE $1 OR model ILIKE $2)", query)
	assert.Equal(t, []interface{}{`%50\%\_off%`, `%50\%\_off%`}, args)

	same := ApplySearch(psql().Select("id").From("devices"), "   ", []string{"brand"})
	query, _, err = same.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM devices", query)
}

func TestApplyFilters_NoOrdering(t *testing.T) {
	b := ApplyFilters(psql().Select("COUNT(*)").From("devices"), types.Filter{
		Filter: map[string]interface{}{"id": "7"},
		Sort:   map[string]string{"id": "asc"},
	}, testMap)
	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM devices WHERE id = $1", query)
	assert.Equal(t, []interface{}{"7"}, args)
}

func TestApplyListParams_SortKeepsRequestOrder(t *testing.T) {
	filter := types.Filter{
		Sort:      map[string]string{"category": "desc", "stock_status": "asc", "created_at": "asc"},
		SortOrder: []string{"stock_status", "category"},
	}

	query, _, err := ApplyListParams(psql().Select("*").From("devices"), filter, testMap).ToSql()
	require.NoError(t, err)
	// поля без позиции в SortOrder идут после, по алфавиту
	assert.Equal(t, "SELECT * FROM devices ORDER BY stock_status ASC, category DESC, created_at ASC, id DESC", query)

	filter.SortOrder = []string{"category", "stock_status", "created_at"}
	query, _, err = ApplyListParams(psql().Select("*").From("devices"), filter, testMap).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM devices ORDER BY category DESC, stock_status ASC, created_at ASC, id DESC", query)
}

func TestApplyListParams_WhereMatchesApplyFilters(t *testing.T) {
	filter := types.Filter{Filter: map[string]interface{}{"stock_status": "in_stock,sold", "category": "Tablet"}}

	_, listArgs, err := ApplyListParams(psql().Select("*").From("devices"), filter, testMap).ToSql()
	require.NoError(t, err)
	_, countArgs, err := ApplyFilters(psql().Select("COUNT(*)").From("devices"), filter, testMap).ToSql()
	require.NoError(t, err)
	assert.Equal(t, countArgs, listArgs)
}
