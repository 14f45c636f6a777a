package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refurb-tracker/pkg/types"
)

func TestSuccessList_Pagination(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := SuccessList(c, "ok", []string{"a", "b"}, 101, types.Filter{Limit: 50, Page: 2, WithPagination: true})
	require.NoError(t, err)

	var resp Response[ListBody[string]]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, []string{"a", "b"}, resp.Body.List)
	require.NotNil(t, resp.Body.Pagination)
	assert.Equal(t, 3, resp.Body.Pagination.TotalPages)
	assert.Equal(t, uint64(101), resp.Body.Pagination.TotalCount)
}

func TestSuccessList_NilListWithoutPagination(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, SuccessList[int](c, "ok", nil, 0, types.Filter{}))
	assert.JSONEq(t, `{"status":true,"message":"ok","body":{"list":[]}}`, rec.Body.String())
}
