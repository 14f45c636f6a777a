package db

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"refurb-tracker/pkg/types"
)

// DefaultOrder применяется, когда клиент не передал sort[...].
var DefaultOrder = []string{"created_at DESC", "id DESC"}

// ApplyListParams добавляет к запросу фильтры, сортировку и пагинацию.
// Поля, которых нет в allowedMap, молча игнорируются.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	builder = ApplyFilters(builder, filter, allowedMap)

	ordered := false
	for _, jsonField := range sortFields(filter) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.ToLower(filter.Sort[jsonField]) == "desc" {
			sqlDir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
		ordered = true
	}
	if !ordered {
		builder = builder.OrderBy(DefaultOrder...)
	} else {
		// стабильный порядок при одинаковых значениях
		builder = builder.OrderBy("id DESC")
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	return builder
}

// ApplyFilters - только WHERE-часть, для COUNT.
func ApplyFilters(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for _, jsonField := range sortedKeys(filter.Filter) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		val := filter.Filter[jsonField]
		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: splitValues(s)})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}
	return builder
}

// sortFields - сначала поля в порядке запроса (SortOrder), затем остальные ключи Sort по алфавиту.
func sortFields(filter types.Filter) []string {
	fields := make([]string, 0, len(filter.Sort))
	seen := make(map[string]bool, len(filter.Sort))
	for _, f := range filter.SortOrder {
		if _, ok := filter.Sort[f]; ok && !seen[f] {
			fields = append(fields, f)
			seen[f] = true
		}
	}
	for _, f := range sortedKeys(filter.Sort) {
		if !seen[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// ApplySearch - регистронезависимый поиск подстроки по нескольким колонкам (OR).
func ApplySearch(builder sq.SelectBuilder, search string, columns []string) sq.SelectBuilder {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return builder
	}
	pat := "%" + escapeLike(search) + "%"
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.ILike{col: pat})
	}
	return builder.Where(or)
}

func splitValues(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
