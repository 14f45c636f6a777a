package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbbreviation(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"known category", "Smartphone", "SP"},
		{"another known", "Stampante", "STA"},
		{"unknown returns itself", "Drone", "Drone"},
		{"empty returns empty", "", ""},
		{"lookup is case sensitive", "smartphone", "smartphone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Abbreviation(tt.label))
		})
	}
}

func TestAbbreviationIsTotal(t *testing.T) {
	for _, label := range Labels() {
		assert.NotEmpty(t, Abbreviation(label), "у категории %q должно быть сокращение", label)
	}
}

func TestProductCode(t *testing.T) {
	assert.Equal(t, "SP-0042", ProductCode("Smartphone", "0042"))
	assert.Equal(t, "NB-A1", ProductCode("Notebook", "A1"))
	assert.Equal(t, "Drone-77", ProductCode("Drone", "77"))
	assert.Equal(t, "TB-", ProductCode("Tablet", ""))
	assert.Equal(t, "-X", ProductCode("", "X"))
}

func TestSearch(t *testing.T) {
	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, Search(""), len(entries))
	})

	t.Run("matches label case-insensitively", func(t *testing.T) {
		res := Search("TAB")
		require.Len(t, res, 1)
		assert.Equal(t, "Tablet", res[0].Label)
	})

	t.Run("matches abbreviation", func(t *testing.T) {
		res := Search("aio")
		require.Len(t, res, 1)
		assert.Equal(t, "All-in-One", res[0].Label)
	})

	t.Run("keeps declared order", func(t *testing.T) {
		res := Search("s")
		require.NotEmpty(t, res)
		assert.Equal(t, "Smartphone", res[0].Label)
		for i := 1; i < len(res); i++ {
			assert.Less(t, indexOf(res[i-1].Label), indexOf(res[i].Label))
		}
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		res := Search("zzz")
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("Monitor"))
	assert.False(t, IsKnown("monitor"))
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Abbreviation = "XX"
	assert.Equal(t, "SP", Abbreviation("Smartphone"))
}

func indexOf(label string) int {
	for i, e := range entries {
		if e.Label == label {
			return i
		}
	}
	return -1
}
