// Пакет category хранит справочник категорий устройств и их сокращений,
// из которых собирается товарный код (например "SP-0042").
package category

import (
	"strings"

	"golang.org/x/text/cases"
)

// Separator разделяет сокращение категории и код позиции в товарном коде.
const Separator = "-"

type Entry struct {
	Label        string `json:"label"`
	Abbreviation string `json:"abbreviation"`
}

// Порядок записей - порядок выдачи в Search и Labels.
var entries = []Entry{
	{Label: "Smartphone", Abbreviation: "SP"},
	{Label: "Tablet", Abbreviation: "TB"},
	{Label: "Notebook", Abbreviation: "NB"},
	{Label: "Desktop", Abbreviation: "PC"},
	{Label: "All-in-One", Abbreviation: "AIO"},
	{Label: "Monitor", Abbreviation: "MON"},
	{Label: "Stampante", Abbreviation: "STA"},
	{Label: "Smartwatch", Abbreviation: "SW"},
	{Label: "Console", Abbreviation: "CON"},
	{Label: "Fotocamera", Abbreviation: "FOT"},
	{Label: "Audio", Abbreviation: "AUD"},
	{Label: "Televisore", Abbreviation: "TV"},
	{Label: "Networking", Abbreviation: "NET"},
	{Label: "Server", Abbreviation: "SRV"},
	{Label: "Componenti", Abbreviation: "CMP"},
	{Label: "Accessori", Abbreviation: "ACC"},
}

var byLabel = func() map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Label] = e.Abbreviation
	}
	return m
}()

// Abbreviation возвращает сокращение категории. Неизвестная категория
// возвращается без изменений.
func Abbreviation(label string) string {
	if abbr, ok := byLabel[label]; ok {
		return abbr
	}
	return label
}

// ProductCode склеивает сокращение категории и код позиции.
func ProductCode(label, itemCode string) string {
	return Abbreviation(label) + Separator + itemCode
}

func IsKnown(label string) bool {
	_, ok := byLabel[label]
	return ok
}

func Labels() []string {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	return labels
}

func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Search ищет query (без учета регистра) как подстроку в названии или сокращении.
// Пустой запрос возвращает весь справочник.
func Search(query string) []Entry {
	if query == "" {
		return All()
	}
	needle := fold(query)
	result := make([]Entry, 0)
	for _, e := range entries {
		if strings.Contains(fold(e.Label), needle) || strings.Contains(fold(e.Abbreviation), needle) {
			result = append(result, e)
		}
	}
	return result
}

func fold(s string) string {
	return cases.Fold().String(s)
}
