package services

import (
	"refurb-tracker/internal/dto"
	"refurb-tracker/pkg/category"
)

type CategoryService struct{}

func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

func (s *CategoryService) Search(query string) []dto.CategoryDTO {
	entries := category.Search(query)
	result := make([]dto.CategoryDTO, 0, len(entries))
	for _, e := range entries {
		result = append(result, dto.CategoryDTO{Label: e.Label, Abbreviation: e.Abbreviation})
	}
	return result
}

func (s *CategoryService) ProductCode(label, itemCode string) dto.ProductCodeDTO {
	return dto.ProductCodeDTO{
		Category:     label,
		ItemCode:     itemCode,
		Abbreviation: category.Abbreviation(label),
		ProductCode:  category.ProductCode(label, itemCode),
		Known:        category.IsKnown(label),
	}
}
