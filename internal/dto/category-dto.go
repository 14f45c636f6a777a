package dto

type CategoryDTO struct {
	Label        string `json:"label"`
	Abbreviation string `json:"abbreviation"`
}

type ProductCodeDTO struct {
	Category     string `json:"category"`
	ItemCode     string `json:"item_code"`
	Abbreviation string `json:"abbreviation"`
	ProductCode  string `json:"product_code"`
	Known        bool   `json:"known"`
}
