package dto

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

type ShortOperatorDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
}

type ShortClientDTO struct {
	ID          uint64 `json:"id"`
	DisplayName string `json:"display_name"`
}

type ShortDeviceDTO struct {
	ID          uint64 `json:"id"`
	Category    string `json:"category"`
	ItemCode    string `json:"item_code"`
	ProductCode string `json:"product_code"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
}
