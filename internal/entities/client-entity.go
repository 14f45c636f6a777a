package entities

import (
	"strings"

	"refurb-tracker/pkg/types"
)

const (
	ClientTypePrivate = "private"
	ClientTypeCompany = "company"
)

type Client struct {
	ID          uint64  `json:"id"`
	ClientType  string  `json:"client_type"`
	Name        *string `json:"name"`
	Surname     *string `json:"surname"`
	CompanyName *string `json:"company_name"`
	TaxCode     *string `json:"tax_code"`
	VatNumber   *string `json:"vat_number"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Notes       *string `json:"notes"`

	types.BaseEntity
}

// DisplayName - название для компаний, имя и фамилия для частных лиц.
func (c Client) DisplayName() string {
	if c.ClientType == ClientTypeCompany && c.CompanyName != nil {
		return *c.CompanyName
	}
	return joinName(deref(c.Name), deref(c.Surname))
}

func joinName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
