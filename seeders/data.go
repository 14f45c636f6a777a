package seeders

import (
	"refurb-tracker/internal/entities"
	"refurb-tracker/pkg/utils"
)

var operatorsData = []entities.Operator{
	{Name: "Admin", Surname: "Officina", Email: "admin@refurb.local", Role: "admin", Active: true},
	{Name: "Marco", Surname: "Rossi", Email: "marco.rossi@refurb.local", Role: "technician", Active: true},
	{Name: "Giulia", Surname: "Bianchi", Email: "giulia.bianchi@refurb.local", Role: "technician", Active: true},
}

var clientsData = []entities.Client{
	{
		ClientType: entities.ClientTypePrivate,
		Name:       utils.ToPtr("Luca"),
		Surname:    utils.ToPtr("Verdi"),
		Email:      utils.ToPtr("luca.verdi@example.com"),
		Phone:      utils.ToPtr("+39 333 1234567"),
		City:       utils.ToPtr("Milano"),
	},
	{
		ClientType:  entities.ClientTypeCompany,
		CompanyName: utils.ToPtr("TechStore S.r.l."),
		VatNumber:   utils.ToPtr("IT01234567890"),
		Email:       utils.ToPtr("acquisti@techstore.example.com"),
		City:        utils.ToPtr("Torino"),
	},
}
