package services

import (
	"strconv"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/entities"
	"refurb-tracker/pkg/category"
	"refurb-tracker/pkg/utils"
)

func deviceEntityToDTO(d *entities.Device) dto.DeviceDTO {
	result := dto.DeviceDTO{
		ID:                 d.ID,
		Category:           d.Category,
		ItemCode:           d.ItemCode,
		ProductCode:        category.ProductCode(d.Category, d.ItemCode),
		Brand:              d.Brand,
		Model:              d.Model,
		SerialNumber:       d.SerialNumber,
		IMEI:               d.IMEI,
		Condition:          d.Condition,
		Grade:              d.Grade,
		StockStatus:        d.StockStatus,
		PurchasePrice:      d.PurchasePrice,
		SalePrice:          d.SalePrice,
		PhotoPath:          d.PhotoPath,
		Notes:              d.Notes,
		InterventionsCount: d.InterventionsCount,
		LastInterventionAt: formatDateTimePtr(d.LastInterventionAt),
		CreatedAt:          formatDateTime(d.CreatedAt),
		UpdatedAt:          formatDateTime(d.UpdatedAt),
	}
	if d.OperatorID != nil {
		result.Operator = &dto.ShortOperatorDTO{ID: *d.OperatorID, FullName: utils.SafeDeref(d.OperatorName)}
	}
	if d.ClientID != nil {
		result.Client = &dto.ShortClientDTO{ID: *d.ClientID, DisplayName: utils.SafeDeref(d.ClientName)}
	}
	return result
}

func devicesToDTOs(items []entities.Device) []dto.DeviceDTO {
	result := make([]dto.DeviceDTO, 0, len(items))
	for i := range items {
		result = append(result, deviceEntityToDTO(&items[i]))
	}
	return result
}

func interventionEntityToDTO(i *entities.Intervention) dto.InterventionDTO {
	deviceCategory := utils.SafeDeref(i.DeviceCategory)
	deviceItemCode := utils.SafeDeref(i.DeviceItemCode)

	result := dto.InterventionDTO{
		ID: i.ID,
		Device: dto.ShortDeviceDTO{
			ID:       i.DeviceID,
			Category: deviceCategory,
			ItemCode: deviceItemCode,
			Brand:    utils.SafeDeref(i.DeviceBrand),
			Model:    utils.SafeDeref(i.DeviceModel),
		},
		InterventionType: i.InterventionType,
		Description:      i.Description,
		Status:           i.Status,
		Cost:             i.Cost,
		StartedAt:        formatDateTimePtr(i.StartedAt),
		CompletedAt:      formatDateTimePtr(i.CompletedAt),
		CreatedAt:        formatDateTime(i.CreatedAt),
		UpdatedAt:        formatDateTime(i.UpdatedAt),
	}
	// без представления категории нет, код не собираем
	if deviceCategory != "" || deviceItemCode != "" {
		result.Device.ProductCode = category.ProductCode(deviceCategory, deviceItemCode)
	}
	if i.OperatorID != nil {
		result.Operator = &dto.ShortOperatorDTO{ID: *i.OperatorID, FullName: utils.SafeDeref(i.OperatorName)}
	}
	return result
}

func interventionsToDTOs(items []entities.Intervention) []dto.InterventionDTO {
	result := make([]dto.InterventionDTO, 0, len(items))
	for i := range items {
		result = append(result, interventionEntityToDTO(&items[i]))
	}
	return result
}

func clientEntityToDTO(c *entities.Client) dto.ClientDTO {
	return dto.ClientDTO{
		ID:          c.ID,
		ClientType:  c.ClientType,
		DisplayName: c.DisplayName(),
		Name:        c.Name,
		Surname:     c.Surname,
		CompanyName: c.CompanyName,
		TaxCode:     c.TaxCode,
		VatNumber:   c.VatNumber,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		City:        c.City,
		Notes:       c.Notes,
		CreatedAt:   formatDateTime(c.CreatedAt),
		UpdatedAt:   formatDateTime(c.UpdatedAt),
	}
}

func operatorEntityToDTO(o *entities.Operator) dto.OperatorDTO {
	return dto.OperatorDTO{
		ID:        o.ID,
		Name:      o.Name,
		Surname:   o.Surname,
		FullName:  o.FullName(),
		Email:     o.Email,
		Phone:     o.Phone,
		Role:      o.Role,
		Active:    o.Active,
		CreatedAt: formatDateTime(o.CreatedAt),
		UpdatedAt: formatDateTime(o.UpdatedAt),
	}
}

func quoteInvoiceEntityToDTO(q *entities.QuoteInvoice) dto.QuoteInvoiceDTO {
	return dto.QuoteInvoiceDTO{
		ID:          q.ID,
		Client:      dto.ShortClientDTO{ID: q.ClientID, DisplayName: utils.SafeDeref(q.ClientName)},
		DocType:     q.DocType,
		DocNumber:   q.DocNumber,
		IssueDate:   q.IssueDate.Format(dto.DateLayout),
		DueDate:     formatDatePtr(q.DueDate),
		Status:      q.Status,
		Amount:      q.Amount,
		VatRate:     q.VatRate,
		TotalAmount: q.TotalAmount,
		Notes:       q.Notes,
		FilePath:    q.FilePath,
		CreatedAt:   formatDateTime(q.CreatedAt),
		UpdatedAt:   formatDateTime(q.UpdatedAt),
	}
}

func clientOrderEntityToDTO(o *entities.ClientOrder) dto.ClientOrderDTO {
	result := dto.ClientOrderDTO{
		ID:           o.ID,
		Client:       dto.ShortClientDTO{ID: o.ClientID, DisplayName: utils.SafeDeref(o.ClientName)},
		Description:  o.Description,
		Status:       o.Status,
		OrderDate:    o.OrderDate.Format(dto.DateLayout),
		ExpectedDate: formatDatePtr(o.ExpectedDate),
		Deposit:      o.Deposit,
		Notes:        o.Notes,
		CreatedAt:    formatDateTime(o.CreatedAt),
		UpdatedAt:    formatDateTime(o.UpdatedAt),
	}
	if o.DeviceID != nil {
		deviceCategory := utils.SafeDeref(o.DeviceCategory)
		itemCode := utils.SafeDeref(o.DeviceItemCode)
		result.Device = &dto.ShortDeviceDTO{ID: *o.DeviceID, Category: deviceCategory, ItemCode: itemCode}
		if deviceCategory != "" || itemCode != "" {
			result.Device.ProductCode = category.ProductCode(deviceCategory, itemCode)
		}
	}
	return result
}

func attachmentEntityToDTO(a *entities.Attachment) dto.AttachmentDTO {
	return dto.AttachmentDTO{
		ID:          a.ID,
		Kind:        a.Kind,
		OwnerID:     a.OwnerID,
		Bucket:      a.Bucket,
		FileName:    a.FileName,
		MimeType:    a.MimeType,
		SizeBytes:   a.SizeBytes,
		DownloadURL: "/api/files/" + a.Kind + "/" + strconv.FormatUint(a.ID, 10) + "/download",
		CreatedAt:   formatDateTime(a.CreatedAt),
	}
}

func attachmentsToDTOs(items []entities.Attachment) []dto.AttachmentDTO {
	result := make([]dto.AttachmentDTO, 0, len(items))
	for i := range items {
		result = append(result, attachmentEntityToDTO(&items[i]))
	}
	return result
}
