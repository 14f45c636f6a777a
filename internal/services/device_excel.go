package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/repositories"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"
)

const deviceSheet = "Устройства"

// Колонки выгрузки; импорт принимает те же заголовки или json-имена полей.
var deviceColumns = []struct {
	header string
	field  string
}{
	{"Товарный код", "product_code"},
	{"Категория", "category"},
	{"Код", "item_code"},
	{"Бренд", "brand"},
	{"Модель", "model"},
	{"Серийный номер", "serial_number"},
	{"IMEI", "imei"},
	{"Состояние", "condition"},
	{"Грейд", "grade"},
	{"Статус склада", "stock_status"},
	{"Цена закупки", "purchase_price"},
	{"Цена продажи", "sale_price"},
	{"Клиент", "client"},
	{"Оператор", "operator"},
	{"Примечание", "notes"},
}

type DeviceExcelService struct {
	devices          DeviceServiceInterface
	deviceRepository repositories.DeviceRepositoryInterface
	validator        Validator
	logger           *zap.Logger
}

func NewDeviceExcelService(devices DeviceServiceInterface, deviceRepository repositories.DeviceRepositoryInterface, validator Validator, logger *zap.Logger) *DeviceExcelService {
	return &DeviceExcelService{devices: devices, deviceRepository: deviceRepository, validator: validator, logger: logger}
}

// Export пишет xlsx со всеми устройствами, подходящими под фильтр (без пагинации).
func (s *DeviceExcelService) Export(ctx context.Context, filter types.Filter, w io.Writer) (int, error) {
	filter.WithPagination = false
	devices, _, err := s.devices.GetDevices(ctx, filter)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", deviceSheet); err != nil {
		return 0, err
	}

	headers := make([]interface{}, 0, len(deviceColumns))
	for _, col := range deviceColumns {
		headers = append(headers, col.header)
	}
	if err := f.SetSheetRow(deviceSheet, "A1", &headers); err != nil {
		return 0, err
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastCol, _ := excelize.ColumnNumberToName(len(deviceColumns))
	_ = f.SetCellStyle(deviceSheet, "A1", lastCol+"1", style)

	for i, d := range devices {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := deviceRow(d)
		if err := f.SetSheetRow(deviceSheet, cell, &row); err != nil {
			return 0, err
		}
	}
	_ = f.SetColWidth(deviceSheet, "A", "A", 18)
	_ = f.SetColWidth(deviceSheet, "D", "F", 22)
	_ = f.SetColWidth(deviceSheet, "M", "O", 30)

	if err := f.Write(w); err != nil {
		return 0, err
	}
	return len(devices), nil
}

func deviceRow(d dto.DeviceDTO) []interface{} {
	var client, operator string
	if d.Client != nil {
		client = d.Client.DisplayName
	}
	if d.Operator != nil {
		operator = d.Operator.FullName
	}
	return []interface{}{
		d.ProductCode, d.Category, d.ItemCode, d.Brand, d.Model,
		deref(d.SerialNumber), deref(d.IMEI), d.Condition, deref(d.Grade), d.StockStatus,
		floatCell(d.PurchasePrice), floatCell(d.SalePrice), client, operator, deref(d.Notes),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// Import читает первый лист: первая строка - заголовки. Существующие
// устройства (та же категория и код) пропускаются, ошибки копятся по строкам.
func (s *DeviceExcelService) Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: не удалось открыть файл: %v", apperrors.ErrBadRequest, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: в файле нет листов", apperrors.ErrBadRequest)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: файл пуст", apperrors.ErrBadRequest)
	}

	index := headerIndex(rows[0])
	for _, required := range []string{"category", "item_code", "brand", "model"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: нет колонки %q", apperrors.ErrBadRequest, required)
		}
	}

	result := &dto.ImportResultDTO{Errors: []dto.ImportError{}}
	for i := 1; i < len(rows); i++ {
		line := i + 1
		cell := func(field string) string {
			idx, ok := index[field]
			if !ok || idx >= len(rows[i]) {
				return ""
			}
			return strings.TrimSpace(rows[i][idx])
		}
		if cell("category") == "" && cell("item_code") == "" {
			continue
		}

		payload, err := devicePayloadFromRow(cell)
		if err == nil && s.validator != nil {
			err = s.validator.Validate(&payload)
		}
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportError{Row: line, Message: err.Error()})
			continue
		}

		if _, err := s.deviceRepository.FindByCode(ctx, payload.Category, payload.ItemCode); err == nil {
			result.Skipped++
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		if _, err := s.devices.CreateDevice(ctx, payload); err != nil {
			result.Errors = append(result.Errors, dto.ImportError{Row: line, Message: err.Error()})
			continue
		}
		result.Created++
	}

	s.logger.Info("Импорт устройств завершён",
		zap.Int("created", result.Created), zap.Int("skipped", result.Skipped), zap.Int("errors", len(result.Errors)))
	return result, nil
}

func headerIndex(header []string) map[string]int {
	byHeader := make(map[string]string, len(deviceColumns)*2)
	for _, col := range deviceColumns {
		byHeader[strings.ToLower(col.header)] = col.field
		byHeader[col.field] = col.field
	}
	index := make(map[string]int)
	for i, h := range header {
		if field, ok := byHeader[strings.ToLower(strings.TrimSpace(h))]; ok {
			index[field] = i
		}
	}
	return index
}

func devicePayloadFromRow(cell func(string) string) (dto.CreateDeviceDTO, error) {
	payload := dto.CreateDeviceDTO{
		Category:     cell("category"),
		ItemCode:     cell("item_code"),
		Brand:        cell("brand"),
		Model:        cell("model"),
		SerialNumber: cell("serial_number"),
		IMEI:         cell("imei"),
		Condition:    strings.ToLower(cell("condition")),
		Grade:        strings.ToUpper(cell("grade")),
		StockStatus:  strings.ToLower(cell("stock_status")),
		Notes:        cell("notes"),
	}
	if payload.Condition == "" {
		payload.Condition = "used"
	}
	var err error
	if payload.PurchasePrice, err = parsePrice(cell("purchase_price")); err != nil {
		return payload, fmt.Errorf("цена закупки: %w", err)
	}
	if payload.SalePrice, err = parsePrice(cell("sale_price")); err != nil {
		return payload, fmt.Errorf("цена продажи: %w", err)
	}
	return payload, nil
}

// parsePrice понимает и "1234.5", и "1234,5".
func parsePrice(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
