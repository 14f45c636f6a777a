package repositories

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refurb-tracker/internal/entities"
	"refurb-tracker/migrations"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"
)

var testPool *pgxpool.Pool

// TestMain подключается к тестовой БД из TEST_DATABASE_URL и применяет миграции.
// Без переменной интеграционные тесты пропускаются.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	var err error
	testPool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Не удалось подключиться к тестовой БД: %v", err)
	}

	migrator, err := migrations.NewMigrator(testPool)
	if err != nil {
		log.Fatalf("Не удалось подготовить миграции: %v", err)
	}
	if _, err := migrator.Up(context.Background()); err != nil {
		log.Fatalf("Не удалось применить миграции: %v", err)
	}
	_ = migrator.Close()

	code := m.Run()
	testPool.Close()
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL не задан")
	}
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE TABLE client_orders, intervention_files, device_files, quotes_invoices, interventions, devices, clients, operators RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "Не удалось очистить таблицы")
}

func strPtr(s string) *string { return &s }

func TestDeviceRepository_CRUDAndView(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	logger := zap.NewNop()

	operators := NewOperatorRepository(testPool, logger)
	clients := NewClientRepository(testPool, logger)
	devices := NewDeviceRepository(testPool, logger, nil)
	interventions := NewInterventionRepository(testPool, logger, nil)

	opID, err := operators.Create(ctx, nil, entities.Operator{Name: "Luca", Surname: "Verdi", Email: "luca@example.com", Role: "technician", Active: true})
	require.NoError(t, err)
	clientID, err := clients.Create(ctx, nil, entities.Client{ClientType: entities.ClientTypeCompany, CompanyName: strPtr("Rossi S.r.l.")})
	require.NoError(t, err)

	devID, err := devices.Create(ctx, nil, entities.Device{
		Category: "Smartphone", ItemCode: "0001", Brand: "Apple", Model: "iPhone 12",
		Condition: "used", StockStatus: entities.StockInStock, OperatorID: &opID, ClientID: &clientID,
	})
	require.NoError(t, err)

	_, err = interventions.Create(ctx, nil, entities.Intervention{DeviceID: devID, OperatorID: &opID, InterventionType: "diagnosis", Status: entities.InterventionPending})
	require.NoError(t, err)

	got, err := devices.Find(ctx, devID)
	require.NoError(t, err)
	assert.Equal(t, "Apple", got.Brand)
	require.NotNil(t, got.OperatorName)
	assert.Equal(t, "Luca Verdi", *got.OperatorName)
	require.NotNil(t, got.ClientName)
	assert.Equal(t, "Rossi S.r.l.", *got.ClientName)
	assert.Equal(t, int64(1), got.InterventionsCount)

	// дубликат категория+код
	_, err = devices.Create(ctx, nil, entities.Device{Category: "Smartphone", ItemCode: "0001", Brand: "X", Model: "Y", Condition: "used", StockStatus: entities.StockInStock})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// CHECK на grade
	err = devices.Update(ctx, nil, devID, map[string]interface{}{"grade": "Z"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidValue)

	require.NoError(t, devices.Update(ctx, nil, devID, map[string]interface{}{"grade": "A", "notes": nil, "unknown": 1}))

	list, total, err := devices.List(ctx, types.Filter{Search: "iphone", Limit: 10, WithPagination: true})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Grade)
	assert.Equal(t, "A", *list[0].Grade)

	// поиск по имени клиента работает только через представление
	_, total, err = devices.List(ctx, types.Filter{Search: "rossi"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	// удаление оператора обнуляет ссылку, удаление устройства каскадно удаляет вмешательства
	require.NoError(t, operators.Delete(ctx, opID))
	got, err = devices.Find(ctx, devID)
	require.NoError(t, err)
	assert.Nil(t, got.OperatorID)

	require.NoError(t, devices.Delete(ctx, devID))
	_, total, err = interventions.ListByDevice(ctx, devID, types.Filter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.ErrorIs(t, devices.Delete(ctx, devID), apperrors.ErrNotFound)
	_, err = devices.Find(ctx, devID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListRows_FallsBackToBaseTable(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	devices := NewDeviceRepository(testPool, zap.NewNop(), nil)
	_, err := devices.Create(ctx, nil, entities.Device{Category: "Tablet", ItemCode: "T1", Brand: "Samsung", Model: "Tab S7", Condition: "new", StockStatus: entities.StockInStock})
	require.NoError(t, err)

	var fallbacks []string
	reader := newViewReader(testPool, zap.NewNop(), func(view string) { fallbacks = append(fallbacks, view) })

	src := deviceSource
	src.view = "devices_view_missing"

	list, total, err := listRows(ctx, reader, src, types.Filter{Search: "samsung"}, scanDevice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].ClientName)
	assert.Zero(t, list[0].InterventionsCount)
	assert.Equal(t, []string{"devices_view_missing"}, fallbacks)
}

func TestQuoteInvoiceAndClientOrder_Cascade(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	logger := zap.NewNop()

	clients := NewClientRepository(testPool, logger)
	docs := NewQuoteInvoiceRepository(testPool, logger, nil)
	orders := NewClientOrderRepository(testPool, logger, nil)
	dashboard := NewDashboardRepository(testPool, logger)

	clientID, err := clients.Create(ctx, nil, entities.Client{ClientType: entities.ClientTypePrivate, Name: strPtr("Anna"), Surname: strPtr("Bianchi")})
	require.NoError(t, err)

	_, err = docs.Create(ctx, nil, entities.QuoteInvoice{ClientID: clientID, DocType: entities.DocTypeInvoice, DocNumber: "2026/1", Status: "sent", Amount: 100, VatRate: 22, TotalAmount: 122})
	require.NoError(t, err)
	_, err = docs.Create(ctx, nil, entities.QuoteInvoice{ClientID: clientID, DocType: entities.DocTypeInvoice, DocNumber: "2026/1", Status: "draft"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = orders.Create(ctx, nil, entities.ClientOrder{ClientID: clientID, Description: "Display iPhone 12", Status: "open"})
	require.NoError(t, err)
	_, err = orders.Create(ctx, nil, entities.ClientOrder{ClientID: 999, Description: "x", Status: "open"})
	assert.ErrorIs(t, err, apperrors.ErrInUse)

	docList, _, err := docs.List(ctx, types.Filter{Filter: map[string]interface{}{"doc_type": "invoice"}})
	require.NoError(t, err)
	require.Len(t, docList, 1)
	require.NotNil(t, docList[0].ClientName)
	assert.Equal(t, "Anna Bianchi", *docList[0].ClientName)

	stats, err := dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ClientsTotal)
	assert.Equal(t, int64(1), stats.OpenClientOrders)
	assert.InDelta(t, 122.0, stats.UnpaidInvoicesTotal, 0.001)

	require.NoError(t, clients.Delete(ctx, clientID))
	_, total, err := orders.List(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	_, total, err = docs.List(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestFileRepository(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	logger := zap.NewNop()

	devices := NewDeviceRepository(testPool, logger, nil)
	files := NewFileRepository(testPool, logger)

	devID, err := devices.Create(ctx, nil, entities.Device{Category: "Notebook", ItemCode: "N1", Brand: "Lenovo", Model: "T480", Condition: "used", StockStatus: entities.StockInStock})
	require.NoError(t, err)

	id, err := files.Create(ctx, nil, entities.Attachment{
		Kind: entities.FileKindDevice, OwnerID: devID, Bucket: "device-files",
		FileName: "scontrino.pdf", FilePath: "2026/10/19/x.pdf", MimeType: "application/pdf", SizeBytes: 10,
	})
	require.NoError(t, err)

	list, total, err := files.ListByOwner(ctx, entities.FileKindDevice, devID, types.Filter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, entities.FileKindDevice, list[0].Kind)
	assert.Equal(t, devID, list[0].OwnerID)

	_, err = files.Find(ctx, "invoice", id)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileKind)

	require.NoError(t, files.Delete(ctx, nil, entities.FileKindDevice, id))
	_, err = files.Find(ctx, entities.FileKindDevice, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
