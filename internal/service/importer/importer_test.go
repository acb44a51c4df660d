package importer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"react-golang/internal/storage"
)

type MockImportStorage struct {
	mock.Mock
}

func (m *MockImportStorage) GetItemCodes(ctx context.Context) ([]*storage.ItemCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.ItemCode), args.Error(1)
}

func (m *MockImportStorage) InsertWorkOrders(ctx context.Context, orders []*storage.WorkOrder) (int, error) {
	args := m.Called(ctx, orders)
	return args.Int(0), args.Error(1)
}

func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestImportWorkbook(t *testing.T) {
	st := new(MockImportStorage)
	svc := New(slog.Default(), st)

	st.On("GetItemCodes", mock.Anything).Return([]*storage.ItemCode{
		{ItemNumber: "ABC-1", Category: "Patja", Kategoria: "Perus", Standardiaika: 0.25},
	}, nil)

	var inserted []*storage.WorkOrder
	st.On("InsertWorkOrders", mock.Anything, mock.MatchedBy(func(orders []*storage.WorkOrder) bool {
		inserted = orders
		return len(orders) == 2
	})).Return(2, nil)

	buf := workbookBytes(t, [][]interface{}{
		{"Item number", "Reference number", "Sales order", "Quantity", "Ship date", "Customer"},
		{"abc-1", "REF-9", "SO-100", "12,5", "31/12/2025", "Kokkola Oy"},
		{"XYZ-2", "", "SO-101", "3", "15.01.2026", ""},
	})

	count, err := svc.ImportWorkbook(context.Background(), buf)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, inserted, 2)

	first := inserted[0]
	assert.Equal(t, "abc-1", first.ItemNumber)
	assert.Equal(t, "REF-9", first.ReferenceNumber)
	assert.Equal(t, "SO-100", first.SalesOrder)
	assert.Equal(t, storage.Float(12.5), first.Quantity)
	assert.Equal(t, "31.12.2025", first.ShipDate)
	assert.Equal(t, 1, first.VKO) // 31.12.2025 — ISO-неделя 1 2026 года
	assert.Equal(t, 1, first.Osasto)
	assert.Equal(t, 1, first.Jononumero)

	// Справочник нашёлся без учёта регистра
	assert.Equal(t, "Patja", first.Category)
	assert.Equal(t, storage.Float(0.25), first.Standardiaika)

	// Неизвестная колонка ушла в Extra
	assert.Equal(t, "Kokkola Oy", first.Extra["Customer"])

	second := inserted[1]
	assert.Equal(t, "XYZ-2", second.ItemNumber)
	assert.Equal(t, storage.Float(3), second.Quantity)
	assert.Equal(t, 3, second.VKO)
	assert.Empty(t, second.Category)

	st.AssertExpectations(t)
}

func TestImportWorkbook_NoDataRows(t *testing.T) {
	st := new(MockImportStorage)
	svc := New(slog.Default(), st)

	buf := workbookBytes(t, [][]interface{}{
		{"Item number", "Quantity"},
	})

	_, err := svc.ImportWorkbook(context.Background(), buf)

	assert.ErrorIs(t, err, ErrEmptyWorkbook)
	st.AssertNotCalled(t, "InsertWorkOrders")
}

func TestParseShipDate(t *testing.T) {
	date, week := parseShipDate("14/03/2025")
	assert.Equal(t, "14.03.2025", date)
	assert.Equal(t, 11, week)

	date, week = parseShipDate("not-a-date")
	assert.Equal(t, "not-a-date", date)
	assert.Equal(t, 0, week)
}
