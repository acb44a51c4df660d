package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"react-golang/internal/storage"
)

var ErrEmptyWorkbook = errors.New("workbook has no data rows")

type ImportStorage interface {
	GetItemCodes(ctx context.Context) ([]*storage.ItemCode, error)
	InsertWorkOrders(ctx context.Context, orders []*storage.WorkOrder) (int, error)
}

// Service грузит заказы из выгрузки ERP (.xlsx). Колонки с известными
// именами ложатся в типизированные поля, остальные — в Extra как есть.
type Service struct {
	log     *slog.Logger
	storage ImportStorage
}

func New(log *slog.Logger, importStorage ImportStorage) *Service {
	return &Service{log: log, storage: importStorage}
}

// Заголовки выгрузки -> типизированные поля заказа.
const (
	colItemNumber      = "Item number"
	colReferenceNumber = "Reference number"
	colSalesOrder      = "Sales order"
	colQuantity        = "Quantity"
	colShipDate        = "Ship date"
)

// ImportWorkbook читает первый лист книги и вставляет строки как заказы.
// Возвращает число вставленных заказов.
func (s *Service) ImportWorkbook(ctx context.Context, r io.Reader) (int, error) {
	const op = "service.importer.ImportWorkbook"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("%s: open workbook: %w", op, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("%s: read rows: %w", op, err)
	}
	if len(rows) < 2 {
		return 0, ErrEmptyWorkbook
	}

	header := rows[0]

	codes, err := s.itemCodeIndex(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var orders []*storage.WorkOrder
	for i, row := range rows[1:] {
		order := s.buildOrder(header, row, codes)
		if order == nil {
			s.log.Debug("skipping empty import row", slog.Int("row", i+2))
			continue
		}
		orders = append(orders, order)
	}
	if len(orders) == 0 {
		return 0, ErrEmptyWorkbook
	}

	count, err := s.storage.InsertWorkOrders(ctx, orders)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func (s *Service) itemCodeIndex(ctx context.Context) (map[string]*storage.ItemCode, error) {
	codes, err := s.storage.GetItemCodes(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*storage.ItemCode, len(codes))
	for _, code := range codes {
		index[normalizeItemNumber(code.ItemNumber)] = code
	}

	return index, nil
}

func normalizeItemNumber(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// buildOrder собирает заказ из строки выгрузки; nil — строка пустая.
func (s *Service) buildOrder(header, row []string, codes map[string]*storage.ItemCode) *storage.WorkOrder {
	order := &storage.WorkOrder{
		// Новые заказы встают в начало очереди первого отдела.
		Osasto:     1,
		Jononumero: 1,
		Extra:      map[string]interface{}{},
	}

	empty := true
	for i, name := range header {
		if i >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		empty = false

		switch strings.TrimSpace(name) {
		case colItemNumber:
			order.ItemNumber = cell
		case colReferenceNumber:
			order.ReferenceNumber = cell
		case colSalesOrder:
			order.SalesOrder = cell
		case colQuantity:
			if qty, err := parseDecimal(cell); err == nil {
				order.Quantity = storage.Float(qty)
			} else {
				order.Extra[colQuantity] = cell
			}
		case colShipDate:
			shipDate, vko := parseShipDate(cell)
			order.ShipDate = shipDate
			order.VKO = vko
		default:
			order.Extra[name] = cell
		}
	}
	if empty {
		return nil
	}

	if code, ok := codes[normalizeItemNumber(order.ItemNumber)]; ok {
		order.Category = code.Category
		order.Kategoria = code.Kategoria
		order.Standardiaika = code.Standardiaika
	}

	return order
}

// parseDecimal понимает и точку, и запятую в дробной части.
func parseDecimal(v string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
}

// parseShipDate переводит "31/12/2025" в "31.12.2025" и ISO-неделю отгрузки.
// Нераспознанная дата остаётся как есть, неделя — 0.
func parseShipDate(v string) (string, int) {
	t, err := time.Parse("02/01/2006", v)
	if err != nil {
		if t, err = time.Parse("02.01.2006", v); err != nil {
			return v, 0
		}
	}

	_, week := t.ISOWeek()

	return t.Format("02.01.2006"), week
}
