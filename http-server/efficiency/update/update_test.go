package update

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"react-golang/internal/service/efficiency"
)

type MockItemStatusSetter struct {
	mock.Mock
}

func (m *MockItemStatusSetter) SetItemStatus(ctx context.Context, summaryID primitive.ObjectID, itemID, status string) (bool, error) {
	args := m.Called(ctx, summaryID, itemID, status)
	return args.Bool(0), args.Error(1)
}

func TestUpdateItemStatus_FieldNames(t *testing.T) {
	setter := new(MockItemStatusSetter)
	summaryID := primitive.NewObjectID()

	setter.On("SetItemStatus", mock.Anything, summaryID, "item-7", "Valmis").Return(true, nil)

	handler := UpdateItemStatus(slog.Default(), setter)

	body := `{"summaryId": "` + summaryID.Hex() + `", "itemId": "item-7", "newStatus": "Valmis"}`
	req := httptest.NewRequest(http.MethodPost, "/api/efficiencyStatus", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "updated")
	setter.AssertExpectations(t)
}

func TestUpdateItemStatus_UnknownStatus(t *testing.T) {
	setter := new(MockItemStatusSetter)
	summaryID := primitive.NewObjectID()

	setter.On("SetItemStatus", mock.Anything, summaryID, "item-7", "Keskeytetty").
		Return(false, efficiency.ErrUnknownStatus)

	handler := UpdateItemStatus(slog.Default(), setter)

	body := `{"summaryId": "` + summaryID.Hex() + `", "itemId": "item-7", "newStatus": "Keskeytetty"}`
	req := httptest.NewRequest(http.MethodPost, "/api/efficiencyStatus", strings.NewReader(body))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateItemStatus_InvalidSummaryID(t *testing.T) {
	setter := new(MockItemStatusSetter)
	handler := UpdateItemStatus(slog.Default(), setter)

	req := httptest.NewRequest(http.MethodPost, "/api/efficiencyStatus",
		strings.NewReader(`{"summaryId": "xx", "itemId": "item-7", "newStatus": "Valmis"}`))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	setter.AssertNotCalled(t, "SetItemStatus")
}
