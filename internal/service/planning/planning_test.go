package planning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"react-golang/internal/storage"
)

type MockPlanningStorage struct {
	mock.Mock
}

func (m *MockPlanningStorage) GetPlanningWeek(ctx context.Context, weekYear string) (*storage.PlanningWeek, error) {
	args := m.Called(ctx, weekYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PlanningWeek), args.Error(1)
}

func (m *MockPlanningStorage) AppendWeeklyData(ctx context.Context, weekYear string, orders []*storage.WorkOrder) error {
	args := m.Called(ctx, weekYear, orders)
	return args.Error(0)
}

func (m *MockPlanningStorage) UpdatePlanningConfig(ctx context.Context, weekYear string, ompelijat, tyopaiviaViikko *int, totalOmpeluTunnit *float64) error {
	args := m.Called(ctx, weekYear, ompelijat, tyopaiviaViikko, totalOmpeluTunnit)
	return args.Error(0)
}

func (m *MockPlanningStorage) GetWorkOrdersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*storage.WorkOrder, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.WorkOrder), args.Error(1)
}

func newTestService(st PlanningStorage) *Service {
	svc := New(st, time.UTC)
	// Среда 11-й недели 2025
	svc.now = func() time.Time {
		return time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestDefaultWeekYear(t *testing.T) {
	svc := newTestService(new(MockPlanningStorage))

	assert.Equal(t, "2025-W11", svc.DefaultWeekYear())
}

func TestWeek_DefaultsToCurrent(t *testing.T) {
	st := new(MockPlanningStorage)
	svc := newTestService(st)

	st.On("GetPlanningWeek", mock.Anything, "2025-W11").
		Return(&storage.PlanningWeek{WeekYear: "2025-W11"}, nil)

	week, err := svc.Week(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "2025-W11", week.WeekYear)
	st.AssertExpectations(t)
}

func TestAddOrders(t *testing.T) {
	st := new(MockPlanningStorage)
	svc := newTestService(st)

	id := primitive.NewObjectID()
	orders := []*storage.WorkOrder{{ID: id}}

	st.On("GetWorkOrdersByIDs", mock.Anything, []primitive.ObjectID{id}).Return(orders, nil)
	st.On("AppendWeeklyData", mock.Anything, "2025-W12", orders).Return(nil)

	added, err := svc.AddOrders(context.Background(), "2025-W12", []string{id.Hex()})

	require.NoError(t, err)
	assert.Equal(t, 1, added)
	st.AssertExpectations(t)
}

func TestAddOrders_BadID(t *testing.T) {
	st := new(MockPlanningStorage)
	svc := newTestService(st)

	_, err := svc.AddOrders(context.Background(), "2025-W12", []string{"not-hex"})

	assert.ErrorIs(t, err, ErrBadOrderID)
	st.AssertNotCalled(t, "AppendWeeklyData")
}

func TestAddOrders_NoneFound(t *testing.T) {
	st := new(MockPlanningStorage)
	svc := newTestService(st)

	id := primitive.NewObjectID()
	st.On("GetWorkOrdersByIDs", mock.Anything, mock.Anything).Return([]*storage.WorkOrder{}, nil)

	_, err := svc.AddOrders(context.Background(), "", []string{id.Hex()})

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateConfig_PassesThrough(t *testing.T) {
	st := new(MockPlanningStorage)
	svc := newTestService(st)

	ompelijat := 8
	st.On("UpdatePlanningConfig", mock.Anything, "2025-W11", &ompelijat, (*int)(nil), (*float64)(nil)).
		Return(nil)

	err := svc.UpdateConfig(context.Background(), "", &ompelijat, nil, nil)

	require.NoError(t, err)
	st.AssertExpectations(t)
}
