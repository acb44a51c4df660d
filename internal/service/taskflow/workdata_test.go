package taskflow

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

type MockWorkdataStorage struct {
	mock.Mock
}

func (m *MockWorkdataStorage) GetWorkOrder(ctx context.Context, id primitive.ObjectID) (*storage.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.WorkOrder), args.Error(1)
}

func (m *MockWorkdataStorage) GetWorkOrders(ctx context.Context) ([]*storage.WorkOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.WorkOrder), args.Error(1)
}

func (m *MockWorkdataStorage) GetWorkOrdersByWorker(ctx context.Context, workerName string) ([]*storage.WorkOrder, error) {
	args := m.Called(ctx, workerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.WorkOrder), args.Error(1)
}

func TestUserTasks_FiltersOtherWorkers(t *testing.T) {
	st := new(MockWorkdataStorage)
	wd := NewWorkdata(st)
	id := primitive.NewObjectID()

	order := &storage.WorkOrder{
		ID:       id,
		Quantity: 20,
		Tasks: []storage.TaskRecord{
			{TaskID: "t1", WorkerName: "Anna", Section: "Leikkaus"},
			{TaskID: "t2", WorkerName: "Bertta", Section: "Leikkaus"},
			{TaskID: "t3", WorkerName: "Anna", Section: "Pakkaus"},
		},
	}
	st.On("GetWorkOrdersByWorker", mock.Anything, "Anna").Return([]*storage.WorkOrder{order}, nil)

	rows, err := wd.UserTasks(context.Background(), "Anna")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "t1", rows[0].Task.TaskID)
	assert.Equal(t, "t3", rows[1].Task.TaskID)
	assert.Equal(t, id.Hex(), rows[0].OrderID)
}

func TestHistory_SectionOnly(t *testing.T) {
	st := new(MockWorkdataStorage)
	wd := NewWorkdata(st)
	id := primitive.NewObjectID()

	st.On("GetWorkOrder", mock.Anything, id).Return(&storage.WorkOrder{
		ID: id,
		Tasks: []storage.TaskRecord{
			{TaskID: "t1", Section: "Leikkaus"},
			{TaskID: "t2", Section: "Pakkaus"},
		},
	}, nil)

	tasks, err := wd.History(context.Background(), id, "Pakkaus")

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t2", tasks[0].TaskID)

	_, err = wd.History(context.Background(), id, "Hygienia")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWorkHours_SumsPerSection(t *testing.T) {
	st := new(MockWorkdataStorage)
	wd := NewWorkdata(st)
	id := primitive.NewObjectID()

	end := time.Now()
	order := &storage.WorkOrder{
		ID: id,
		Tasks: []storage.TaskRecord{
			{Section: "Leikkaus", TotalTime: "01:30", End: &end},
			{Section: "Leikkaus", TotalTime: "00:45", End: &end},
			{Section: "Pakkaus", TotalTime: "02:00", End: &end},
			{Section: "Pakkaus", TotalTime: "bogus", End: &end},
			{Section: "Pakkaus"}, // ещё открыта
		},
	}
	st.On("GetWorkOrders", mock.Anything).Return([]*storage.WorkOrder{order}, nil)

	rows, err := wd.WorkHours(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	bySection := map[string]string{}
	for _, row := range rows {
		bySection[row.Section] = row.TotalWorkHours
	}
	assert.Equal(t, "02:15", bySection["Leikkaus"])
	assert.Equal(t, "02:00", bySection["Pakkaus"])

	filtered, err := wd.WorkHours(context.Background(), "Pakkaus")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Pakkaus", filtered[0].Section)
}
