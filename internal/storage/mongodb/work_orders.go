package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"react-golang/internal/storage"
)

func (s *Storage) GetWorkOrders(ctx context.Context) ([]*storage.WorkOrder, error) {
	const op = "storage.mongodb.GetWorkOrders"

	return s.findWorkOrders(ctx, op, bson.M{})
}

func (s *Storage) GetWorkOrdersByOsasto(ctx context.Context, osasto int) ([]*storage.WorkOrder, error) {
	const op = "storage.mongodb.GetWorkOrdersByOsasto"

	return s.findWorkOrders(ctx, op, bson.M{"osasto": osasto})
}

func (s *Storage) GetWorkOrdersByOsastot(ctx context.Context, osastot []int) ([]*storage.WorkOrder, error) {
	const op = "storage.mongodb.GetWorkOrdersByOsastot"

	return s.findWorkOrders(ctx, op, bson.M{"osasto": bson.M{"$in": osastot}})
}

func (s *Storage) GetWorkOrdersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*storage.WorkOrder, error) {
	const op = "storage.mongodb.GetWorkOrdersByIDs"

	return s.findWorkOrders(ctx, op, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *Storage) GetWorkOrdersByWorker(ctx context.Context, workerName string) ([]*storage.WorkOrder, error) {
	const op = "storage.mongodb.GetWorkOrdersByWorker"

	return s.findWorkOrders(ctx, op, bson.M{"tasks.worker_name": workerName})
}

func (s *Storage) findWorkOrders(ctx context.Context, op string, filter bson.M) ([]*storage.WorkOrder, error) {
	cur, err := s.orders.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var orders []*storage.WorkOrder
	for cur.Next(ctx) {
		var order storage.WorkOrder
		if err := cur.Decode(&order); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		// Импортированные колонки могут содержать NaN — чистим до отдачи наружу.
		storage.CleanNaN(order.Extra)
		orders = append(orders, &order)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return orders, nil
}

func (s *Storage) GetWorkOrder(ctx context.Context, id primitive.ObjectID) (*storage.WorkOrder, error) {
	const op = "storage.mongodb.GetWorkOrder"

	var order storage.WorkOrder
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	storage.CleanNaN(order.Extra)

	return &order, nil
}

func (s *Storage) InsertWorkOrders(ctx context.Context, orders []*storage.WorkOrder) (int, error) {
	const op = "storage.mongodb.InsertWorkOrders"

	docs := make([]interface{}, 0, len(orders))
	for _, o := range orders {
		docs = append(docs, o)
	}

	res, err := s.orders.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return len(res.InsertedIDs), nil
}

// DuplicateWorkOrder копирует документ как есть (включая inline-поля)
// и вставляет под новым _id.
func (s *Storage) DuplicateWorkOrder(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	const op = "storage.mongodb.DuplicateWorkOrder"

	var doc bson.M
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, storage.ErrNotFound
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, err)
	}

	delete(doc, "_id")

	res, err := s.orders.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: insert copy: %w", op, err)
	}

	newID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}

	return newID, nil
}

func (s *Storage) DeleteWorkOrder(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage.mongodb.DeleteWorkOrder"

	res, err := s.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// EmptyWorkOrder чистит историю задач и посекционные статусы,
// сам заказ остаётся.
func (s *Storage) EmptyWorkOrder(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage.mongodb.EmptyWorkOrder"

	update := bson.M{
		"$set": bson.M{"tasks": bson.A{}},
		"$unset": bson.M{
			"sections":       "",
			"total_made":     "",
			"kpl_std":        "",
			"kpl_std_target": "",
		},
	}

	res, err := s.orders.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Storage) UpdateRouting(ctx context.Context, id primitive.ObjectID, osasto, jononumero, quantity int) error {
	const op = "storage.mongodb.UpdateRouting"

	update := bson.M{"$set": bson.M{
		"osasto":     osasto,
		"jononumero": jononumero,
		"quantity":   quantity,
	}}

	res, err := s.orders.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// AppendTasks добавляет записи стартовавшей группы и переводит секцию
// в "Aloitettu" одним обновлением.
func (s *Storage) AppendTasks(ctx context.Context, id primitive.ObjectID, section, status string, tasks []storage.TaskRecord) error {
	const op = "storage.mongodb.AppendTasks"

	update := bson.M{
		"$push": bson.M{"tasks": bson.M{"$each": tasks}},
		"$set":  bson.M{"sections." + section + ".status": status},
	}

	res, err := s.orders.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// CloseGroupTasks записывает закрытый список задач и пересчитанные секции.
// Фильтр требует, чтобы в группе ещё оставалась открытая запись: из двух
// гонящихся закрытий выигрывает первое, второе получает ErrNoOpenTasks.
func (s *Storage) CloseGroupTasks(ctx context.Context, id primitive.ObjectID, groupID string, tasks []storage.TaskRecord, sections map[string]storage.SectionProgress) error {
	const op = "storage.mongodb.CloseGroupTasks"

	filter := bson.M{
		"_id": id,
		"tasks": bson.M{"$elemMatch": bson.M{
			"group_id": groupID,
			"end_time": bson.M{"$exists": false},
		}},
	}

	set := bson.M{"tasks": tasks}
	for name, progress := range sections {
		set["sections."+name] = progress
	}

	res, err := s.orders.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNoOpenTasks
	}

	return nil
}

func (s *Storage) ReplaceTasks(ctx context.Context, id primitive.ObjectID, tasks []storage.TaskRecord) error {
	const op = "storage.mongodb.ReplaceTasks"

	res, err := s.orders.UpdateByID(ctx, id, bson.M{"$set": bson.M{"tasks": tasks}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Storage) SetSectionProgress(ctx context.Context, id primitive.ObjectID, section string, progress storage.SectionProgress) error {
	const op = "storage.mongodb.SetSectionProgress"

	res, err := s.orders.UpdateByID(ctx, id, bson.M{"$set": bson.M{"sections." + section: progress}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Storage) SetTotalMade(ctx context.Context, id primitive.ObjectID, totalMade storage.Float) error {
	const op = "storage.mongodb.SetTotalMade"

	res, err := s.orders.UpdateByID(ctx, id, bson.M{"$set": bson.M{"total_made": totalMade}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// SetStdHours пишет на заказ производные часы по стандартному времени.
// nil означает "поле не пересчитывалось" и не трогается.
func (s *Storage) SetStdHours(ctx context.Context, id primitive.ObjectID, kplStd, kplStdTarget *float64) error {
	const op = "storage.mongodb.SetStdHours"

	set := bson.M{}
	if kplStd != nil {
		set["kpl_std"] = *kplStd
	}
	if kplStdTarget != nil {
		set["kpl_std_target"] = *kplStdTarget
	}
	if len(set) == 0 {
		return nil
	}

	res, err := s.orders.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}
