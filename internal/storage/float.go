package storage

import (
	"encoding/json"
	"math"
)

// Float — числовое поле, пришедшее из Excel/Mongo. NaN и Inf в JSON не
// представимы, поэтому на проводе такие значения всегда становятся null.
// Это контракт API, а не косметика.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Valid сообщает, можно ли использовать значение в расчётах.
func (f Float) Valid() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CleanNaN рекурсивно заменяет нечисловые float-значения на nil внутри
// произвольных документов (inline-поля заказа, снапшоты в планировании).
func CleanNaN(v interface{}) interface{} {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case map[string]interface{}:
		for k, item := range val {
			val[k] = CleanNaN(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = CleanNaN(item)
		}
		return val
	default:
		return v
	}
}
