package storage

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat_NaNBecomesNull(t *testing.T) {
	data, err := json.Marshal(struct {
		Quantity Float `json:"quantity"`
		Std      Float `json:"std"`
	}{
		Quantity: Float(math.NaN()),
		Std:      12.5,
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"quantity": null, "std": 12.5}`, string(data))
}

func TestFloat_InfBecomesNull(t *testing.T) {
	data, err := json.Marshal(Float(math.Inf(1)))

	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFloat_UnmarshalNull(t *testing.T) {
	var f Float
	require.NoError(t, json.Unmarshal([]byte("null"), &f))
	assert.Equal(t, Float(0), f)

	require.NoError(t, json.Unmarshal([]byte("3.14"), &f))
	assert.Equal(t, Float(3.14), f)
}

func TestFloat_Valid(t *testing.T) {
	assert.True(t, Float(0).Valid())
	assert.True(t, Float(-1.5).Valid())
	assert.False(t, Float(math.NaN()).Valid())
	assert.False(t, Float(math.Inf(-1)).Valid())
}

func TestCleanNaN_NestedDocument(t *testing.T) {
	doc := map[string]interface{}{
		"ok":  1.5,
		"bad": math.NaN(),
		"nested": map[string]interface{}{
			"inf": math.Inf(1),
		},
		"list": []interface{}{math.NaN(), "text", 2.0},
	}

	CleanNaN(doc)

	assert.Equal(t, 1.5, doc["ok"])
	assert.Nil(t, doc["bad"])
	assert.Nil(t, doc["nested"].(map[string]interface{})["inf"])

	list := doc["list"].([]interface{})
	assert.Nil(t, list[0])
	assert.Equal(t, "text", list[1])
	assert.Equal(t, 2.0, list[2])
}
