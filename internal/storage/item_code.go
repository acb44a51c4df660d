package storage

// ItemCode — справочник "Koodit": по номеру изделия даёт категорию и
// стандартное время на единицу. Используется при импорте Excel.
type ItemCode struct {
	ItemNumber    string `bson:"item_number" json:"item_number"`
	Category      string `bson:"category,omitempty" json:"category,omitempty"`
	Kategoria     string `bson:"kategoria,omitempty" json:"kategoria,omitempty"`
	Standardiaika Float  `bson:"standardiaika,omitempty" json:"standardiaika,omitempty"`
}
