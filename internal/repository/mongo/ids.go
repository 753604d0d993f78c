package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// docID читает _id документа как строку. Документы, созданные
// Spring Data, хранят _id как ObjectId; он переводится в hex.
type docID string

// UnmarshalBSONValue реализует bson.ValueUnmarshaler.
func (d *docID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	if oid, ok := raw.ObjectIDOK(); ok {
		*d = docID(oid.Hex())
		return nil
	}
	if s, ok := raw.StringValueOK(); ok {
		*d = docID(s)
		return nil
	}
	return fmt.Errorf("неподдерживаемый тип _id: %s", t)
}

// idKey возвращает значение _id для фильтра. 24-символьный hex трактуется
// как ObjectId, остальные идентификаторы (UUID, id GitHub) хранятся строкой.
func idKey(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}
