package base

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Upsert — опции сохранения через replace-one с upsert,
// общие для всех репозиториев
var Upsert = options.Replace().SetUpsert(true)

// IsNotFound проверяет является ли ошибка "документ не найден"
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
