package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo держит подключение к MongoDB и отвечает за индексы
type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongo подключается к MongoDB, проверяет соединение и создаёт индексы
func NewMongo(ctx context.Context, uri, databaseName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	m := &Mongo{
		client:   client,
		database: client.Database(databaseName),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	log.Printf("✅ Connected to MongoDB: %s\n", databaseName)
	return m, nil
}

// Database возвращает базу данных
func (m *Mongo) Database() *mongo.Database {
	return m.database
}

// Close закрывает подключение
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создаёт необходимые индексы коллекций
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	log.Println("🔄 Creating MongoDB indexes...")

	unique := options.Index().SetUnique(true)

	// Студенты: уникальный telegram_id
	_, err := m.database.Collection("students").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "telegram_id", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("students index: %w", err)
	}

	// Заявки: уникальная пара студент+курс
	_, err = m.database.Collection("registrations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "course_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("registrations index: %w", err)
	}

	// Оплаты: поиск по заявке
	_, err = m.database.Collection("payment_records").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "registration_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("payment_records index: %w", err)
	}

	// Посты: выборка pending
	_, err = m.database.Collection("scheduled_posts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("scheduled_posts index: %w", err)
	}

	log.Println("✅ MongoDB indexes created")
	return nil
}
