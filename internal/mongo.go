package internal

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"redsys/config"
	"redsys/entity"
	"redsys/services"
)

const (
	collectionLog     = "payment_log"
	collectionPayment = "payment"
)

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client, nil
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(ctx context.Context, connection *mongo.Client) {
	err := connection.Disconnect(ctx)
	if err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

func (m *MongoDB) WriteLogMessage(data services.Data) error {
	connection, err := m.connect(m.ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(m.ctx, connection)
	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(m.ctx, data)
	return err
}

func (m *MongoDB) SavePaymentResult(ctx context.Context, paymentParameters *entity.PaymentParameters) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionPayment)
	_, err = collection.InsertOne(ctx, paymentParameters)
	return err
}

// GetPaymentResult returns the latest correctly signed result received for order.
func (m *MongoDB) GetPaymentResult(ctx context.Context, order string) (*entity.PaymentParameters, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionPayment)
	filter := bson.D{{"order", order}, {"signature_valid", true}}
	opt := options.FindOne().SetSort(bson.D{{"time_received", -1}})
	var result entity.PaymentParameters
	if err = collection.FindOne(ctx, filter, opt).Decode(&result); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}
