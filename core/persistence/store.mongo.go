package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/quylang88/tini-store/core/common"
)

// mongoDocRecord là hình dạng một document trong collection của gateway
type mongoDocRecord struct {
	Key    string   `bson:"_id"`    // Key đầy đủ "<namespace>/<id>"
	Prefix string   `bson:"prefix"` // Namespace, có index để ListAll nhanh
	Data   Document `bson:"data"`   // Nội dung document
}

// MongoStore là implementation của Store trên MongoDB.
// Toàn bộ documents nằm trong một collection duy nhất, key là _id.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore tạo MongoStore và đảm bảo index trên field prefix
func NewMongoStore(client *mongo.Client, dbName, collectionName string) (*MongoStore, error) {
	collection := client.Database(dbName).Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "prefix", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prefix index: %w", err)
	}

	return &MongoStore{collection: collection}, nil
}

// Get trả về document theo key
func (s *MongoStore) Get(ctx context.Context, key string) (Document, error) {
	var record mongoDocRecord
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound
		}
		return nil, common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi truy vấn document", common.StatusInternalServerError, err)
	}
	return record.Data, nil
}

// Put ghi document theo key (upsert)
func (s *MongoStore) Put(ctx context.Context, key string, doc Document) error {
	if key == "" {
		return fmt.Errorf("key rỗng: %w", common.ErrInvalidInput)
	}
	record := mongoDocRecord{
		Key:    key,
		Prefix: namespaceOf(key),
		Data:   doc,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, record, opts)
	if err != nil {
		return common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi ghi document", common.StatusInternalServerError, err)
	}
	return nil
}

// Delete xóa document theo key (không lỗi nếu không tồn tại)
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi xóa document", common.StatusInternalServerError, err)
	}
	return nil
}

// ListAll trả về tất cả documents trong một namespace.
// Prefix phải có dạng "<namespace>/" (xem hàm Prefix).
func (s *MongoStore) ListAll(ctx context.Context, prefix string) ([]Document, error) {
	namespace := namespaceOf(prefix)
	cursor, err := s.collection.Find(ctx, bson.M{"prefix": namespace})
	if err != nil {
		return nil, common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi liệt kê documents", common.StatusInternalServerError, err)
	}
	defer cursor.Close(ctx)

	var out []Document
	for cursor.Next(ctx) {
		var record mongoDocRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi decode document", common.StatusInternalServerError, err)
		}
		out = append(out, record.Data)
	}
	if err := cursor.Err(); err != nil {
		return nil, common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi cursor", common.StatusInternalServerError, err)
	}
	return out, nil
}

// Snapshot export toàn bộ store thành blob JSON.
// Các namespace được đọc song song (errgroup) rồi gộp lại.
func (s *MongoStore) Snapshot(ctx context.Context) ([]byte, error) {
	namespaces, err := s.collection.Distinct(ctx, "prefix", bson.M{})
	if err != nil {
		return nil, common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi liệt kê namespaces", common.StatusInternalServerError, err)
	}

	documents := make(map[string]Document)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, nsRaw := range namespaces {
		namespace, ok := nsRaw.(string)
		if !ok {
			continue
		}
		g.Go(func() error {
			cursor, err := s.collection.Find(gctx, bson.M{"prefix": namespace})
			if err != nil {
				return err
			}
			defer cursor.Close(gctx)

			shard := make(map[string]Document)
			for cursor.Next(gctx) {
				var record mongoDocRecord
				if err := cursor.Decode(&record); err != nil {
					return err
				}
				shard[record.Key] = record.Data
			}
			if err := cursor.Err(); err != nil {
				return err
			}

			mu.Lock()
			for key, doc := range shard {
				documents[key] = doc
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi export snapshot", common.StatusInternalServerError, err)
	}

	blob := snapshotBlob{
		Version:    snapshotVersion,
		ExportedAt: time.Now().UnixMilli(),
		Documents:  documents,
	}
	return json.Marshal(blob)
}

// Restore thay thế toàn bộ nội dung store bằng dữ liệu từ blob
func (s *MongoStore) Restore(ctx context.Context, blob []byte) error {
	var parsed snapshotBlob
	if err := json.Unmarshal(blob, &parsed); err != nil {
		return fmt.Errorf("blob backup không hợp lệ: %w", common.ErrInvalidFormat)
	}
	if parsed.Version != snapshotVersion {
		return fmt.Errorf("version backup không được hỗ trợ (%d): %w", parsed.Version, common.ErrInvalidFormat)
	}

	// Xóa sạch rồi nạp lại - restore là thao tác thay thế toàn bộ
	if _, err := s.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi xóa dữ liệu cũ khi restore", common.StatusInternalServerError, err)
	}
	if len(parsed.Documents) == 0 {
		return nil
	}

	records := make([]interface{}, 0, len(parsed.Documents))
	for key, doc := range parsed.Documents {
		records = append(records, mongoDocRecord{
			Key:    key,
			Prefix: namespaceOf(key),
			Data:   doc,
		})
	}
	if _, err := s.collection.InsertMany(ctx, records); err != nil {
		return common.WrapError(common.ErrCodeDatabaseQuery, "Lỗi nạp dữ liệu khi restore", common.StatusInternalServerError, err)
	}
	return nil
}
