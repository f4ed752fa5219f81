package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/quylang88/tini-store/core/common"
)

// MemoryStore là implementation nhúng của Store, giữ toàn bộ documents
// trong bộ nhớ. Dùng làm engine embedded cho môi trường không có MongoDB
// và làm store cho tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore tạo một MemoryStore rỗng
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]Document),
	}
}

// Get trả về bản copy của document theo key
func (s *MemoryStore) Get(ctx context.Context, key string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyDocument(doc), nil
}

// Put ghi document theo key. Document được copy để caller không giữ
// tham chiếu vào dữ liệu bên trong store.
func (s *MemoryStore) Put(ctx context.Context, key string, doc Document) error {
	if key == "" {
		return fmt.Errorf("key rỗng: %w", common.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = copyDocument(doc)
	return nil
}

// Delete xóa document theo key (không lỗi nếu key không tồn tại)
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, key)
	return nil
}

// ListAll trả về copy của tất cả documents có key bắt đầu bằng prefix
func (s *MemoryStore) ListAll(ctx context.Context, prefix string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	for key, doc := range s.docs {
		if strings.HasPrefix(key, prefix) {
			out = append(out, copyDocument(doc))
		}
	}
	return out, nil
}

// Snapshot export toàn bộ store thành blob JSON
func (s *MemoryStore) Snapshot(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob := snapshotBlob{
		Version:    snapshotVersion,
		ExportedAt: time.Now().UnixMilli(),
		Documents:  make(map[string]Document, len(s.docs)),
	}
	for key, doc := range s.docs {
		blob.Documents[key] = doc
	}
	return json.Marshal(blob)
}

// Restore thay thế toàn bộ nội dung store bằng dữ liệu từ blob
func (s *MemoryStore) Restore(ctx context.Context, blob []byte) error {
	var parsed snapshotBlob
	if err := json.Unmarshal(blob, &parsed); err != nil {
		return fmt.Errorf("blob backup không hợp lệ: %w", common.ErrInvalidFormat)
	}
	if parsed.Version != snapshotVersion {
		return fmt.Errorf("version backup không được hỗ trợ (%d): %w", parsed.Version, common.ErrInvalidFormat)
	}

	next := make(map[string]Document, len(parsed.Documents))
	for key, doc := range parsed.Documents {
		next[key] = copyDocument(doc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = next
	return nil
}

// copyDocument deep-copy một document để cô lập dữ liệu trong store
// với dữ liệu của caller
func copyDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return copyDocument(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		// Scalar (string/number/bool/nil) là immutable
		return v
	}
}
