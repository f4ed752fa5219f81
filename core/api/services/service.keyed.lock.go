package services

import "sync"

// KeyedRWMutex cấp phát RWMutex theo key, dùng để serialize các thao tác
// trên cùng một cặp (product, warehouse) hoặc cùng một đơn hàng.
// Mutex được tạo lazy và giữ vĩnh viễn - số key trong một cửa hàng nhỏ
// là hữu hạn nên không cần thu hồi.
type KeyedRWMutex struct {
	locks sync.Map // key string -> *sync.RWMutex
}

// NewKeyedRWMutex tạo mới một KeyedRWMutex
func NewKeyedRWMutex() *KeyedRWMutex {
	return &KeyedRWMutex{}
}

func (k *KeyedRWMutex) get(key string) *sync.RWMutex {
	if mu, ok := k.locks.Load(key); ok {
		return mu.(*sync.RWMutex)
	}
	mu, _ := k.locks.LoadOrStore(key, &sync.RWMutex{})
	return mu.(*sync.RWMutex)
}

// Lock khóa exclusive theo key
func (k *KeyedRWMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock mở khóa exclusive theo key
func (k *KeyedRWMutex) Unlock(key string) {
	k.get(key).Unlock()
}

// RLock khóa shared (đọc) theo key
func (k *KeyedRWMutex) RLock(key string) {
	k.get(key).RLock()
}

// RUnlock mở khóa shared theo key
func (k *KeyedRWMutex) RUnlock(key string) {
	k.get(key).RUnlock()
}
