package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quylang88/tini-store/config"
	"github.com/quylang88/tini-store/core/persistence"
	"github.com/quylang88/tini-store/core/registry"
)

// Các biến toàn cục
var Validate *validator.Validate           // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client          // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration     // Cấu hình của server

// MongoDB_DocCollectionName là tên collection duy nhất chứa toàn bộ documents
// của persistence gateway (key-namespaced: products/, lots/, orders/, settings/)
const MongoDB_DocCollectionName = "ledger_documents"

// Tên persistence store mặc định trong registry
const StoreNameDefault = "default"

// RegistryStores chứa các persistence store (mặc định là MongoStore;
// tests đăng ký MemoryStore)
var RegistryStores = registry.NewRegistry[persistence.Store]()
