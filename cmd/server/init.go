package main

import (
	"github.com/sirupsen/logrus"

	"github.com/quylang88/tini-store/config"
	"github.com/quylang88/tini-store/core/api/models"
	"github.com/quylang88/tini-store/core/database"
	"github.com/quylang88/tini-store/core/global"
	"github.com/quylang88/tini-store/core/persistence"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo validator (đăng ký custom validators: warehouse, order_type, order_status)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}

	// Áp dụng kho mặc định từ cấu hình cho các lô nhập không ghi rõ kho
	if !models.SetDefaultWarehouse(global.ServerConfig.DefaultWarehouse) {
		logrus.Fatalf("Invalid DEFAULT_WAREHOUSE: %s", global.ServerConfig.DefaultWarehouse)
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công
}

// InitStores khởi tạo persistence store trên MongoDB và đăng ký vào registry
func InitStores() {
	store, err := persistence.NewMongoStore(
		global.MongoDB_Session,
		global.ServerConfig.MongoDB_DBName,
		global.MongoDB_DocCollectionName,
	)
	if err != nil {
		logrus.Fatalf("Failed to create mongo store: %v", err)
	}

	if _, err := global.RegistryStores.Register(global.StoreNameDefault, store); err != nil {
		logrus.Fatalf("Failed to register store: %v", err)
	}
	logrus.Infof("Registered persistence store %s", global.StoreNameDefault)
}
