package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 账号
		&User{},

		// 主档
		&Material{},
		&BOMEntry{},

		// 销售与计划
		&SalesRecord{},
		&ProductionTarget{},
		&Prediction{},

		// 物料申请
		&MaterialRequest{},
		&RequestLineItem{},
		&CompletedOrder{},
		&CompletedOrderItem{},
	)
}
