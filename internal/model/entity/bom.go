package entity

import (
	"time"
)

// BOMEntry 产品用料清单条目。产品没有独立主档，product_name
// 来自销售历史中出现过的产品名；物料按稳定ID关联。
type BOMEntry struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	ProductName     string    `json:"product_name" gorm:"size:128;not null;uniqueIndex:uniq_bom_product_material"`
	MaterialID      string    `json:"material_id" gorm:"size:36;not null;uniqueIndex:uniq_bom_product_material"`
	QuantityPerUnit int       `json:"quantity_per_unit" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// 外键保持默认 NO ACTION：删除被引用物料时 SQLite 报
	// SQLITE_CONSTRAINT_FOREIGNKEY，驱动可翻译为 gorm.ErrForeignKeyViolated
	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (BOMEntry) TableName() string {
	return "bom_entries"
}

// BOMLine 带物料信息的BOM视图行，供列表和报表使用
type BOMLine struct {
	ID              string `json:"id"`
	ProductName     string `json:"product_name"`
	MaterialName    string `json:"material_name"`
	QuantityPerUnit int    `json:"quantity_per_unit"`
	Unit            string `json:"unit_of_measure"`
}
