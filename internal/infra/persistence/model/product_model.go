package model

// ProductModel mirrors the 'products' table, which is seeded outside the service.
type ProductModel struct {
	ID       int64    `gorm:"primaryKey"`
	Type     string   `gorm:"type:varchar(50);not null;index"`
	Name     string   `gorm:"type:varchar(255);not null"`
	Price    float64  `gorm:"type:numeric(10,2);not null"`
	OldPrice *float64 `gorm:"column:oldprice;type:numeric(10,2)"`
	InStock  bool     `gorm:"column:instock;not null"`
	ImgSrc   string   `gorm:"column:imgsrc;type:varchar(512)"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
