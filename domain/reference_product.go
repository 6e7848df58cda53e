package domain

// CREATE TABLE public.segmented_products (
//     id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_name      TEXT NOT NULL,
//     brand             TEXT,
//     default_category  TEXT NOT NULL,
//     price_clean       NUMERIC,
//     average_rating    NUMERIC,
//     total_reviews     BIGINT,
//     repurchase_count  BIGINT,
//     beauty_points     BIGINT,
//     cluster           INT NOT NULL
// );

// ReferenceProduct is one row of the pre-segmented product table used for
// dashboard display. It is read-only and never consulted during inference.
type ReferenceProduct struct {
	ID              uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName     string  `gorm:"column:product_name;type:text" json:"product_name"`
	Brand           string  `gorm:"column:brand;type:text" json:"brand"`
	DefaultCategory string  `gorm:"column:default_category;type:text" json:"default_category"`
	PriceClean      float64 `gorm:"column:price_clean;type:numeric" json:"price_clean"`
	AverageRating   float64 `gorm:"column:average_rating;type:numeric" json:"average_rating"`
	TotalReviews    int64   `gorm:"column:total_reviews" json:"total_reviews"`
	RepurchaseCount int64   `gorm:"column:repurchase_count" json:"repurchase_count"`
	BeautyPoints    int64   `gorm:"column:beauty_points" json:"beauty_points"`
	Cluster         int     `gorm:"column:cluster" json:"cluster"`
}

func (ReferenceProduct) TableName() string {
	return "segmented_products"
}

// SegmentSummary aggregates the reference table per cluster.
type SegmentSummary struct {
	ClusterAssignment
	ProductCount  int     `json:"product_count"`
	AvgPrice      float64 `json:"avg_price"`
	AvgRating     float64 `json:"avg_rating"`
	AvgRepurchase float64 `json:"avg_repurchase"`
}
