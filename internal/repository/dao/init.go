package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Organization{},
		&Member{},
		&Membership{},
		&PointTransaction{},
		&Officer{},
		&OfficerContribution{},
		&Product{},
		&Order{},
		&OrderItem{},
		&RefreshToken{},
	)
}
