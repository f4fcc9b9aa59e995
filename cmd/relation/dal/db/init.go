package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/vistream/vistream/cmd/model"
	"github.com/vistream/vistream/config"
)

var DB *gorm.DB

// Init opens the relation service connection and migrates its tables.
func Init() {
	var err error
	cfg := config.ConfigInfo.Mysql
	dsn := cfg.Username + ":" + cfg.Password + "@tcp(" + cfg.Addr + ")/" + cfg.Database +
		"?charset=utf8mb4&parseTime=True&loc=Local"
	DB, err = gorm.Open(mysql.Open(dsn),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
		},
	)
	if err != nil {
		panic(err)
	}
	if err = DB.AutoMigrate(&model.Subscription{}); err != nil {
		panic(err)
	}
}
