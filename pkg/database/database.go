package database

import (
	"vidtube.com/cmd/model"
	"vidtube.com/config"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init opens the MySQL connection and migrates the schema. The handle is
// returned to the caller and injected into the repositories, it is not
// kept as package state.
func Init(conf *config.Config) (*gorm.DB, error) {
	dsn := conf.Mysql.Username + ":" + conf.Mysql.Password +
		"@tcp(" + conf.Mysql.Addr + ")/" + conf.Mysql.Database +
		"?charset=" + conf.Mysql.Charset + "&parseTime=True&loc=Local"

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	hlog.Info("database schema migration completed")
	return db, nil
}

// Migrate creates or updates all tables, including the unique indexes the
// like and subscription toggles rely on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
	)
}
