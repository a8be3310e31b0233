package db

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitTest points the package-level DB at an in-memory sqlite store
// with the full schema migrated. The pure-Go driver keeps tests free
// of cgo and of a running postgres; TranslateError keeps unique
// violations indistinguishable from the postgres path.
func InitTest() *gorm.DB {
	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}
	if err := Migrate(g); err != nil {
		panic(err)
	}
	DB = g
	return g
}
