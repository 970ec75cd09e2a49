package initializers

import (
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectToDB() {
	dsn := os.Getenv("DB_URL")

	var err error
	// TranslateError so duplicate-key conflicts surface as
	// gorm.ErrDuplicatedKey regardless of driver.
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	logrus.Println("Connected to database.")
}
