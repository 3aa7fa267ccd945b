package database

import (
	"fmt"
	"log"

	"jaagrmind_backend/internal/config"
	"jaagrmind_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	// TranslateError maps driver duplicate-key failures to
	// gorm.ErrDuplicatedKey; the submission repository relies on this to
	// detect double submissions from the atomic insert itself.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.School{},
		&model.Student{},
		&model.Assessment{},
		&model.AssessmentQuestion{},
		&model.Submission{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Bootstrap admin account so a fresh deployment is reachable.
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count)
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		db.Create(&model.User{
			Name:     "Administrator",
			Email:    "admin@jaagrmind.local",
			Password: string(hashed),
			Role:     model.RoleAdmin,
		})
		log.Println("Seeded default admin account (change the password)")
	}

	return db, nil
}
