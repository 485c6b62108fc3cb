package database

import (
	"fitacademy_backend/internal/config"
	"fitacademy_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// 唯一索引冲突需要翻译成 gorm.ErrDuplicatedKey，报名并发创建依赖它
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认不迁移，除非显式传入 --migrate
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Topic{},
		&model.Subtopic{},
		&model.SyllabusSession{},
		&model.Enrollment{},
		&model.TopicProgress{},
		&model.Blog{},
		&model.Program{},
		&model.Trainer{},
		&model.GalleryItem{},
		&model.ContactMessage{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 首次启动时创建默认管理员，密码必须在上线后立即修改
	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&adminCount)
	if adminCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("fitacademy123"), bcrypt.DefaultCost)
		if err == nil {
			db.Create(&model.User{
				Name:     "Administrator",
				Email:    "admin@fitacademy.local",
				Password: string(hashed),
				Role:     model.Admin,
			})
			log.Println("Default admin account created: admin@fitacademy.local")
		}
	}

	return db, nil
}
