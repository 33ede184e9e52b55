package database

import (
	"fmt"
	"log"

	"podquest_backend/internal/config"
	"podquest_backend/internal/model"

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

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedFAQ(db)

	return db, nil
}

// Migrate 执行全部模型的自动迁移，测试里也会对内存库调用它
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Podcast{},
		&model.Episode{},
		&model.Trophy{},
		&model.UserTrophyAttempt{},
		&model.EpisodeLike{},
		&model.PodcastSubscription{},
		&model.FAQ{},
	)
}

// 默认的FAQ条目
func seedFAQ(db *gorm.DB) {
	var count int64
	db.Model(&model.FAQ{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.FAQ{
		{Question: "What is a trophy?", Answer: "A trophy is a quiz task attached to an episode. Answer it correctly to earn its level points.", Order: 1},
		{Question: "Why can't I answer a question again?", Answer: "After a wrong answer the question is locked for 24 hours. Once the lockout passes you can try again.", Order: 2},
		{Question: "How is the ranking calculated?", Answer: "Users are sorted by accumulated level points. Ties share the same rank.", Order: 3},
		{Question: "Can I edit someone else's podcast?", Answer: "No. Only the podcast owner can edit or delete podcasts, episodes and trophies.", Order: 4},
	}
	for _, f := range defaults {
		db.Create(&f)
	}
}
