package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aimaster-store/internal/model"
)

// SeedDemoData loads the fixture catalog into the demo store. Prices are in
// minor units (paise).
func SeedDemoData(db *gorm.DB) error {
	now := time.Now()

	products := []model.Product{
		{
			ID:          "1",
			Title:       "Ultimate AI Prompt Pack",
			Description: "Over 1000+ carefully crafted prompts for ChatGPT, Midjourney, and Claude. Boost your productivity instantly.",
			Price:       99900,
			ImageURL:    "https://picsum.photos/800/600?random=1",
			FileURL:     "https://example.com/download/prompt-pack.zip",
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Title:       "Stable Diffusion Model v2.5",
			Description: "Fine-tuned model for photorealistic portraits. Compatible with Automatic1111.",
			Price:       249900,
			ImageURL:    "https://picsum.photos/800/600?random=2",
			FileURL:     "https://example.com/download/sd-model.ckpt",
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Title:       "AI Art Generation Course",
			Description: "Master the art of generative AI with this 10-hour video course. Includes project files.",
			Price:       499900,
			ImageURL:    "https://picsum.photos/800/600?random=3",
			FileURL:     "https://example.com/course/access",
			CreatedAt:   now,
		},
		{
			ID:          "4",
			Title:       "Neural Voice Pack",
			Description: "High quality voice clones for TTS applications. Royalty free usage.",
			Price:       149900,
			ImageURL:    "https://picsum.photos/800/600?random=4",
			FileURL:     "https://example.com/download/voices.zip",
			CreatedAt:   now,
		},
	}

	banners := []model.Banner{
		{
			ID:        "1",
			ImageURL:  "https://picsum.photos/1200/400?random=10",
			Title:     "Unleash Creativity",
			Active:    true,
			CreatedAt: now,
		},
		{
			ID:        "2",
			ImageURL:  "https://picsum.photos/1200/400?random=11",
			Title:     "Next Gen Models",
			Active:    true,
			CreatedAt: now,
		},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&banners).Error
}
