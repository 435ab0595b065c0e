package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"skystore/storefront-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixtureItem struct {
	Model  string          `json:"model"`
	PK     uint            `json:"pk"`
	Fields json.RawMessage `json:"fields"`
}

type categoryFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type productFields struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Photo          *string    `json:"photo"`
	Category       *uint      `json:"category"`
	Price          int64      `json:"price"`
	CreatedAt      *time.Time `json:"created_at"`
	ManufacturedAt *time.Time `json:"manufactured_at"`
}

// LoadFixtures wipes the catalog tables and repopulates them from a
// fixture file of [{model, pk, fields}] records, categories first so
// the product foreign keys resolve
func LoadFixtures(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixtures file, %w", err)
	}

	var items []fixtureItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("failed to parse fixtures file, %w", err)
	}

	var categories []model.Category
	var products []model.Product

	for _, item := range items {
		switch item.Model {
		case "catalog.category":
			var f categoryFields
			if err := json.Unmarshal(item.Fields, &f); err != nil {
				return fmt.Errorf("bad category fixture pk=%d, %w", item.PK, err)
			}

			categories = append(categories, model.Category{
				ID:          item.PK,
				Name:        f.Name,
				Description: f.Description,
			})
		case "catalog.product":
			var f productFields
			if err := json.Unmarshal(item.Fields, &f); err != nil {
				return fmt.Errorf("bad product fixture pk=%d, %w", item.PK, err)
			}

			p := model.Product{
				ID:             item.PK,
				Name:           f.Name,
				Description:    f.Description,
				PhotoRef:       f.Photo,
				Price:          f.Price,
				CategoryID:     f.Category,
				ManufacturedAt: f.ManufacturedAt,
			}
			if f.CreatedAt != nil {
				p.CreatedAt = *f.CreatedAt
			}

			products = append(products, p)
		default:
			zap.L().Warn("Skipping unknown fixture model", zap.String("model", item.Model))
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Version{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Category{}).Error; err != nil {
			return err
		}

		if len(categories) > 0 {
			if err := tx.CreateInBatches(categories, 100).Error; err != nil {
				return err
			}
		}

		if len(products) > 0 {
			if err := tx.CreateInBatches(products, 100).Error; err != nil {
				return err
			}
		}

		zap.L().Info("Fixtures loaded",
			zap.Int("categories", len(categories)),
			zap.Int("products", len(products)))

		return nil
	})
}
