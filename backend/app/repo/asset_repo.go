package repo

import (
	"asset-dashboard/backend/app/models"

	"gorm.io/gorm"
)

type AssetRepository struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) *AssetRepository { return &AssetRepository{db: db} }

func (r *AssetRepository) FindByKey(key string) (*models.Asset, error) {
	var a models.Asset
	if err := r.db.Where("`key` = ?", key).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAll returns every asset in insertion order.
func (r *AssetRepository) ListAll() ([]models.Asset, error) {
	var out []models.Asset
	err := r.db.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *AssetRepository) ComponentsOf(key string) ([]models.Asset, error) {
	var out []models.Asset
	err := r.db.Where("component_of = ?", key).Order("id ASC").Find(&out).Error
	return out, err
}

// Upsert saves by key, returning true when the asset did not exist yet.
func (r *AssetRepository) Upsert(a *models.Asset) (bool, error) {
	var existing models.Asset
	if err := r.db.Where("`key` = ?", a.Key).First(&existing).Error; err == nil {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		return false, r.db.Save(a).Error
	}
	return true, r.db.Create(a).Error
}

// ParentKeys lists the keys of the assets powering key.
func (r *AssetRepository) ParentKeys(key string) ([]string, error) {
	var keys []string
	err := r.db.Model(&models.PowerLink{}).Where("asset_key = ?", key).Order("id ASC").Pluck("parent_key", &keys).Error
	return keys, err
}

// PoweredBy lists the assets drawing power from key.
func (r *AssetRepository) PoweredBy(key string) ([]models.Asset, error) {
	var out []models.Asset
	err := r.db.Joins("JOIN power_links ON power_links.asset_key = assets.`key`").
		Where("power_links.parent_key = ?", key).
		Order("assets.id ASC").
		Find(&out).Error
	return out, err
}

// ReplaceLinks sets the full parent list of assetKey.
func (r *AssetRepository) ReplaceLinks(assetKey string, parents []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_key = ?", assetKey).Delete(&models.PowerLink{}).Error; err != nil {
			return err
		}
		for _, p := range parents {
			if err := tx.Create(&models.PowerLink{AssetKey: assetKey, ParentKey: p}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
