package models

import "time"

// Asset is one node of the power topology.
type Asset struct {
	ID               uint    `gorm:"primaryKey"`
	Key              string  `gorm:"uniqueIndex;size:191;not null"`
	Type             string  `gorm:"size:64;not null"`
	Name             string  `gorm:"size:255"`
	ComponentOf      *string `gorm:"size:191;index"` // key of the enclosing asset, nil for top level
	OnDelay          int     // ms
	OffDelay         int     // ms
	PowerConsumption float64 // watts
	PowerSource      float64 // volts
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PowerLink records that AssetKey is powered by ParentKey.
type PowerLink struct {
	ID        uint   `gorm:"primaryKey"`
	AssetKey  string `gorm:"size:191;uniqueIndex:idx_power_link"`
	ParentKey string `gorm:"size:191;uniqueIndex:idx_power_link"`
}
