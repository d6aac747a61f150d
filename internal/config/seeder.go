package config

import (
	"encoding/json"
	"log"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/core/domain"
	"diu-alumnihub/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedDatabase creates the baseline records the application expects:
// default settings and the bootstrap system administrator account.
func SeedDatabase(db *gorm.DB, cfg *Config) error {
	if err := seedSettings(db); err != nil {
		return err
	}
	if err := seedSystemAdmin(db, cfg); err != nil {
		return err
	}
	return nil
}

func seedSettings(db *gorm.DB) error {
	defaults := []struct {
		key         string
		value       interface{}
		description string
	}{
		{"membership_fee", domain.DefaultMembershipFee, "Membership fee charged when a request reaches payment"},
		{"feature_flags", domain.DefaultFeatureFlags, "Optional system behavior toggles"},
	}

	for _, d := range defaults {
		var count int64
		if err := db.Model(&models.Setting{}).Where("`key` = ?", d.key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		raw, err := json.Marshal(d.value)
		if err != nil {
			return err
		}

		setting := models.Setting{
			Key:         d.key,
			Value:       string(raw),
			Description: d.description,
			IsActive:    true,
		}
		if err := db.Create(&setting).Error; err != nil {
			return err
		}
		log.Printf("✅ Seeded setting %s", d.key)
	}

	return nil
}

func seedSystemAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Println("⚠️  System admin credentials not configured, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.Admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:         cfg.Admin.Email,
		Password:      hashed,
		FirstName:     "System",
		LastName:      "Administrator",
		Roles:         domain.RoleList{domain.RoleSystemAdmin},
		IsActive:      true,
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded system admin account [%s]", cfg.Admin.Email)
	return nil
}
