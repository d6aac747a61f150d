package services

import (
	"context"
	"encoding/json"
	"log"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/adapters/persistence/repositories"
	"diu-alumnihub/internal/core/domain"
)

// Well-known setting keys
const (
	SettingMembershipFee = "membership_fee"
	SettingFeatureFlags  = "feature_flags"
)

// SettingsService manages key-value system configuration
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repositories.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// CreateSetting creates a new setting. The key must not already exist.
func (s *SettingsService) CreateSetting(ctx context.Context, key string, value json.RawMessage, description string) (*models.Setting, error) {
	existing, err := s.settingsRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrSettingAlreadyExists
	}

	setting := &models.Setting{
		Key:         key,
		Value:       string(value),
		Description: description,
		IsActive:    true,
	}
	if err := s.settingsRepo.Create(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// GetSetting returns a setting by key
func (s *SettingsService) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	setting, err := s.settingsRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.ErrSettingNotFound
	}
	return setting, nil
}

// ListSettings returns all settings
func (s *SettingsService) ListSettings(ctx context.Context) ([]*models.Setting, error) {
	return s.settingsRepo.List(ctx)
}

// UpdateSettingInput carries optional setting updates
type UpdateSettingInput struct {
	Value       json.RawMessage
	Description *string
	IsActive    *bool
}

// UpdateSetting updates an existing setting by key
func (s *SettingsService) UpdateSetting(ctx context.Context, key string, input UpdateSettingInput) (*models.Setting, error) {
	setting, err := s.settingsRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.ErrSettingNotFound
	}

	if input.Value != nil {
		setting.Value = string(input.Value)
	}
	if input.Description != nil {
		setting.Description = *input.Description
	}
	if input.IsActive != nil {
		setting.IsActive = *input.IsActive
	}

	if err := s.settingsRepo.Update(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// DeleteSetting removes a setting by key
func (s *SettingsService) DeleteSetting(ctx context.Context, key string) error {
	setting, err := s.settingsRepo.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	if setting == nil {
		return domain.ErrSettingNotFound
	}
	return s.settingsRepo.DeleteByKey(ctx, key)
}

// GetMembershipFee returns the configured membership fee. A missing or
// malformed setting falls back to the default fee rather than failing.
func (s *SettingsService) GetMembershipFee(ctx context.Context) domain.MembershipFee {
	setting, err := s.settingsRepo.FindActiveByKey(ctx, SettingMembershipFee)
	if err != nil || setting == nil {
		if err != nil {
			log.Printf("⚠️  Failed to load membership fee setting: %v", err)
		}
		return domain.DefaultMembershipFee
	}

	var fee domain.MembershipFee
	if err := json.Unmarshal([]byte(setting.Value), &fee); err != nil || fee.Amount <= 0 {
		log.Printf("⚠️  Malformed membership fee setting, using default")
		return domain.DefaultMembershipFee
	}
	if fee.Currency == "" {
		fee.Currency = domain.DefaultMembershipFee.Currency
	}
	return fee
}

// GetFeatureFlags returns the configured feature flags, falling back to
// defaults when the setting is missing or malformed
func (s *SettingsService) GetFeatureFlags(ctx context.Context) domain.FeatureFlags {
	setting, err := s.settingsRepo.FindActiveByKey(ctx, SettingFeatureFlags)
	if err != nil || setting == nil {
		if err != nil {
			log.Printf("⚠️  Failed to load feature flags setting: %v", err)
		}
		return domain.DefaultFeatureFlags
	}

	var flags domain.FeatureFlags
	if err := json.Unmarshal([]byte(setting.Value), &flags); err != nil {
		log.Printf("⚠️  Malformed feature flags setting, using defaults")
		return domain.DefaultFeatureFlags
	}
	return flags
}
