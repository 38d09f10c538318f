package models

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Уровни, на которых определены настройки
const (
	LevelAddress = "address"
	LevelCompany = "company"
	LevelDefault = "default"
)

// Request модели

// UpsertSettingsRequest запрос на создание или обновление настроек календаря
// Поля настроек опциональны - обновляются только переданные значения
type UpsertSettingsRequest struct {
	UserID             int64  `json:"userId"`
	CompanyID          int64  `json:"companyId"`
	AddressID          *int64 `json:"addressId,omitempty"` // NULL = для всех адресов
	StepMinutes        *int   `json:"stepMinutes,omitempty"`
	MinDurationMinutes *int   `json:"minDurationMinutes,omitempty"`
	HorizonDays        *int   `json:"horizonDays,omitempty"` // 0 = без ограничений
}

// DeleteSettingsRequest запрос на удаление настроек
type DeleteSettingsRequest struct {
	UserID    int64  `json:"userId"`
	CompanyID int64  `json:"companyId"`
	AddressID *int64 `json:"addressId,omitempty"`
}

// Response модели

// SettingsResponse ответ с настройками календаря
type SettingsResponse struct {
	ID                 int64      `json:"id,omitempty"`
	CompanyID          int64      `json:"companyId"`
	AddressID          *int64     `json:"addressId,omitempty"`
	Level              string     `json:"level"`
	StepMinutes        int        `json:"stepMinutes"`
	MinDurationMinutes int        `json:"minDurationMinutes"`
	HorizonDays        int        `json:"horizonDays"`
	CreatedAt          *time.Time `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// SettingsListResponse ответ со списком настроек компании
type SettingsListResponse struct {
	Settings []SettingsResponse `json:"settings"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.CalendarSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ID:                 s.ID,
		CompanyID:          s.CompanyID,
		AddressID:          s.AddressID,
		Level:              Level(s),
		StepMinutes:        s.StepMinutes,
		MinDurationMinutes: s.MinDurationMinutes,
		HorizonDays:        s.HorizonDays,
	}
	if !s.IsDefault() {
		resp.CreatedAt = &s.CreatedAt
		resp.UpdatedAt = &s.UpdatedAt
	}
	return resp
}

// FromDomainSettingsList конвертирует список domain моделей в DTO
func FromDomainSettingsList(list []*domain.CalendarSettings) *SettingsListResponse {
	resp := &SettingsListResponse{
		Settings: make([]SettingsResponse, 0, len(list)),
	}
	for _, s := range list {
		if r := FromDomainSettings(s); r != nil {
			resp.Settings = append(resp.Settings, *r)
		}
	}
	return resp
}

// Level возвращает уровень иерархии, на котором определены настройки
func Level(s *domain.CalendarSettings) string {
	switch {
	case s.IsDefault():
		return LevelDefault
	case s.IsCompanyWide():
		return LevelCompany
	default:
		return LevelAddress
	}
}

// ApplyTo применяет обновления к настройкам
// Обновляются только непустые (not nil) поля из request
func (r *UpsertSettingsRequest) ApplyTo(s *domain.CalendarSettings) {
	if r.StepMinutes != nil {
		s.StepMinutes = *r.StepMinutes
	}
	if r.MinDurationMinutes != nil {
		s.MinDurationMinutes = *r.MinDurationMinutes
	}
	if r.HorizonDays != nil {
		s.HorizonDays = *r.HorizonDays
	}
}
