package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Request модели

// RegisterConfigRequest запрос на регистрацию шаблона слота
type RegisterConfigRequest struct {
	Name                      string          `json:"name"`
	MasterSlotDurationSeconds int             `json:"masterSlotDurationSeconds"`
	SubSlotDurationSeconds    int             `json:"subSlotDurationSeconds"`
	SubSlotsPerCycle          int             `json:"subSlotsPerCycle"`
	PeakPrice                 decimal.Decimal `json:"peakPrice"`
	NonPeakPrice              decimal.Decimal `json:"nonPeakPrice"`
}

// ApplyToDeviceRequest запрос на назначение шаблона устройству
type ApplyToDeviceRequest struct {
	DeviceID        int64 `json:"-"`
	ConfigurationID int64 `json:"configurationId"`
}

// Response модели

// ConfigResponse ответ с данными шаблона слота
type ConfigResponse struct {
	ID                        int64           `json:"id"`
	Name                      string          `json:"name"`
	MasterSlotDurationSeconds int             `json:"masterSlotDurationSeconds"`
	SubSlotDurationSeconds    int             `json:"subSlotDurationSeconds"`
	SubSlotsPerCycle          int             `json:"subSlotsPerCycle"`
	PeakPrice                 decimal.Decimal `json:"peakPrice"`
	NonPeakPrice              decimal.Decimal `json:"nonPeakPrice"`
	CreatedAt                 time.Time       `json:"createdAt"`
	UpdatedAt                 time.Time       `json:"updatedAt"`
}

// ConfigListResponse ответ со списком шаблонов
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// DeviceConfigResponse результат назначения шаблона устройству
type DeviceConfigResponse struct {
	DeviceID        int64  `json:"deviceId"`
	DeviceName      string `json:"deviceName"`
	ConfigurationID int64  `json:"configurationId"`
}

// Методы конвертации

// ToDomainConfig конвертирует запрос в domain модель
func (r *RegisterConfigRequest) ToDomainConfig() *domain.SlotConfiguration {
	return &domain.SlotConfiguration{
		Name:                      r.Name,
		MasterSlotDurationSeconds: r.MasterSlotDurationSeconds,
		SubSlotDurationSeconds:    r.SubSlotDurationSeconds,
		SubSlotsPerCycle:          r.SubSlotsPerCycle,
		PeakPrice:                 r.PeakPrice,
		NonPeakPrice:              r.NonPeakPrice,
	}
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SlotConfiguration) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                        c.ID,
		Name:                      c.Name,
		MasterSlotDurationSeconds: c.MasterSlotDurationSeconds,
		SubSlotDurationSeconds:    c.SubSlotDurationSeconds,
		SubSlotsPerCycle:          c.SubSlotsPerCycle,
		PeakPrice:                 c.PeakPrice,
		NonPeakPrice:              c.NonPeakPrice,
		CreatedAt:                 c.CreatedAt,
		UpdatedAt:                 c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.SlotConfiguration) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}
