package domain

import "time"

// DeviceStatus состояние устройства (киоска/экрана)
type DeviceStatus string

const (
	DeviceOnline  DeviceStatus = "online"
	DeviceOffline DeviceStatus = "offline"
	DeviceSyncing DeviceStatus = "syncing"
)

// Device устройство, на котором продаются слоты
type Device struct {
	ID           int64
	Name         string
	Status       DeviceStatus
	SlotConfigID int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBookable офлайн-устройства не бронируются
func (d *Device) IsBookable() bool {
	return d.Status != DeviceOffline
}
