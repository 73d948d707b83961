package store

// DeviceBackend binds the store to one device id so it satisfies the
// customer persistence boundary.
type DeviceBackend struct {
	store    *Store
	deviceID string
}

func (s *Store) ForDevice(deviceID string) *DeviceBackend {
	return &DeviceBackend{store: s, deviceID: deviceID}
}

func (b *DeviceBackend) Load() ([]byte, error) {
	return b.store.LoadCustomerInfo(b.deviceID)
}

func (b *DeviceBackend) Save(data []byte) error {
	return b.store.SaveCustomerInfo(b.deviceID, data)
}
