package watcher

import (
	"encoding/binary"

	"github.com/zbridge/relay/internal/storage"
)

// StorageWatermarks implements WatermarkStore over the storage
// engine's meta column: an 8-byte little-endian height per watcher.
// Watermarks are task-local — each node's watchers advance them at
// their own pace — so they live outside the state column and never
// influence the state root two validators must agree on.
type StorageWatermarks struct {
	engine *storage.Engine
}

func NewStorageWatermarks(engine *storage.Engine) *StorageWatermarks {
	return &StorageWatermarks{engine: engine}
}

func (s *StorageWatermarks) GetZChainWatermark() (uint64, error) {
	return s.get(storage.MetaKeyZWatermark)
}

func (s *StorageWatermarks) SetZChainWatermark(height uint64) error {
	return s.set(storage.MetaKeyZWatermark, height)
}

func (s *StorageWatermarks) GetSChainWatermark() (uint64, error) {
	return s.get(storage.MetaKeySWatermark)
}

func (s *StorageWatermarks) SetSChainWatermark(block uint64) error {
	return s.set(storage.MetaKeySWatermark, block)
}

func (s *StorageWatermarks) get(key []byte) (uint64, error) {
	raw, err := s.engine.GetMeta(key)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	return binary.LittleEndian.Uint64(raw), nil
}

func (s *StorageWatermarks) set(key []byte, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return s.engine.SetMeta(key, b[:])
}
