package world

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// world.dat: "WORLD" + version int32 + seed int32, little-endian. The seed is
// carried as int64 in the API and truncated to int32 on disk.
const (
	worldMetaName    = "world.dat"
	worldMetaMagic   = "WORLD"
	worldMetaVersion = 1
	worldMetaBytes   = len(worldMetaMagic) + 4 + 4
)

// ReadWorldMeta reads the persisted seed from <worldDir>/world.dat. A missing
// file, wrong magic or wrong version all mean "no existing world" and return
// ok=false with no error; only genuine I/O failures are errors.
func ReadWorldMeta(worldDir string) (seed int64, ok bool, err error) {
	path := filepath.Join(worldDir, worldMetaName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read world metadata: %w", err)
	}
	if len(data) < worldMetaBytes || string(data[:5]) != worldMetaMagic {
		return 0, false, nil
	}
	if int32(binary.LittleEndian.Uint32(data[5:9])) != worldMetaVersion {
		return 0, false, nil
	}
	return int64(int32(binary.LittleEndian.Uint32(data[9:13]))), true, nil
}

// WriteWorldMeta persists the seed to <worldDir>/world.dat atomically.
func WriteWorldMeta(worldDir string, seed int64) error {
	data := make([]byte, worldMetaBytes)
	copy(data, worldMetaMagic)
	binary.LittleEndian.PutUint32(data[5:9], uint32(int32(worldMetaVersion)))
	binary.LittleEndian.PutUint32(data[9:13], uint32(int32(seed)))

	path := filepath.Join(worldDir, worldMetaName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write world metadata: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit world metadata: %w", err)
	}
	return nil
}
