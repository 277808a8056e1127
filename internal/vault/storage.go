package vault

import (
	"fmt"
	"os"
)

// Save writes the record to path, owner read/write only.
func Save(path string, rec Record) error {
	data, err := rec.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Load reads a record previously written with Save.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return UnmarshalRecord(data)
}
