package storage

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

func writeRaw(path string, snap snapshot) error {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
