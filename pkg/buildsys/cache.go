package buildsys

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

const recordFile = ".mcbuild.cache"

// RecordPath returns the location of the build record for the given plan
func RecordPath(plan *Plan) string {
	return filepath.Join(plan.Resolve(plan.OutDir), recordFile)
}

func WriteRecord(file string, record *Record) error {
	err := os.MkdirAll(filepath.Dir(file), 0770)
	if err != nil {
		return eris.Wrapf(err, "failed to create %s", filepath.Dir(file))
	}

	handle, err := os.Create(file)
	if err != nil {
		return eris.Wrapf(err, "failed to open %s", file)
	}

	encoder := gob.NewEncoder(handle)
	err = encoder.Encode(record)
	if err != nil {
		handle.Close()
		return eris.Wrap(err, "failed to encode record")
	}

	err = handle.Close()
	if err != nil {
		return eris.Wrapf(err, "failed to write %s", file)
	}

	return nil
}

func ReadRecord(file string) (*Record, error) {
	handle, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	decoder := gob.NewDecoder(handle)

	var result Record
	err = decoder.Decode(&result)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to decode %s", file)
	}

	return &result, nil
}
