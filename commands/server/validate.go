package server

import (
	"encoding/json"
	"os"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

// ValidateGenesis runs the initializer over the app_state of each genesis
// file. Nothing is persisted. The first failing file stops the check and
// its path is part of the error.
func ValidateGenesis(ini custody.Initializer, paths []string) error {
	if len(paths) == 0 {
		return errors.Wrap(errors.ErrInput, "no genesis file given")
	}
	for _, path := range paths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini custody.Initializer, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read: %s", err)
	}
	var doc struct {
		AppState custody.Options `json:"app_state"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode: %s", err)
	}
	if len(doc.AppState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}
	return errors.Wrap(ini.FromGenesis(doc.AppState, store.MemStore()), "initialize")
}
