package engine

import (
	"errors"
	"fmt"

	"github.com/zdnscloud/cement/log"

	"github.com/zdnscloud/kvsession"
	"github.com/zdnscloud/kvsession/backend"
)

// schema is the mutable view handed to upgrade callbacks, it writes
// through the upgrade transaction.
type schema struct {
	tx backend.Transaction
}

var _ kvsession.Schema = &schema{}

func (s *schema) HasCollection(name string) bool {
	exists, err := s.tx.HasTable(name)
	if err != nil {
		log.Warnf("check collection %s failed: %s", name, err.Error())
		return false
	}
	return exists
}

func (s *schema) CreateCollection(name string) error {
	if err := kvsession.ValidateCollectionName(name); err != nil {
		return err
	}

	err := s.tx.CreateTable(name)
	if errors.Is(err, backend.ErrTableExists) {
		return fmt.Errorf("%w: %s", kvsession.ErrCollectionExists, name)
	}
	return err
}

func (s *schema) Collections() []string {
	names, err := s.tx.Tables()
	if err != nil {
		log.Warnf("list collections failed: %s", err.Error())
		return nil
	}
	return names
}
