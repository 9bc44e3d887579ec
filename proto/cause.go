package proto

import (
	"errors"

	"github.com/zdnscloud/kvsession"
)

// CauseTrailer is the trailer key carrying the name of the root cause of
// a failed call, so the client can rebuild errors that match errors.Is.
const CauseTrailer = "kvsession-cause"

var causes = []struct {
	name string
	err  error
}{
	{"capability-unavailable", kvsession.ErrCapabilityUnavailable},
	{"version", kvsession.ErrVersion},
	{"collection-not-found", kvsession.ErrCollectionNotFound},
	{"collection-exists", kvsession.ErrCollectionExists},
	{"transaction-inactive", kvsession.ErrTransactionInactive},
	{"read-only", kvsession.ErrReadOnly},
	{"aborted", kvsession.ErrAborted},
	{"closed", kvsession.ErrClosed},
	{"invalid-key", kvsession.ErrInvalidKey},
	{"invalid-name", kvsession.ErrInvalidName},
}

func CauseName(err error) string {
	for _, c := range causes {
		if errors.Is(err, c.err) {
			return c.name
		}
	}
	return ""
}

func CauseByName(name string) error {
	for _, c := range causes {
		if c.name == name {
			return c.err
		}
	}
	return nil
}
