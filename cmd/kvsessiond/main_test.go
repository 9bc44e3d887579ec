package main

import (
	"bytes"
	"testing"

	ut "github.com/zdnscloud/cement/unittest"
)

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInspectLocal(t *testing.T) {
	t.Setenv("KVSESSION_STORAGE_DRIVER", "bolt")
	t.Setenv("KVSESSION_STORAGE_DIR", t.TempDir())
	t.Setenv("KVSESSION_LOG_LEVEL", "error")

	out, err := run(t, "inspect", "users")
	ut.Equal(t, err, nil)
	ut.Equal(t, out, "users version 1\n")

	out, err = run(t, "drop", "users")
	ut.Equal(t, err, nil)
	ut.Equal(t, out, "users deleted\n")
}

func TestInspectMissingCollection(t *testing.T) {
	t.Setenv("KVSESSION_STORAGE_DRIVER", "memory")
	t.Setenv("KVSESSION_LOG_LEVEL", "error")

	_, err := run(t, "inspect", "users", "people")
	ut.Assert(t, err != nil, "reading a missing collection should fail")
}

func TestBadConfig(t *testing.T) {
	t.Setenv("KVSESSION_STORAGE_DRIVER", "leveldb")
	_, err := run(t, "inspect", "users")
	ut.Assert(t, err != nil, "unknown driver should fail")
}
