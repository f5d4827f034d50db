package custodytest

import (
	"os"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/store/iavl"
)

// CommitKVStore opens an iavl store in a temporary directory, the same
// engine custodyd runs on. Call cleanup to close it and remove the files.
func CommitKVStore(t testing.TB) (db custody.CommitKVStore, cleanup func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "custodytest-")
	if err != nil {
		t.Fatalf("temporary directory: %s", err)
	}
	s, err := iavl.NewCommitStore(dir, "custody")
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("open store in %s: %s", dir, err)
	}
	cleanup = func() {
		s.Close()
		os.RemoveAll(dir)
	}
	return s, cleanup
}
