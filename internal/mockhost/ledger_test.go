package mockhost

import (
	"path/filepath"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/boltdb/bolt"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	ledger, err := OpenLedger(path, clock.NewMock())
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func TestSeedAndModuleRoundTrip(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.Seed("SC1", []byte("bytecode"), 100))

	bytecode, ok, err := ledger.module("SC1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("bytecode"), bytecode)

	balance, err := ledger.balance("SC1")
	require.NoError(t, err)
	require.Equal(t, uint64(100), balance)
}

func TestModuleMissingReturnsNotFound(t *testing.T) {
	ledger := newTestLedger(t)
	_, ok, err := ledger.module("unknown")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAddBalanceRejectsNegativeResult(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.Seed("SC1", nil, 10))
	require.Error(t, ledger.addBalance("SC1", -20))
}

func TestDataBucketRoundTrip(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.withDataBucket("SC1", func(b *bolt.Bucket) error {
		return b.Put([]byte("k"), []byte("v"))
	}))

	var got []byte
	require.NoError(t, ledger.viewDataBucket("SC1", func(b *bolt.Bucket) error {
		got = b.Get([]byte("k"))
		return nil
	}))
	require.Equal(t, []byte("v"), got)
}

func TestTickAdvancesPeriodAndWrapsThread(t *testing.T) {
	ledger := newTestLedger(t)
	p1, th1 := ledger.tick()
	p2, th2 := ledger.tick()
	require.Equal(t, p1+1, p2)
	require.Equal(t, (th1+1)%32, th2)
}
