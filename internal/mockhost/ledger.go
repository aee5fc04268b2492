// Package mockhost is a reference wasmvm.Interface for driving the runtime
// outside of a real node: a single boltdb file standing in for chain state,
// plus the bookkeeping (call stack, owned addresses, coin balances) a real
// embedder would keep in its own ledger. It exists for cmd/scvmrun and for
// the package's own tests, not as a production execution backend.
package mockhost

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

var (
	bucketModules   = []byte("modules")
	bucketBalances  = []byte("balances")
	bucketEvents    = []byte("events")
	bucketMessages  = []byte("messages")
	bucketDataRoot  = []byte("data")
)

// Ledger is the shared, persistent backing store. Several Hosts -- one per
// concurrently executing call -- may point at the same Ledger; boltdb
// serializes writers for us, so Ledger adds no locking of its own beyond
// what protects the in-memory counters used for current_period/current_thread.
type Ledger struct {
	db     *bolt.DB
	clock  clock.Clock
	logger *zap.SugaredLogger

	mu     sync.Mutex
	period int64
	thread int32
}

// LedgerOption configures optional OpenLedger behaviour.
type LedgerOption func(*Ledger)

// WithLogger attaches a *zap.SugaredLogger the ledger uses for
// bucket-mutation diagnostics. Defaults to a no-op logger.
func WithLogger(l *zap.SugaredLogger) LedgerOption {
	return func(ledger *Ledger) { ledger.logger = l }
}

// OpenLedger opens (creating if absent) a boltdb file at path and prepares
// its top-level buckets. clk lets tests substitute a clock.Mock for
// GetTime instead of wall-clock time.
func OpenLedger(path string, clk clock.Clock, opts ...LedgerOption) (*Ledger, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("mockhost: open ledger: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketModules, bucketBalances, bucketEvents, bucketMessages, bucketDataRoot} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("mockhost: prepare buckets: %w", err)
	}
	if clk == nil {
		clk = clock.New()
	}
	ledger := &Ledger{db: db, clock: clk, logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(ledger)
	}
	return ledger, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Seed installs bytecode for addr and an initial balance, the way a node
// would pre-populate state before handing a call to the runtime.
func (l *Ledger) Seed(addr string, bytecode []byte, balance uint64) error {
	l.logger.Debugw("seeding ledger", "address", addr, "balance", balance, "bytecode_len", len(bytecode))
	return l.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketModules).Put([]byte(addr), bytecode); err != nil {
			return err
		}
		return tx.Bucket(bucketBalances).Put([]byte(addr), encodeUint64(balance))
	})
}

func (l *Ledger) module(addr string) ([]byte, bool, error) {
	var out []byte
	err := l.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketModules).Get([]byte(addr)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, out != nil, err
}

func (l *Ledger) putModule(addr string, bytecode []byte) error {
	l.logger.Debugw("updating module bytecode", "address", addr, "bytecode_len", len(bytecode))
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketModules).Put([]byte(addr), bytecode)
	})
}

func (l *Ledger) balance(addr string) (uint64, error) {
	var out uint64
	err := l.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketBalances).Get([]byte(addr)); v != nil {
			out = decodeUint64(v)
		}
		return nil
	})
	return out, err
}

func (l *Ledger) addBalance(addr string, delta int64) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBalances)
		cur := decodeUint64(b.Get([]byte(addr)))
		next := int64(cur) + delta
		if next < 0 {
			return fmt.Errorf("mockhost: balance of %s would go negative", addr)
		}
		return b.Put([]byte(addr), encodeUint64(uint64(next)))
	})
}

func (l *Ledger) dataBucketName(addr string) []byte {
	return []byte("data:" + addr)
}

func (l *Ledger) withDataBucket(addr string, fn func(*bolt.Bucket) error) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(l.dataBucketName(addr))
		if err != nil {
			return err
		}
		return fn(b)
	})
}

func (l *Ledger) viewDataBucket(addr string, fn func(*bolt.Bucket) error) error {
	return l.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(l.dataBucketName(addr))
		if b == nil {
			return fn(nil)
		}
		return fn(b)
	})
}

func (l *Ledger) appendEvent(msg string) error {
	l.logger.Debugw("appending event", "message", msg)
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		seq, _ := b.NextSequence()
		return b.Put(encodeUint64(seq), []byte(msg))
	})
}

// scheduleMessage records an asynchronous send_message call. A real node
// would enqueue this for execution in a future slot; mockhost just keeps
// an append-only log so tests can assert on what was scheduled.
func (l *Ledger) scheduleMessage(target, handler string, validityStart, validityEnd int64, maxGas, rawCoins uint64, data []byte) error {
	entry := fmt.Sprintf("%s|%s|%d|%d|%d|%d|%x", target, handler, validityStart, validityEnd, maxGas, rawCoins, data)
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		seq, _ := b.NextSequence()
		return b.Put(encodeUint64(seq), []byte(entry))
	})
}

func (l *Ledger) tick() (period int64, thread int32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.period++
	l.thread = int32((l.thread + 1) % 32)
	return l.period, l.thread
}

func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func decodeUint64(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
