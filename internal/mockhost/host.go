package mockhost

import (
	"fmt"
	"math/rand"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	wasmvm "github.com/empower1/wasmvm"
)

var _ wasmvm.Interface = (*Host)(nil)

// Host is one invocation's view of a Ledger: the currently executing
// contract's address, the coins attached to the current call, and the
// call stack built up by nested InitCall/FinishCall pairs. A fresh Host is
// created per top-level RunMain/RunFunction invocation; nested calls reuse
// it, pushing and popping addr as InitCall/FinishCall run.
type Host struct {
	ledger *Ledger

	addr      string
	callCoins uint64
	callStack []string
}

// NewHost starts a call at addr with coins attached, the entry point a
// node would use to hand a transaction to the runtime.
func NewHost(ledger *Ledger, addr string, coins uint64) *Host {
	return &Host{ledger: ledger, addr: addr, callStack: []string{addr}, callCoins: coins}
}

func (h *Host) currentAddress() string {
	if len(h.callStack) == 0 {
		return h.addr
	}
	return h.callStack[len(h.callStack)-1]
}

func (h *Host) InitCall(addr string, coins uint64) ([]byte, error) {
	bytecode, ok, err := h.ledger.module(addr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("mockhost: no module at address %s", addr)
	}
	if coins > 0 {
		if err := h.ledger.addBalance(h.currentAddress(), -int64(coins)); err != nil {
			return nil, err
		}
		if err := h.ledger.addBalance(addr, int64(coins)); err != nil {
			return nil, err
		}
	}
	h.callStack = append(h.callStack, addr)
	h.callCoins = coins
	return bytecode, nil
}

func (h *Host) FinishCall() error {
	if len(h.callStack) <= 1 {
		return fmt.Errorf("mockhost: finish_call with no matching init_call")
	}
	h.callStack = h.callStack[:len(h.callStack)-1]
	return nil
}

func (h *Host) Print(msg string) error {
	fmt.Println(msg)
	return h.ledger.appendEvent("print: " + msg)
}

func (h *Host) CreateModule(bytecode []byte) (string, error) {
	addr := "SC" + uuid.NewString()
	if err := h.ledger.putModule(addr, bytecode); err != nil {
		return "", err
	}
	return addr, nil
}

func (h *Host) UpdateModule(addr string, bytecode []byte) error {
	return h.ledger.putModule(addr, bytecode)
}

func (h *Host) GetData(key []byte) ([]byte, error) {
	return h.GetDataFor(h.currentAddress(), key)
}

func (h *Host) SetData(key, value []byte) error {
	return h.SetDataFor(h.currentAddress(), key, value)
}

func (h *Host) DeleteData(key []byte) error {
	return h.DeleteDataFor(h.currentAddress(), key)
}

func (h *Host) HasData(key []byte) (bool, error) {
	return h.HasDataFor(h.currentAddress(), key)
}

func (h *Host) AppendData(key, value []byte) error {
	return h.AppendDataFor(h.currentAddress(), key, value)
}

func (h *Host) GetDataFor(addr string, key []byte) ([]byte, error) {
	var out []byte
	err := h.ledger.viewDataBucket(addr, func(b *bolt.Bucket) error {
		if b == nil {
			return fmt.Errorf("mockhost: no data for key %q at %s", key, addr)
		}
		v := b.Get(key)
		if v == nil {
			return fmt.Errorf("mockhost: no data for key %q at %s", key, addr)
		}
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (h *Host) SetDataFor(addr string, key, value []byte) error {
	return h.ledger.withDataBucket(addr, func(b *bolt.Bucket) error {
		return b.Put(key, value)
	})
}

func (h *Host) DeleteDataFor(addr string, key []byte) error {
	return h.ledger.withDataBucket(addr, func(b *bolt.Bucket) error {
		return b.Delete(key)
	})
}

func (h *Host) HasDataFor(addr string, key []byte) (bool, error) {
	found := false
	err := h.ledger.viewDataBucket(addr, func(b *bolt.Bucket) error {
		if b == nil {
			return nil
		}
		found = b.Get(key) != nil
		return nil
	})
	return found, err
}

func (h *Host) AppendDataFor(addr string, key, value []byte) error {
	existing, err := h.GetDataFor(addr, key)
	if err != nil {
		existing = nil
	}
	return h.SetDataFor(addr, key, append(existing, value...))
}

func (h *Host) GetOwnedAddresses() ([]string, error) {
	out := make([]string, len(h.callStack))
	copy(out, h.callStack)
	return out, nil
}

func (h *Host) GetCallStack() ([]string, error) {
	out := make([]string, len(h.callStack))
	copy(out, h.callStack)
	return out, nil
}

func (h *Host) GenerateEvent(msg string) error {
	return h.ledger.appendEvent(msg)
}

func (h *Host) TransferCoins(to string, amount uint64) error {
	return h.TransferCoinsFor(h.currentAddress(), to, amount)
}

func (h *Host) TransferCoinsFor(from, to string, amount uint64) error {
	if err := h.ledger.addBalance(from, -int64(amount)); err != nil {
		return err
	}
	return h.ledger.addBalance(to, int64(amount))
}

func (h *Host) GetBalance() (uint64, error) {
	return h.GetBalanceFor(h.currentAddress())
}

func (h *Host) GetBalanceFor(addr string) (uint64, error) {
	return h.ledger.balance(addr)
}

func (h *Host) GetCallCoins() (uint64, error) {
	return h.callCoins, nil
}

func (h *Host) Hash(data []byte) ([]byte, error) {
	return hashBytes(data), nil
}

func (h *Host) SignatureVerify(publicKey, signature, message []byte) (bool, error) {
	return verifySignature(publicKey, signature, message)
}

func (h *Host) AddressFromPublicKey(publicKey []byte) (string, error) {
	return addressFromPublicKey(publicKey), nil
}

func (h *Host) UnsafeRandom() (int64, error) {
	return rand.Int63(), nil
}

func (h *Host) GetTime() (int64, error) {
	return h.ledger.clock.Now().UnixMilli(), nil
}

func (h *Host) SendMessage(target string, handler string, validityStart, validityEnd int64, maxGas uint64, rawCoins uint64, data []byte) error {
	return h.ledger.scheduleMessage(target, handler, validityStart, validityEnd, maxGas, rawCoins, data)
}

func (h *Host) GetCurrentPeriod() (int64, error) {
	period, _ := h.ledger.tick()
	return period, nil
}

func (h *Host) GetCurrentThread() (int32, error) {
	_, thread := h.ledger.tick()
	return thread, nil
}

func (h *Host) SetBytecode(bytecode []byte) error {
	return h.SetBytecodeFor(h.currentAddress(), bytecode)
}

func (h *Host) SetBytecodeFor(addr string, bytecode []byte) error {
	return h.ledger.putModule(addr, bytecode)
}
