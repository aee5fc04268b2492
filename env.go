package wasmvm

import (
	"sync/atomic"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// Env is the per-invocation state handed to every ABI closure: a shared
// reference to the host Interface, and weak handles to the instantiated
// sandbox's memory and allocator export. One Env is built before
// instantiation (the Interface is needed to resolve imports); the memory
// and allocator handles are published by OnInstantiated once the Instance
// exists, so every ABI closure -- each of which captured its own copy of
// the Env pointer at import-link time -- observes them the moment they
// become available. Env is never reused across invocations.
type Env struct {
	iface Interface

	memory    atomic.Pointer[wasmer.Memory]
	allocate  atomic.Pointer[wasmer.NativeFunction]
	instance  atomic.Pointer[wasmer.Instance]
	remaining atomic.Uint64
}

// Ensure Env satisfies wasmer's environment-hook interface so
// OnInstantiated runs automatically once the sandbox is built.
var _ wasmer.WasmerEnv = (*Env)(nil)

func newEnv(iface Interface, limit uint64) *Env {
	e := &Env{iface: iface}
	e.remaining.Store(limit)
	return e
}

// OnInstantiated is invoked by wasmer-go immediately after instantiation.
// It publishes the memory and allocator export handles to this Env (and
// transitively, to every ABI closure sharing it).
func (e *Env) OnInstantiated(instance *wasmer.Instance) error {
	memory, err := instance.Exports.GetMemory(GuestMemoryExport)
	if err != nil {
		return wrapError(KindLinkError, err, "module does not export a memory named %q", GuestMemoryExport)
	}
	allocate, err := instance.Exports.GetFunction(GuestAllocatorExport)
	if err != nil {
		return wrapError(KindLinkError, err, "module does not export an allocator named %q", GuestAllocatorExport)
	}
	e.memory.Store(memory)
	e.allocate.Store(&allocate)
	e.instance.Store(instance)
	return nil
}

func (e *Env) memoryHandle() (*wasmer.Memory, error) {
	m := e.memory.Load()
	if m == nil {
		return nil, newError(KindMemoryUninitialized, "uninitialized memory")
	}
	return m, nil
}

func (e *Env) allocatorHandle() (wasmer.NativeFunction, error) {
	a := e.allocate.Load()
	if a == nil {
		return nil, newError(KindMemoryUninitialized, "uninitialized allocator")
	}
	return *a, nil
}

// subRemainingPoints deducts n from the gas counter. There is no
// compiler-inserted per-instruction metering backing this up, so this is
// the entire enforcement mechanism: the prologue that calls this must
// abort the ABI call -- and therefore the host delegation -- before any
// work happens if gas is insufficient.
func (e *Env) subRemainingPoints(n uint64) error {
	for {
		cur := e.remaining.Load()
		if n > cur {
			e.remaining.Store(0)
			return newError(KindGasExhausted, "")
		}
		if e.remaining.CompareAndSwap(cur, cur-n) {
			return nil
		}
	}
}

// remainingPoints reports the current gas counter.
func (e *Env) remainingPoints() uint64 {
	return e.remaining.Load()
}

// setRemainingPoints reseeds the counter. Used by the nested-call protocol
// (abi.go's call implementation) to adopt the callee's remaining gas as
// the caller's new remaining gas on return, preserving one conceptual
// budget across the whole call tree.
func (e *Env) setRemainingPoints(n uint64) {
	e.remaining.Store(n)
}
