package wasmvm

import "sync"

// MainEntryPoint is the conventional exported function name run_main looks
// for, and the function whose raw return value is discarded in favour of
// the literal string "0" (see exec in engine.go).
const MainEntryPoint = "main"

// GuestMemoryExport and GuestAllocatorExport name the exports every module
// must provide for the string-passing ABI to work: a linear memory and an
// allocator callable with a single byte-size argument that returns a
// pointer into that memory.
const (
	GuestMemoryExport    = "memory"
	GuestAllocatorExport = "allocate"
)

// meteringCosts is the process-wide, resettable per-ABI-call gas cost
// table. It is consulted by every ABI prologue in abi.go before any host
// delegation is attempted.
type meteringCosts struct {
	call                 uint64
	print                 uint64
	remainingPoints       uint64
	createSC              uint64
	setData               uint64
	getData               uint64
	deleteData            uint64
	hasData               uint64
	appendData            uint64
	ownedAddresses        uint64
	callStack             uint64
	generateEvent         uint64
	transferCoins         uint64
	getBalance            uint64
	hash                  uint64
	signatureVerify       uint64
	addressFromPublicKey  uint64
	unsafeRandom          uint64
	getCallCoins          uint64
	getTime               uint64
	sendMessage           uint64
	currentPeriod         uint64
	currentThread         uint64
	setBytecode           uint64
}

func defaultMeteringCosts() meteringCosts {
	return meteringCosts{
		call:                 50,
		print:                1,
		remainingPoints:      1,
		createSC:             100,
		setData:              20,
		getData:              10,
		deleteData:           20,
		hasData:              5,
		appendData:           20,
		ownedAddresses:       10,
		callStack:            10,
		generateEvent:        15,
		transferCoins:        30,
		getBalance:           5,
		hash:                 25,
		signatureVerify:      100,
		addressFromPublicKey: 50,
		unsafeRandom:         5,
		getCallCoins:         5,
		getTime:              2,
		sendMessage:          50,
		currentPeriod:        2,
		currentThread:        2,
		setBytecode:          100,
	}
}

const defaultMaxPages uint64 = 256 // 16 MiB of linear memory, 64 KiB per page

var (
	settingsMu sync.RWMutex
	costs                 = defaultMeteringCosts()
	maxPages       uint64 = defaultMaxPages
)

// ResetMetering restores every configured cost and the page cap to their
// defaults. Invariant: callers must treat this as a global, externally
// serialised operation — no invocation may be in flight while it runs.
func ResetMetering() {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	costs = defaultMeteringCosts()
	maxPages = defaultMaxPages
}

// SetMetering overrides every configured ABI cost to the same value at
// once. Distinct from the per-call setters below; it exists to let tests
// pin every cost to a known uniform value (often 0) before isolating the
// effect of a single call's cost.
func SetMetering(cost uint64) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	v := costs
	v.call, v.print, v.remainingPoints, v.createSC = cost, cost, cost, cost
	v.setData, v.getData, v.deleteData, v.hasData, v.appendData = cost, cost, cost, cost, cost
	v.ownedAddresses, v.callStack, v.generateEvent = cost, cost, cost
	v.transferCoins, v.getBalance, v.hash = cost, cost, cost
	v.signatureVerify, v.addressFromPublicKey, v.unsafeRandom = cost, cost, cost
	v.getCallCoins, v.getTime, v.sendMessage = cost, cost, cost
	v.currentPeriod, v.currentThread, v.setBytecode = cost, cost, cost
	costs = v
}

func SetMaxNumberOfPages(n uint64) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	maxPages = n
}

// MaxNumberOfPages returns the configured linear-memory page cap consulted
// by the Limiting Tunables at instantiate time.
func MaxNumberOfPages() uint64 {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return maxPages
}

// Per-call setters, one per bucket in the catalogue, each overriding a
// single ABI's gas cost without touching the others.
func SetMeteringCall(c uint64)                 { setCost(func(v *meteringCosts) { v.call = c }) }
func SetMeteringPrint(c uint64)                { setCost(func(v *meteringCosts) { v.print = c }) }
func SetMeteringRemainingPoints(c uint64)      { setCost(func(v *meteringCosts) { v.remainingPoints = c }) }
func SetMeteringCreateSC(c uint64)             { setCost(func(v *meteringCosts) { v.createSC = c }) }
func SetMeteringSetData(c uint64)              { setCost(func(v *meteringCosts) { v.setData = c }) }
func SetMeteringGetData(c uint64)              { setCost(func(v *meteringCosts) { v.getData = c }) }
func SetMeteringDeleteData(c uint64)           { setCost(func(v *meteringCosts) { v.deleteData = c }) }
func SetMeteringHasData(c uint64)              { setCost(func(v *meteringCosts) { v.hasData = c }) }
func SetMeteringAppendData(c uint64)           { setCost(func(v *meteringCosts) { v.appendData = c }) }
func SetMeteringOwnedAddresses(c uint64)       { setCost(func(v *meteringCosts) { v.ownedAddresses = c }) }
func SetMeteringCallStack(c uint64)            { setCost(func(v *meteringCosts) { v.callStack = c }) }
func SetMeteringGenerateEvent(c uint64)        { setCost(func(v *meteringCosts) { v.generateEvent = c }) }
func SetMeteringTransferCoins(c uint64)        { setCost(func(v *meteringCosts) { v.transferCoins = c }) }
func SetMeteringGetBalance(c uint64)           { setCost(func(v *meteringCosts) { v.getBalance = c }) }
func SetMeteringHash(c uint64)                 { setCost(func(v *meteringCosts) { v.hash = c }) }
func SetMeteringSignatureVerify(c uint64)      { setCost(func(v *meteringCosts) { v.signatureVerify = c }) }
func SetMeteringAddressFromPublicKey(c uint64) { setCost(func(v *meteringCosts) { v.addressFromPublicKey = c }) }
func SetMeteringUnsafeRandom(c uint64)         { setCost(func(v *meteringCosts) { v.unsafeRandom = c }) }
func SetMeteringGetCallCoins(c uint64)         { setCost(func(v *meteringCosts) { v.getCallCoins = c }) }
func SetMeteringGetTime(c uint64)              { setCost(func(v *meteringCosts) { v.getTime = c }) }
func SetMeteringSendMessage(c uint64)          { setCost(func(v *meteringCosts) { v.sendMessage = c }) }
func SetMeteringCurrentPeriod(c uint64)        { setCost(func(v *meteringCosts) { v.currentPeriod = c }) }
func SetMeteringCurrentThread(c uint64)        { setCost(func(v *meteringCosts) { v.currentThread = c }) }
func SetMeteringSetBytecode(c uint64)          { setCost(func(v *meteringCosts) { v.setBytecode = c }) }

func setCost(mutate func(*meteringCosts)) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	mutate(&costs)
}

func currentCosts() meteringCosts {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return costs
}
