package wasmvm

// Address is an opaque, host-chosen identifier for a persisted contract.
// Uniqueness is entirely the embedder's responsibility; the runtime never
// inspects or derives addresses itself, only the ABI that forwards them.
type Address = string

// Bytecode is an immutable byte sequence: either a compiled module or an
// opaque value the host stores in the ledger on the contract's behalf.
type Bytecode = []byte

// Response is what an invocation surfaces to the embedder on success.
type Response struct {
	Ret          string
	RemainingGas uint64
}

// Interface is the host contract the embedder implements. Every ABI
// function delegates to it after deducting its gas cost and reading its
// guest-memory arguments. All methods are fallible; a returned error is
// turned into a guest trap carrying the host's message verbatim.
type Interface interface {
	// InitCall resolves the bytecode of the module living at addr so a
	// nested call can instantiate it, optionally attaching coins to the
	// call. FinishCall is invoked once the nested invocation returns,
	// success or failure, so the host can pop its own call stack; it is
	// also invoked when InitCall itself returns an error.
	InitCall(addr Address, coins uint64) (Bytecode, error)
	FinishCall() error

	Print(msg string) error

	CreateModule(bytecode Bytecode) (Address, error)
	UpdateModule(addr Address, bytecode Bytecode) error

	GetData(key []byte) ([]byte, error)
	SetData(key, value []byte) error
	DeleteData(key []byte) error
	HasData(key []byte) (bool, error)
	AppendData(key, value []byte) error

	GetDataFor(addr Address, key []byte) ([]byte, error)
	SetDataFor(addr Address, key, value []byte) error
	DeleteDataFor(addr Address, key []byte) error
	HasDataFor(addr Address, key []byte) (bool, error)
	AppendDataFor(addr Address, key, value []byte) error

	GetOwnedAddresses() ([]Address, error)
	GetCallStack() ([]Address, error)
	GenerateEvent(msg string) error

	TransferCoins(to Address, amount uint64) error
	TransferCoinsFor(from, to Address, amount uint64) error
	GetBalance() (uint64, error)
	GetBalanceFor(addr Address) (uint64, error)
	GetCallCoins() (uint64, error)

	Hash(data []byte) ([]byte, error)
	SignatureVerify(publicKey, signature, message []byte) (bool, error)
	AddressFromPublicKey(publicKey []byte) (Address, error)
	UnsafeRandom() (int64, error)

	GetTime() (int64, error)
	SendMessage(target Address, handler string, validityStart, validityEnd int64, maxGas uint64, rawCoins uint64, data []byte) error
	GetCurrentPeriod() (int64, error)
	GetCurrentThread() (int32, error)

	SetBytecode(bytecode Bytecode) error
	SetBytecodeFor(addr Address, bytecode Bytecode) error
}
