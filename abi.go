package wasmvm

import (
	"encoding/base64"
	"errors"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// Every ABI closure in this file obeys the same fixed prologue/epilogue:
// deduct gas before doing any work (a shortfall traps immediately, no
// host call made), fetch memory (absent memory traps), read string
// arguments, delegate to the host Interface (an error traps with the
// host's message verbatim), and allocate any result back into the guest
// heap through its own allocator export.

// abiError turns any error into a *wasmer.RuntimeError-raising Go error.
// wasmer-go surfaces a non-nil error from a host function as a guest
// trap, which is exactly the semantics the prologue contract wants: no
// value is returned to the guest and execution unwinds.
func abiError(err error) ([]wasmer.Value, error) {
	return nil, err
}

func assemblyScriptAbort(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	memory, _ := e.memoryHandle()
	msg, _ := readGuestString(memory, uint32(args[0].I32()))
	file, _ := readGuestString(memory, uint32(args[1].I32()))
	return abiError(newError(KindHostError, "abort: %s at %s:%d:%d", msg, file, args[2].I32(), args[3].I32()))
}

func asPrint(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().print); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	msg, err := readGuestString(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(err)
	}
	if err := e.iface.Print(msg); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

// asCall implements the nested-call protocol: resolve the
// callee's bytecode via InitCall, instantiate a fresh sandbox seeded with
// the caller's remaining gas, invoke it, then adopt its remaining gas as
// the caller's new remaining -- one conceptual budget across the call
// tree. If the callee runs out of gas, the caller's counter drops to zero
// as well. FinishCall runs on every exit path, success or trap, including
// a failed InitCall.
func asCall(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().call); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	address, errA := readGuestString(memory, uint32(args[0].I32()))
	function, errF := readGuestString(memory, uint32(args[1].I32()))
	param, errP := readGuestString(memory, uint32(args[2].I32()))
	if errA != nil || errF != nil || errP != nil {
		return abiError(newError(KindArgumentReadError, "cannot read address, function or param for call"))
	}

	defer e.iface.FinishCall()
	module, err := e.iface.InitCall(address, 0)
	if err != nil {
		return abiError(hostError(err))
	}

	resp, err := exec(e.remainingPoints(), nil, nil, module, function, param, e.iface)
	if err != nil {
		var vmErr *Error
		if errors.As(err, &vmErr) && vmErr.Kind == KindGasExhausted {
			e.setRemainingPoints(0)
		}
		return abiError(err)
	}
	e.setRemainingPoints(resp.RemainingGas)

	offset, err := allocateGuestString(e, resp.Ret)
	if err != nil {
		return abiError(err)
	}
	return []wasmer.Value{wasmer.NewI32(int32(offset))}, nil
}

func asGetRemainingGas(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().remainingPoints); err != nil {
		return abiError(err)
	}
	return []wasmer.Value{wasmer.NewI32(int32(e.remainingPoints()))}, nil
}

func asCreateSC(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().createSC); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	b64, err := readGuestString(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(err)
	}
	bytecode, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return abiError(wrapError(KindBase64DecodeError, err, "failed to decode module bytecode"))
	}
	addr, err := e.iface.CreateModule(bytecode)
	if err != nil {
		return abiError(hostError(err))
	}
	offset, err := allocateGuestString(e, addr)
	if err != nil {
		return abiError(err)
	}
	return []wasmer.Value{wasmer.NewI32(int32(offset))}, nil
}

func asSetData(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().setData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	key, errK := readGuestUtf8(memory, uint32(args[0].I32()))
	value, errV := readGuestUtf8(memory, uint32(args[1].I32()))
	if errK != nil || errV != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key or value"))
	}
	if err := e.iface.SetData(key, value); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asSetDataFor(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().setData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	addr, errA := readGuestString(memory, uint32(args[0].I32()))
	key, errK := readGuestUtf8(memory, uint32(args[1].I32()))
	value, errV := readGuestUtf8(memory, uint32(args[2].I32()))
	if errA != nil || errK != nil || errV != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key, value or address"))
	}
	if err := e.iface.SetDataFor(addr, key, value); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asGetData(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().getData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	key, err := readGuestUtf8(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key"))
	}
	data, err := e.iface.GetData(key)
	if err != nil {
		return abiError(hostError(err))
	}
	offset, err := allocateGuestBytes(e, data)
	if err != nil {
		return abiError(err)
	}
	return []wasmer.Value{wasmer.NewI32(int32(offset))}, nil
}

func asGetDataFor(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().getData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	addr, errA := readGuestString(memory, uint32(args[0].I32()))
	key, errK := readGuestUtf8(memory, uint32(args[1].I32()))
	if errA != nil || errK != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key or address"))
	}
	data, err := e.iface.GetDataFor(addr, key)
	if err != nil {
		return abiError(hostError(err))
	}
	offset, err := allocateGuestBytes(e, data)
	if err != nil {
		return abiError(err)
	}
	return []wasmer.Value{wasmer.NewI32(int32(offset))}, nil
}

func asDeleteData(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().deleteData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	key, err := readGuestUtf8(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key"))
	}
	if err := e.iface.DeleteData(key); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asDeleteDataFor(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().deleteData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	addr, errA := readGuestString(memory, uint32(args[0].I32()))
	key, errK := readGuestUtf8(memory, uint32(args[1].I32()))
	if errA != nil || errK != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key or address"))
	}
	if err := e.iface.DeleteDataFor(addr, key); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asAppendData(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().appendData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	key, errK := readGuestUtf8(memory, uint32(args[0].I32()))
	value, errV := readGuestUtf8(memory, uint32(args[1].I32()))
	if errK != nil || errV != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key or value"))
	}
	if err := e.iface.AppendData(key, value); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asAppendDataFor(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().appendData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	addr, errA := readGuestString(memory, uint32(args[0].I32()))
	key, errK := readGuestUtf8(memory, uint32(args[1].I32()))
	value, errV := readGuestUtf8(memory, uint32(args[2].I32()))
	if errA != nil || errK != nil || errV != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key, value or address"))
	}
	if err := e.iface.AppendDataFor(addr, key, value); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asHasData(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().hasData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	key, err := readGuestUtf8(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key"))
	}
	has, err := e.iface.HasData(key)
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI32(boolToI32(has))}, nil
}

func asHasDataFor(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().hasData); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	addr, errA := readGuestString(memory, uint32(args[0].I32()))
	key, errK := readGuestUtf8(memory, uint32(args[1].I32()))
	if errA != nil || errK != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of key or address"))
	}
	has, err := e.iface.HasDataFor(addr, key)
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI32(boolToI32(has))}, nil
}

func asGetOwnedAddresses(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	return listABI(env, currentCosts().ownedAddresses, func(e *Env) ([]Address, error) { return e.iface.GetOwnedAddresses() })
}

func asGetOwnedAddressesRaw(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	return rawListABI(env, currentCosts().ownedAddresses, func(e *Env) ([]Address, error) { return e.iface.GetOwnedAddresses() })
}

func asGetCallStack(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	return listABI(env, currentCosts().callStack, func(e *Env) ([]Address, error) { return e.iface.GetCallStack() })
}

func asGetCallStackRaw(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	return rawListABI(env, currentCosts().callStack, func(e *Env) ([]Address, error) { return e.iface.GetCallStack() })
}

// listABI and rawListABI share the gas/delegate/allocate shape for the two
// address-list ABI calls, differing only in their wire encoding: listABI
// uses the gojay-backed JSON-ish encoding, rawListABI a plain
// newline-joined list, matching the "configured vs raw" split in the
// catalogue table.
func listABI(env interface{}, cost uint64, fetch func(*Env) ([]Address, error)) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(cost); err != nil {
		return abiError(err)
	}
	addrs, err := fetch(e)
	if err != nil {
		return abiError(hostError(err))
	}
	encoded, err := encodeAddressList(addrs)
	if err != nil {
		return abiError(err)
	}
	offset, err := allocateGuestString(e, encoded)
	if err != nil {
		return abiError(err)
	}
	return []wasmer.Value{wasmer.NewI32(int32(offset))}, nil
}

func rawListABI(env interface{}, cost uint64, fetch func(*Env) ([]Address, error)) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(cost); err != nil {
		return abiError(err)
	}
	addrs, err := fetch(e)
	if err != nil {
		return abiError(hostError(err))
	}
	offset, err := allocateGuestString(e, joinRaw(addrs))
	if err != nil {
		return abiError(err)
	}
	return []wasmer.Value{wasmer.NewI32(int32(offset))}, nil
}

func asGenerateEvent(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().generateEvent); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	msg, err := readGuestString(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(err)
	}
	if err := e.iface.GenerateEvent(msg); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asTransferCoins(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().transferCoins); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	to, err := readGuestString(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(err)
	}
	if err := e.iface.TransferCoins(to, uint64(args[1].I64())); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asTransferCoinsFor(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().transferCoins); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	from, errF := readGuestString(memory, uint32(args[0].I32()))
	to, errT := readGuestString(memory, uint32(args[1].I32()))
	if errF != nil || errT != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of from or to address"))
	}
	if err := e.iface.TransferCoinsFor(from, to, uint64(args[2].I64())); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asGetBalance(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().getBalance); err != nil {
		return abiError(err)
	}
	balance, err := e.iface.GetBalance()
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI64(int64(balance))}, nil
}

func asGetBalanceFor(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().getBalance); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	addr, err := readGuestString(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(err)
	}
	balance, err := e.iface.GetBalanceFor(addr)
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI64(int64(balance))}, nil
}

func asHash(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().hash); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	data, err := readGuestUtf8(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(err)
	}
	digest, err := e.iface.Hash(data)
	if err != nil {
		return abiError(hostError(err))
	}
	offset, err := allocateGuestBytes(e, digest)
	if err != nil {
		return abiError(err)
	}
	return []wasmer.Value{wasmer.NewI32(int32(offset))}, nil
}

func asSignatureVerify(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().signatureVerify); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	pk, errPK := readGuestUtf8(memory, uint32(args[0].I32()))
	sig, errSig := readGuestUtf8(memory, uint32(args[1].I32()))
	msg, errMsg := readGuestUtf8(memory, uint32(args[2].I32()))
	if errPK != nil || errSig != nil || errMsg != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of public key, signature or message"))
	}
	ok, err := e.iface.SignatureVerify(pk, sig, msg)
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI32(boolToI32(ok))}, nil
}

func asAddressFromPublicKey(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().addressFromPublicKey); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	pk, err := readGuestUtf8(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(err)
	}
	addr, err := e.iface.AddressFromPublicKey(pk)
	if err != nil {
		return abiError(hostError(err))
	}
	offset, err := allocateGuestString(e, addr)
	if err != nil {
		return abiError(err)
	}
	return []wasmer.Value{wasmer.NewI32(int32(offset))}, nil
}

func asUnsafeRandom(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().unsafeRandom); err != nil {
		return abiError(err)
	}
	v, err := e.iface.UnsafeRandom()
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI64(v)}, nil
}

func asGetCallCoins(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().getCallCoins); err != nil {
		return abiError(err)
	}
	v, err := e.iface.GetCallCoins()
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI64(int64(v))}, nil
}

func asGetTime(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().getTime); err != nil {
		return abiError(err)
	}
	v, err := e.iface.GetTime()
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI64(v)}, nil
}

// asSendMessage schedules a deferred call against another address: a
// target address and handler function name, a validity window
// (validityStart/validityEnd, given in period numbers), a gas budget and
// coin amount for the eventual invocation, and an opaque data payload
// passed to the handler.
func asSendMessage(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().sendMessage); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	target, errT := readGuestString(memory, uint32(args[0].I32()))
	handler, errH := readGuestString(memory, uint32(args[1].I32()))
	data, errD := readGuestUtf8(memory, uint32(args[6].I32()))
	if errT != nil || errH != nil || errD != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer in send_message arguments"))
	}
	validityStart := args[2].I64()
	validityEnd := args[3].I64()
	maxGas := uint64(args[4].I64())
	rawCoins := uint64(args[5].I64())
	if err := e.iface.SendMessage(target, handler, validityStart, validityEnd, maxGas, rawCoins, data); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asGetCurrentPeriod(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().currentPeriod); err != nil {
		return abiError(err)
	}
	v, err := e.iface.GetCurrentPeriod()
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI64(v)}, nil
}

func asGetCurrentThread(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().currentThread); err != nil {
		return abiError(err)
	}
	v, err := e.iface.GetCurrentThread()
	if err != nil {
		return abiError(hostError(err))
	}
	return []wasmer.Value{wasmer.NewI32(v)}, nil
}

func asSetBytecode(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().setBytecode); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	b64, err := readGuestString(memory, uint32(args[0].I32()))
	if err != nil {
		return abiError(err)
	}
	bytecode, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return abiError(wrapError(KindBase64DecodeError, err, "failed to decode bytecode"))
	}
	if err := e.iface.SetBytecode(bytecode); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func asSetBytecodeFor(env interface{}, args []wasmer.Value) ([]wasmer.Value, error) {
	e := env.(*Env)
	if err := e.subRemainingPoints(currentCosts().setBytecode); err != nil {
		return abiError(err)
	}
	memory, err := e.memoryHandle()
	if err != nil {
		return abiError(err)
	}
	addr, errA := readGuestString(memory, uint32(args[0].I32()))
	b64, errB := readGuestString(memory, uint32(args[1].I32()))
	if errA != nil || errB != nil {
		return abiError(newError(KindArgumentReadError, "invalid pointer of address or bytecode"))
	}
	bytecode, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return abiError(wrapError(KindBase64DecodeError, err, "failed to decode bytecode"))
	}
	if err := e.iface.SetBytecodeFor(addr, bytecode); err != nil {
		return abiError(hostError(err))
	}
	return nil, nil
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
