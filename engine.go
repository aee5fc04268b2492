// Package wasmvm embeds wasmer-go to run compiled WebAssembly smart
// contracts under a deterministic compilation profile and a gas budget.
//
// Gas is charged entirely in the ABI prologues (see abi.go): wasmer-go
// exposes no compiler-level metering middleware, so there is no hook to
// charge gas per guest instruction. A guest function that loops without
// ever calling back into the host ABI will run to completion (or trap
// for an unrelated reason) without ever consuming gas, which weakens the
// "gas is the sole bound on execution" guarantee to "gas bounds every
// loop that crosses the ABI boundary." Nested calls still exhaust
// correctly: the callee's counter is seeded with the caller's remaining
// gas, the caller adopts the callee's remaining gas on return, and a
// callee that runs out of gas drops the caller's counter to zero too.
package wasmvm

import (
	"go.uber.org/multierr"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// createInstance compiles and instantiates module with imports resolved
// against the ABI catalogue under the "env" (guest-runtime) and "massa"
// (project-specific) namespaces. It compiles with wasmer-go's default
// engine configuration: no single-pass compiler is selected, and NaN
// canonicalisation, stack checking, and the threads/SIMD/multi-value
// feature switches are not set here. This runtime
// cannot attach a compiler-level metering middleware -- wasmer-go
// exposes no such hook -- so gas is enforced entirely by the ABI
// prologues in abi.go.
func createInstance(limit uint64, moduleBytes []byte, env *Env) (*wasmer.Instance, error) {
	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)

	module, err := wasmer.NewModule(store, moduleBytes)
	if err != nil {
		return nil, wrapError(KindCompilationError, err, "failed to compile module")
	}

	if err := validateMemoryLimit(module, MaxNumberOfPages()); err != nil {
		return nil, err
	}

	importObject := wasmer.NewImportObject()
	importObject.Register("env", map[string]wasmer.IntoExtern{
		"abort": wasmer.NewFunctionWithEnvironment(store,
			wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32, wasmer.I32, wasmer.I32), wasmer.NewValueTypes()),
			env, assemblyScriptAbort),
	})
	importObject.Register("massa", map[string]wasmer.IntoExtern{
		"assembly_script_print":                     wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes()), env, asPrint),
		"assembly_script_call":                      wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32, wasmer.I32), wasmer.NewValueTypes(wasmer.I32)), env, asCall),
		"assembly_script_get_remaining_gas":          wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I32)), env, asGetRemainingGas),
		"assembly_script_create_sc":                  wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes(wasmer.I32)), env, asCreateSC),
		"assembly_script_set_data":                   wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32), wasmer.NewValueTypes()), env, asSetData),
		"assembly_script_set_data_for":               wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32, wasmer.I32), wasmer.NewValueTypes()), env, asSetDataFor),
		"assembly_script_get_data":                   wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes(wasmer.I32)), env, asGetData),
		"assembly_script_get_data_for":                wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32), wasmer.NewValueTypes(wasmer.I32)), env, asGetDataFor),
		"assembly_script_delete_data":                 wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes()), env, asDeleteData),
		"assembly_script_delete_data_for":             wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32), wasmer.NewValueTypes()), env, asDeleteDataFor),
		"assembly_script_append_data":                 wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32), wasmer.NewValueTypes()), env, asAppendData),
		"assembly_script_append_data_for":             wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32, wasmer.I32), wasmer.NewValueTypes()), env, asAppendDataFor),
		"assembly_script_has_data":                    wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes(wasmer.I32)), env, asHasData),
		"assembly_script_has_data_for":                wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32), wasmer.NewValueTypes(wasmer.I32)), env, asHasDataFor),
		"assembly_script_get_owned_addresses":         wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I32)), env, asGetOwnedAddresses),
		"assembly_script_get_owned_addresses_raw":     wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I32)), env, asGetOwnedAddressesRaw),
		"assembly_script_get_call_stack":              wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I32)), env, asGetCallStack),
		"assembly_script_get_call_stack_raw":          wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I32)), env, asGetCallStackRaw),
		"assembly_script_generate_event":              wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes()), env, asGenerateEvent),
		"assembly_script_transfer_coins":              wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I64), wasmer.NewValueTypes()), env, asTransferCoins),
		"assembly_script_transfer_coins_for":          wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32, wasmer.I64), wasmer.NewValueTypes()), env, asTransferCoinsFor),
		"assembly_script_get_balance":                 wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I64)), env, asGetBalance),
		"assembly_script_get_balance_for":             wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes(wasmer.I64)), env, asGetBalanceFor),
		"assembly_script_hash":                        wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes(wasmer.I32)), env, asHash),
		"assembly_script_signature_verify":            wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32, wasmer.I32), wasmer.NewValueTypes(wasmer.I32)), env, asSignatureVerify),
		"assembly_script_address_from_public_key":     wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes(wasmer.I32)), env, asAddressFromPublicKey),
		"assembly_script_unsafe_random":                wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I64)), env, asUnsafeRandom),
		"assembly_script_get_call_coins":               wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I64)), env, asGetCallCoins),
		"assembly_script_get_time":                     wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I64)), env, asGetTime),
		"assembly_script_send_message":                 wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32, wasmer.I64, wasmer.I64, wasmer.I64, wasmer.I64, wasmer.I32), wasmer.NewValueTypes()), env, asSendMessage),
		"assembly_script_get_current_period":           wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I64)), env, asGetCurrentPeriod),
		"assembly_script_get_current_thread":           wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(), wasmer.NewValueTypes(wasmer.I32)), env, asGetCurrentThread),
		"assembly_script_set_bytecode":                 wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32), wasmer.NewValueTypes()), env, asSetBytecode),
		"assembly_script_set_bytecode_for":             wasmer.NewFunctionWithEnvironment(store, wasmer.NewFunctionType(wasmer.NewValueTypes(wasmer.I32, wasmer.I32), wasmer.NewValueTypes()), env, asSetBytecodeFor),
	})

	instance, err := wasmer.NewInstance(module, importObject)
	if err != nil {
		return nil, wrapError(KindInstantiationError, err, "failed to instantiate module")
	}
	return instance, nil
}

// exec drives one invocation: build (or reuse) an Instance and its
// bound Env, allocate param as a guest string, invoke fn, and interpret
// the result. When instance is non-nil it must be paired with the exact
// Env createInstance bound its imports to -- the gas counter lives on
// that Env, not on the Instance, so reusing the instance without its
// Env would silently meter against the wrong counter. Passing both nil
// asks exec to build a fresh pair.
func exec(limit uint64, instance *wasmer.Instance, env *Env, moduleBytes []byte, fn, param string, iface Interface) (resp Response, err error) {
	metricsInvocationsTotal.Inc()
	logger.Debugw("executing guest function", "function", fn, "gas_limit", limit)
	defer func() {
		if err != nil {
			metricsTrapsTotal.Inc()
			logger.Errorw("guest invocation failed", "function", fn, "error", err)
		}
	}()

	if instance == nil {
		env = newEnv(iface, limit)
		instance, err = createInstance(limit, moduleBytes, env)
		if err != nil {
			return Response{}, err
		}
		defer func() {
			if cerr := closeInstance(instance); cerr != nil {
				err = multierr.Append(err, cerr)
			}
		}()
	}

	paramOffset, err := allocateGuestString(env, param)
	if err != nil {
		return Response{}, err
	}

	exported, err := instance.Exports.GetFunction(fn)
	if err != nil {
		return Response{}, wrapError(KindLinkError, err, "module does not export function %q", fn)
	}

	raw, callErr := exported(int32(paramOffset))
	if callErr != nil {
		if env.remainingPoints() == 0 {
			return Response{}, gasExhausted(fn)
		}
		return Response{}, wrapError(KindHostError, callErr, "guest trap in %q", fn)
	}

	metricsGasConsumedTotal.Add(float64(limit - env.remainingPoints()))

	if fn == MainEntryPoint {
		return Response{Ret: "0", RemainingGas: env.remainingPoints()}, nil
	}

	ret, err := decodeReturn(instance, env, raw)
	if err != nil {
		return Response{}, err
	}
	return Response{Ret: ret, RemainingGas: env.remainingPoints()}, nil
}

// decodeReturn reads a function's raw wasmer return value as a guest
// string offset, or reports an empty string if the function returned
// nothing, or ReturnTypeError if it returned something that is not a
// valid i32 memory offset.
func decodeReturn(instance *wasmer.Instance, env *Env, raw interface{}) (string, error) {
	if raw == nil {
		return "", nil
	}
	offset, ok := raw.(int32)
	if !ok {
		return "", newError(KindReturnTypeError, "function did not return an i32 offset")
	}
	memory, err := env.memoryHandle()
	if err != nil {
		return "", err
	}
	s, err := readGuestString(memory, uint32(offset))
	if err != nil {
		return "", wrapError(KindReturnTypeError, err, "returned offset %d is not a valid guest string", offset)
	}
	return s, nil
}

// closeInstance releases the Instance's resources, recovering from a
// panic inside wasmer-go's cgo teardown path rather than letting it
// escape past an in-flight trap.
func closeInstance(instance *wasmer.Instance) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newError(KindInstantiationError, "panic while closing instance: %v", r)
		}
	}()
	instance.Close()
	return nil
}

// RunMain runs the module's conventional entry point ("main") with an
// empty argument, or returns limit unchanged if the module does not
// export it.
func RunMain(moduleBytes []byte, limit uint64, iface Interface) (gas uint64, err error) {
	env := newEnv(iface, limit)
	instance, err := createInstance(limit, moduleBytes, env)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := closeInstance(instance); cerr != nil {
			err = multierr.Append(err, cerr)
		}
	}()

	if _, getErr := instance.Exports.GetFunction(MainEntryPoint); getErr != nil {
		return limit, nil
	}
	resp, err := exec(limit, instance, env, moduleBytes, MainEntryPoint, "", iface)
	if err != nil {
		return 0, err
	}
	return resp.RemainingGas, nil
}

// RunFunction runs a named exported function with param and returns the
// remaining gas.
func RunFunction(moduleBytes []byte, limit uint64, fn, param string, iface Interface) (uint64, error) {
	resp, err := exec(limit, nil, nil, moduleBytes, fn, param, iface)
	if err != nil {
		return 0, err
	}
	return resp.RemainingGas, nil
}
