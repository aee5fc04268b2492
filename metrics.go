package wasmvm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// These counters give an embedder visibility into the runtime's behaviour
// across many invocations -- total gas burned, invocation volume, and
// trap rate -- the ecosystem-standard counter-at-the-boundary pattern,
// instrumented the way a long-lived Go service normally is rather than
// left to ad hoc logging.
var (
	metricsInvocationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wasmvm",
		Name:      "invocations_total",
		Help:      "Total number of RunMain/RunFunction/nested call invocations.",
	})
	metricsTrapsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wasmvm",
		Name:      "traps_total",
		Help:      "Total number of invocations that ended in an error: a guest trap, gas exhaustion, or a compile, instantiate or link failure.",
	})
	metricsGasConsumedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wasmvm",
		Name:      "gas_consumed_total",
		Help:      "Total gas consumed across all successful invocations.",
	})
)
