package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewRegistry создаёт изолированный реестр с go- и process-коллекторами.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// register регистрирует коллектор; если такой уже зарегистрирован, возвращает существующий.
func register[T prometheus.Collector](registerer prometheus.Registerer, name string, collector T) T {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		existing, ok := alreadyRegistered.ExistingCollector.(T)
		if !ok {
			panic(fmt.Sprintf("collector %q already registered with unexpected type", name))
		}
		return existing
	}
	panic(fmt.Sprintf("register collector %q: %v", name, err))
}
