package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	OrdersRecorded prometheus.Counter
	OrdersRejected prometheus.Counter
	StatusRepairs  prometheus.Counter
	ManifestsBuilt prometheus.Counter
	ExportsServed  prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OrdersRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "oms_orders_recorded_total",
			Help: "Orders appended to the row store.",
		}),
		OrdersRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "oms_orders_rejected_total",
			Help: "Order drafts rejected by validation.",
		}),
		StatusRepairs: factory.NewCounter(prometheus.CounterOpts{
			Name: "oms_status_repairs_total",
			Help: "Pending orders flipped to shippable by contact repair.",
		}),
		ManifestsBuilt: factory.NewCounter(prometheus.CounterOpts{
			Name: "oms_manifests_built_total",
			Help: "Consolidation passes executed.",
		}),
		ExportsServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "oms_manifest_exports_total",
			Help: "Manifest spreadsheet downloads served.",
		}),
	}
}
