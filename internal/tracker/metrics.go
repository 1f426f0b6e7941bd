package tracker

import "github.com/prometheus/client_golang/prometheus"

// Prometheus counters for the tracker's maintenance lane, exposed
// alongside the snapshot interface per spec.md §7 ("Counters are exposed
// through the snapshot interface for observability"). Grounded on
// plane-watch-pw-pipeline's use of client_golang for exactly this kind of
// pipeline counter.
var (
	stalePrunedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adsb_tracker_stale_pruned_total",
		Help: "Aircraft removed by stale-timeout pruning.",
	})
	phantomPrunedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adsb_tracker_phantom_pruned_total",
		Help: "Aircraft removed by phantom pruning (never produced a position).",
	})
	cprZoneMismatchTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adsb_tracker_cpr_zone_mismatch_total",
		Help: "CPR pairs discarded because even/odd frames fell in different NL zones.",
	})
)

func init() {
	prometheus.MustRegister(stalePrunedTotal, phantomPrunedTotal, cprZoneMismatchTotal)
}
