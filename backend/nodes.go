package backend

import (
	"net/url"
	"time"

	"github.com/go-ping/ping"
	"github.com/sirupsen/logrus"
)

// SelectEndpoint probes the configured RPC endpoints and returns the one
// with the lowest average round-trip time. Endpoints that cannot be probed
// are skipped; if none respond the first endpoint is used as-is.
func SelectEndpoint(endpoints []string, log *logrus.Entry) string {
	if len(endpoints) == 0 {
		return ""
	}
	if len(endpoints) == 1 {
		return endpoints[0]
	}

	best := endpoints[0]
	bestRtt := time.Duration(0)
	found := false
	for _, endpoint := range endpoints {
		rtt, err := probe(endpoint)
		if err != nil {
			log.WithError(err).WithField("endpoint", endpoint).Debug("endpoint probe failed")
			continue
		}
		log.WithFields(logrus.Fields{"endpoint": endpoint, "rtt": rtt}).Debug("endpoint probe")
		if !found || rtt < bestRtt {
			best = endpoint
			bestRtt = rtt
			found = true
		}
	}
	return best
}

func probe(endpoint string) (time.Duration, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return 0, err
	}
	pinger, err := ping.NewPinger(u.Hostname())
	if err != nil {
		return 0, err
	}
	pinger.Count = 3
	pinger.Timeout = 2 * time.Second
	if err := pinger.Run(); err != nil {
		return 0, err
	}
	return pinger.Statistics().AvgRtt, nil
}
