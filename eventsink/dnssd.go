package eventsink

import (
	"context"
	"os"

	"github.com/briarwolf/knockbell/detector"
	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
)

/*------------------------------------------------------------------
 *
 * Purpose:   	Announce this unit's event stream via DNS-SD so a client
 *		on the local network can discover it without a configured
 *		address. What gets announced is just presence plus the
 *		port passed to NewDNSSDAnnouncer; nothing in this package
 *		listens on that port.
 *
 *---------------------------------------------------------------*/

const dnssdServiceType = "_knockbell._tcp"

// DNSSDAnnouncer responds to mDNS queries for this unit's service. It does
// not itself handle Scan results - it is a discovery beacon, not an event
// sink - but satisfies Sink so it can sit in the same Multi as the others
// and get its Close() called on shutdown.
type DNSSDAnnouncer struct {
	cancel context.CancelFunc
}

// NewDNSSDAnnouncer starts responding on port for service name (falling
// back to the hostname when name is empty).
func NewDNSSDAnnouncer(name string, port int, logger *log.Logger) (*DNSSDAnnouncer, error) {
	if logger == nil {
		logger = log.Default()
	}

	if name == "" {
		if host, err := os.Hostname(); err == nil {
			name = host
		} else {
			name = "knockbell"
		}
	}

	cfg := dnssd.Config{Name: name, Type: dnssdServiceType, Port: port} //nolint:exhaustruct

	svc, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, err
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return nil, err
	}

	if _, err := responder.Add(svc); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := responder.Respond(ctx); err != nil {
			logger.Error("DNS-SD responder stopped", "err", err)
		}
	}()

	logger.Info("DNS-SD announcing", "name", name, "type", dnssdServiceType, "port", port)

	return &DNSSDAnnouncer{cancel: cancel}, nil
}

func (a *DNSSDAnnouncer) HandleScan(_ detector.Detections, _ detector.Diagnostics) {}

func (a *DNSSDAnnouncer) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	return nil
}
