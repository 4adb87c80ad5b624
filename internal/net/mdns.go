package net

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_rectboard._tcp"

// Advertise announces the feed on the local network. Close the returned
// server to withdraw it.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"RectBoard", "path=" + FeedPath})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] Advertising %s on port %d as %q", serviceType, port, host)
	return server, nil
}

// Browse looks for advertised boards for the given duration and reports each
// one as a share link.
func Browse(timeout time.Duration, found func(link string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(ShareLink(e.AddrV4.String(), e.Port))
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns query: %w", err)
	}
	return nil
}
