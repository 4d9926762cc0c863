package sender

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/AnyUserName/inkframe-cli/internal/device"
)

// probeTimeout bounds one discovery probe. Candidates that are down
// should fail fast.
const probeTimeout = 2 * time.Second

// Hosts commonly handed out to embedded boards by home routers, probed
// in order.
var probeSuffixes = []string{"100", "101", "200", "150"}

// Discover scans the local /24 for a device answering the profile's
// status path with an e-paper service string. Returns the host that
// answered, or an error when nothing did.
func Discover(ctx context.Context, prof device.Profile, log *slog.Logger) (string, error) {
	if log == nil {
		log = slog.Default()
	}

	base, err := localNetworkBase()
	if err != nil {
		return "", fmt.Errorf("discover: %w", err)
	}
	log.Debug("scanning network", "base", base+"0/24")

	for _, suffix := range probeSuffixes {
		host := base + suffix
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		st, err := New(host, prof, probeTimeout, log).Status(probeCtx)
		cancel()
		if err != nil {
			log.Debug("probe failed", "host", host, "error", err)
			continue
		}
		if strings.Contains(strings.ToLower(st.Service), "epaper") {
			log.Debug("device found", "host", host, "service", st.Service)
			return host, nil
		}
	}
	return "", fmt.Errorf("discover: no e-paper device answered on %s0/24", base)
}

// localNetworkBase returns the local /24 prefix ("192.168.1.") of the
// interface that routes outward. The dial never sends a packet; it only
// resolves the preferred source address.
func localNetworkBase() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP.To4() == nil {
		return "", fmt.Errorf("no local IPv4 address")
	}
	ip := addr.IP.To4()
	return fmt.Sprintf("%d.%d.%d.", ip[0], ip[1], ip[2]), nil
}
