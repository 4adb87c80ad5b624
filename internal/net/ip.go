package net

import (
	"fmt"
	"log"
	"net"
	"strings"
)

// LinkScheme prefixes share links handed to viewers.
const LinkScheme = "rectboard://"

// GetOutgoingIP finds the local address other machines can reach us on.
func GetOutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// firstIPv4 is used on networks without internet access.
func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	log.Println("[FEED] No suitable local IP found, share link uses loopback")
	return net.IPv4(127, 0, 0, 1)
}

// ShareLink builds the link a viewer opens to follow a board.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("%s%s", LinkScheme, net.JoinHostPort(host, fmt.Sprint(port)))
}

// FeedURL turns a share link into the websocket URL of its feed.
func FeedURL(link string) (string, error) {
	if !strings.HasPrefix(link, LinkScheme) {
		return "", fmt.Errorf("not a share link: %q", link)
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, LinkScheme), "/")
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", fmt.Errorf("bad share link %q: %w", link, err)
	}
	return "ws://" + addr + FeedPath, nil
}
