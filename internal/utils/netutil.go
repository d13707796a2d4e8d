package utils

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

/**
 * Check whether a local TCP port accepts connections
 * @param {int} port - Port number to probe
 * @returns {bool} Returns true if a listener accepted the connection
 */
func CheckPortConnectable(port int) bool {
	timeout := time.Second
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", fmt.Sprintf("%d", port)), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

/**
 * Look up the bind address of a named network binding
 * @param {string} name - Interface name of the binding
 * @returns {string} Returns the first global unicast address, empty when unresolvable
 * @description
 * - Loopback and link-local addresses are skipped
 * - A missing interface resolves to empty rather than an error, the caller
 *   falls through to the next URL source
 */
func BindingAddress(name string) string {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return ""
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP
		if ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}

/**
 * Get the local fully qualified hostname
 * @returns {string} Returns the FQDN, falling back to the bare hostname
 * @description
 * - Resolves the hostname through the local resolver and prefers a dotted
 *   canonical name over the short form
 */
func HostFQDN() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	addrs, err := net.LookupHost(hostname)
	if err != nil {
		return hostname
	}
	for _, addr := range addrs {
		names, err := net.LookupAddr(addr)
		if err != nil {
			continue
		}
		for _, name := range names {
			name = strings.TrimSuffix(name, ".")
			if strings.Contains(name, ".") {
				return name
			}
		}
	}
	return hostname
}
