package cmd

import (
	"net"
	"os"
	"strings"
)

// localFQDN resolves the fully-qualified name of this machine. The hostname
// is returned as-is when it already contains a dot; otherwise the reverse
// lookups of its addresses are searched for a dotted name. When nothing
// better is found the bare hostname is used.
func localFQDN() (string, error) {
	host, err := os.Hostname()
	if err != nil {
		return "", err
	}
	if strings.Contains(host, ".") {
		return host, nil
	}
	addrs, err := net.LookupHost(host)
	if err != nil {
		return host, nil
	}
	for _, addr := range addrs {
		names, err := net.LookupAddr(addr)
		if err != nil {
			continue
		}
		for _, name := range names {
			name = strings.TrimSuffix(name, ".")
			if strings.Contains(name, ".") {
				return name, nil
			}
		}
	}
	return host, nil
}
