package options

import (
	"net"
	"strconv"
	"strings"
)

const (
	DefaultServiceHost = "localhost"
	DefaultServicePort = 8181
	LoopbackHost       = "127.0.0.1"
	MaxPort            = 65535
)

// ServiceAddress is where the diagnostic service listens.
type ServiceAddress struct {
	Host string
	Port int
}

// DefaultServiceAddress returns localhost:8181.
func DefaultServiceAddress() ServiceAddress {
	return ServiceAddress{Host: DefaultServiceHost, Port: DefaultServicePort}
}

func (a ServiceAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// ParseServiceAddress parses an optional "host:port" value.
//
// An empty value yields def. The value is split at the last colon and
// brackets around the host are removed, so IPv6 hosts must be bracketed.
// A value with no colon is a bare port and keeps def.Host. An empty host
// means loopback.
func ParseServiceAddress(value string, def ServiceAddress) (ServiceAddress, error) {
	if value == "" {
		return def, nil
	}

	host, portText := def.Host, value
	if i := strings.LastIndexByte(value, ':'); i >= 0 {
		host, portText = value[:i], value[i+1:]
		if len(host) >= 2 && host[0] == '[' && host[len(host)-1] == ']' {
			host = host[1 : len(host)-1]
		} else if strings.Contains(host, ":") {
			return ServiceAddress{}, NewParseError(ErrorTypeInvalidAddress,
				"invalid host %q in %q, IPv6 addresses must be written as [host]:port", host, value)
		}
		if strings.ContainsAny(host, "[]") {
			return ServiceAddress{}, NewParseError(ErrorTypeInvalidAddress,
				"unbalanced brackets in %q", value)
		}
		if host == "" {
			host = LoopbackHost
		}
	}

	port, ok := parsePort(portText)
	if !ok {
		return ServiceAddress{}, NewParseError(ErrorTypeInvalidAddress,
			"invalid port %q in %q, expected 0-%d", portText, value, MaxPort)
	}
	return ServiceAddress{Host: host, Port: port}, nil
}

// parsePort accepts plain decimal digits only, no sign and no spaces.
func parsePort(s string) (int, bool) {
	if s == "" || len(s) > 5 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	port, err := strconv.Atoi(s)
	if err != nil || port > MaxPort {
		return 0, false
	}
	return port, true
}
