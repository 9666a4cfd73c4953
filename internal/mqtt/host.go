package mqtt

import (
	"net"
	"os"
)

// LocalAnnouncement describes this host: the first up, non-loopback interface
// with an IPv4 address supplies host and MAC. Falls back to the hostname.
func LocalAnnouncement(name string, port int) Announcement {
	a := Announcement{Device: DeviceType, Name: name, Port: port}

	ifaces, err := net.Interfaces()
	if err == nil {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
				continue
			}
			if ip := firstIPv4(iface); ip != "" {
				a.Host = ip
				a.MACAddress = iface.HardwareAddr.String()
				return a
			}
		}
	}
	if h, err := os.Hostname(); err == nil {
		a.Host = h
	}
	return a
}

func firstIPv4(iface net.Interface) string {
	addrs, err := iface.Addrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		if ipn, ok := addr.(*net.IPNet); ok {
			if v4 := ipn.IP.To4(); v4 != nil {
				return v4.String()
			}
		}
	}
	return ""
}
