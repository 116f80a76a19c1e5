// internal/repository/lastlog/layout.go
package lastlog

// Layout describes one known on-disk arrangement of a lastlog record.
// All fields use the native byte order of the host, matching the
// database format's own lack of portability guarantees.
type Layout struct {
	Name      string
	TimeWidth int // epoch-seconds field, 4 or 8 bytes
	LineWidth int // terminal field, NUL-padded text
	HostWidth int // host field, NUL-padded text
}

// RecordSize returns the total width of one record in bytes.
func (l Layout) RecordSize() int {
	return l.TimeWidth + l.LineWidth + l.HostWidth
}

var (
	// LayoutGlibc is the glibc struct lastlog arrangement used by
	// /var/log/lastlog on Linux: 32-bit time, 32-byte line, 256-byte
	// host, 292 bytes per record. This is the canonical default.
	LayoutGlibc = Layout{Name: "glibc", TimeWidth: 4, LineWidth: 32, HostWidth: 256}

	// LayoutCompact is the 40-byte reference arrangement: 64-bit time
	// followed by a single 32-byte host/terminal field.
	LayoutCompact = Layout{Name: "compact", TimeWidth: 8, LineWidth: 0, HostWidth: 32}
)

// LayoutByName maps a configuration value to a known layout. The empty
// string selects the default.
func LayoutByName(name string) (Layout, bool) {
	switch name {
	case LayoutGlibc.Name, "":
		return LayoutGlibc, true
	case LayoutCompact.Name:
		return LayoutCompact, true
	}
	return Layout{}, false
}
