package core

// DebugWriter is a function type for writing diagnostic messages.
type DebugWriter func(string)

// debugPrintln is the platform diagnostic sink. No-op by default so the
// core stays silent on targets that never wire one up.
var debugPrintln DebugWriter = func(string) {}

// SetDebugWriter sets the platform-specific diagnostic output function.
// Targets redirect this to UART, USB serial, stderr, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// DebugPrintln writes one diagnostic line.
func DebugPrintln(msg string) {
	debugPrintln(msg)
}

// itoa converts an integer to a string without the fmt package.
// Lightweight alternative for embedded targets.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}
	if negative {
		digits++
	}

	buf := make([]byte, digits)
	pos := digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}
	if negative {
		buf[0] = '-'
	}
	return string(buf)
}
