// ABOUTME: Duration parsing for configuration values
// ABOUTME: Accepts bare seconds, Go duration strings, and MM:SS or HH:MM:SS clocks

package duration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse converts s to a duration. A bare integer is a number of seconds.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second, nil
}

// OrDefault returns Parse(s), or def when s is empty or malformed.
func OrDefault(s string, def time.Duration) time.Duration {
	d, err := Parse(s)
	if err != nil {
		return def
	}
	return d
}

// Seconds renders d as whole seconds, the unit used by the environment.
func Seconds(d time.Duration) string {
	return strconv.Itoa(int(d / time.Second))
}
