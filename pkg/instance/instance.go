package instance

import "os"

// GetID returns the process instance identifier used in boot logs: the
// platform dyno name, then the container hostname, then "local".
func GetID() string {
	for _, key := range []string{"DYNO", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
