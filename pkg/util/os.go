package util

import (
	"os"
	"strings"
)

// GetMachineID identifies this manager instance in metrics.
func GetMachineID() string {
	if machineID := strings.TrimSpace(os.Getenv("EDGEAP_MACHINE_ID")); machineID != "" {
		return machineID
	}
	// On Linux, the machine ID is stored in /etc/machine-id
	const machineIDPath = "/etc/machine-id"
	data, err := os.ReadFile(machineIDPath)
	if err != nil {
		if hostname, err := os.Hostname(); err == nil {
			return hostname
		}
		return "unknown-machine-id"
	}
	return strings.TrimSpace(string(data))
}
