package requests

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// LoadWorkload reads a YAML (or JSON) workload file.
func LoadWorkload(path string) (ScheduleRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScheduleRequest{}, fmt.Errorf("read workload: %w", err)
	}
	req, err := ParseWorkload(data)
	if err != nil {
		return ScheduleRequest{}, fmt.Errorf("parse workload %s: %w", path, err)
	}
	return req, nil
}

func ParseWorkload(data []byte) (ScheduleRequest, error) {
	var req ScheduleRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return ScheduleRequest{}, err
	}
	if len(req.Processes) == 0 {
		return ScheduleRequest{}, fmt.Errorf("workload defines no processes")
	}
	return req, nil
}
