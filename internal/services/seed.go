package services

import (
	"log"

	"commandcenter/internal/models"
)

// SeedSampleCommands registers two illustrative commands when the registry is
// empty, so a fresh process has something to show and run. Seeding goes
// through Save, so subscribers attached this early see the created events.
func SeedSampleCommands(registry *RegistryService) error {
	if registry.Count() > 0 {
		return nil
	}

	samples := []struct {
		name        string
		executable  string
		args        []string
		description string
	}{
		{
			name:        "List running processes",
			executable:  "/bin/ps",
			args:        []string{"aux"},
			description: "Returns the current process list",
		},
		{
			name:        "Ping remote host",
			executable:  "/sbin/ping",
			args:        []string{"-c", "4", "127.0.0.1"},
			description: "Runs a connectivity test to the specified host",
		},
	}

	for _, sample := range samples {
		_, err := registry.Save(models.CommandMutation{
			Name:        sample.name,
			Executable:  sample.executable,
			Args:        sample.args,
			Description: sample.description,
			Tags:        []string{"sample"},
		})
		if err != nil {
			return err
		}
	}

	log.Printf("[Seed] Registered %d sample commands", len(samples))
	return nil
}
