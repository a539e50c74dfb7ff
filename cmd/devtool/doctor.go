package main

import "fmt"

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Run check-deps and check-db and summarise"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	var failed []string
	for _, check := range []Command{&CheckDepsCommand{}, &CheckDBCommand{}} {
		if err := check.Run(nil); err != nil {
			PrintError("%s: %v", check.Name(), err)
			failed = append(failed, check.Name())
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("doctor found issues in %v", failed)
	}
	PrintSuccess("All systems operational!")
	return nil
}
