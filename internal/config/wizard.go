package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to cifview! Let's configure the viewer.")
	fmt.Println()

	cfg := DefaultConfig()

	portPrompt := promptui.Prompt{
		Label:   "Port to listen on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	dataDirPrompt := promptui.Prompt{
		Label:   "Data directory (uploads and cache)",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataDirPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir prompt: %w", err)
	}

	examplesPrompt := promptui.Prompt{
		Label:   "Examples directory (bundled structures, optional)",
		Default: cfg.ExamplesDir,
	}
	if cfg.ExamplesDir, err = examplesPrompt.Run(); err != nil {
		return nil, fmt.Errorf("examples dir prompt: %w", err)
	}

	stylePrompt := promptui.Select{
		Label: "Default representation style",
		Items: Styles,
	}
	styleIdx, _, err := stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("style selection: %w", err)
	}
	cfg.Viewer.Style = Styles[styleIdx]

	colorPrompt := promptui.Select{
		Label: "Default color scheme",
		Items: ColorSchemes,
	}
	colorIdx, _, err := colorPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("color selection: %w", err)
	}
	cfg.Viewer.Color = ColorSchemes[colorIdx]

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
