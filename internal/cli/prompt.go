package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"github.com/stratacms/strata/internal/template/registry"
)

// isInteractive reports whether prompting the user is possible.
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// promptForProjectName interactively asks for the project name.
func promptForProjectName() (string, error) {
	var name string
	prompt := &survey.Input{
		Message: "Project name:",
		Default: "my-strata-app",
		Help:    "Used as the project directory name and substituted into template files",
	}

	err := survey.AskOne(prompt, &name,
		survey.WithValidator(survey.Required),
		survey.WithValidator(projectNameValidator))
	if err != nil {
		return "", err
	}
	return name, nil
}

// promptForTemplate interactively asks which template to use.
func promptForTemplate() (string, error) {
	templates := registry.All()
	options := make([]string, 0, len(templates))
	descriptions := make(map[string]string, len(templates))
	for _, t := range templates {
		options = append(options, t.Identifier)
		descriptions[t.Identifier] = t.Description
	}

	var choice string
	prompt := &survey.Select{
		Message: "Which template would you like to use?",
		Options: options,
		Default: registry.DefaultIdentifier,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}

	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return choice, nil
}

// projectNameValidator is a survey validator mirroring the workflow
// layer's project name rules, so invalid names are rejected at the
// prompt instead of after template resolution.
func projectNameValidator(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", val)
	}
	if strings.TrimSpace(str) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if strings.Contains(str, "..") {
		return fmt.Errorf("project name cannot contain '..'")
	}
	if strings.Contains(str, "/") || strings.Contains(str, "\\") {
		return fmt.Errorf("project name cannot contain path separators")
	}
	if strings.HasPrefix(str, ".") {
		return fmt.Errorf("project name cannot start with '.'")
	}
	return nil
}
