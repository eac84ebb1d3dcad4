package config

import (
	"fmt"

	"github.com/grovetools/launcher/errors"
)

var validShellProfiles = map[string]bool{
	"":         true,
	"posix":    true,
	"cmd":      true,
	"git-bash": true,
}

// validate performs the semantic checks the JSON schema cannot express.
func (c *Config) validate() error {
	for i, action := range c.Actions {
		if action == nil {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("actions[%d] is empty", i))
		}
		if action.Command == "" {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("actions[%d] must specify a command", i)).
				WithDetail("label", action.Label)
		}
		for name, variable := range action.Variables {
			if variable == nil {
				return errors.New(errors.ErrCodeConfigValidation,
					fmt.Sprintf("action '%s' declares variable %s without a definition", action.EffectiveLabel(), name)).
					WithDetail("variable", name)
			}
		}
	}

	for i, toggler := range c.Togglers {
		if toggler == nil {
			return errors.New(errors.ErrCodeTogglerInvalid, fmt.Sprintf("togglers[%d] is empty", i))
		}
		if toggler.Group == "" {
			return errors.New(errors.ErrCodeTogglerInvalid, fmt.Sprintf("togglers[%d] must specify a group", i))
		}
		if toggler.Command1.Label == "" || toggler.Command2.Label == "" {
			return errors.New(errors.ErrCodeTogglerInvalid,
				fmt.Sprintf("toggler '%s' must label both sides", toggler.Group)).
				WithDetail("group", toggler.Group)
		}
	}

	if !validShellProfiles[c.Shell.Profile] {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("unknown shell profile '%s' (expected posix, cmd or git-bash)", c.Shell.Profile)).
			WithDetail("profile", c.Shell.Profile)
	}

	return nil
}
