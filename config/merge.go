package config

// mergeConfigs merges an overlay configuration over a base. Actions and
// togglers are merged by identity (the overlay wins, new entries append in
// order), maps are merged key-wise and non-empty overlay scalars replace the
// base values.
func mergeConfigs(base, overlay *Config) *Config {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}

	result := *base

	if overlay.Name != "" {
		result.Name = overlay.Name
	}
	if overlay.Version != "" {
		result.Version = overlay.Version
	}
	if overlay.DefaultRootFolder != "" {
		result.DefaultRootFolder = overlay.DefaultRootFolder
	}
	if len(overlay.Workspaces) > 0 {
		result.Workspaces = overlay.Workspaces
	}

	if overlay.Shell.Command != "" {
		result.Shell.Command = overlay.Shell.Command
	}
	if len(overlay.Shell.Args) > 0 {
		result.Shell.Args = overlay.Shell.Args
	}
	if overlay.Shell.Profile != "" {
		result.Shell.Profile = overlay.Shell.Profile
	}

	if len(overlay.Variables) > 0 {
		merged := make(map[string]string, len(base.Variables)+len(overlay.Variables))
		for k, v := range base.Variables {
			merged[k] = v
		}
		for k, v := range overlay.Variables {
			merged[k] = v
		}
		result.Variables = merged
	}

	if len(overlay.Extensions) > 0 {
		merged := make(map[string]interface{}, len(base.Extensions)+len(overlay.Extensions))
		for k, v := range base.Extensions {
			merged[k] = v
		}
		for k, v := range overlay.Extensions {
			merged[k] = v
		}
		result.Extensions = merged
	}

	result.Actions = mergeActions(base.Actions, overlay.Actions)
	result.Togglers = mergeTogglers(base.Togglers, overlay.Togglers)

	return &result
}

func mergeActions(base, overlay []*Action) []*Action {
	if len(overlay) == 0 {
		return base
	}

	merged := make([]*Action, 0, len(base)+len(overlay))
	index := make(map[string]int, len(base))
	for _, action := range base {
		index[action.Identity()] = len(merged)
		merged = append(merged, action)
	}
	for _, action := range overlay {
		if i, ok := index[action.Identity()]; ok {
			merged[i] = action
			continue
		}
		index[action.Identity()] = len(merged)
		merged = append(merged, action)
	}
	return merged
}

func mergeTogglers(base, overlay []*TogglerCommand) []*TogglerCommand {
	if len(overlay) == 0 {
		return base
	}

	merged := make([]*TogglerCommand, 0, len(base)+len(overlay))
	index := make(map[string]int, len(base))
	for _, toggler := range base {
		index[toggler.Key()] = len(merged)
		merged = append(merged, toggler)
	}
	for _, toggler := range overlay {
		if i, ok := index[toggler.Key()]; ok {
			merged[i] = toggler
			continue
		}
		index[toggler.Key()] = len(merged)
		merged = append(merged, toggler)
	}
	return merged
}
