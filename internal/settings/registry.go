package settings

import (
	"sort"
	"strings"
)

// CommandPathDefinition describes how a command alias resolves to an executable path.
type CommandPathDefinition struct {
	EnvironmentVariable string `mapstructure:"environment"`
	DefaultPath         string `mapstructure:"default"`
}

// CommandPathRegistry maps command aliases onto lazily resolved command path settings.
type CommandPathRegistry struct {
	settingsByAlias map[string]*CommandPathSetting
}

// NewCommandPathRegistry builds a registry from alias definitions. Aliases are matched case-insensitively.
func NewCommandPathRegistry(definitions map[string]CommandPathDefinition) *CommandPathRegistry {
	registry := &CommandPathRegistry{settingsByAlias: make(map[string]*CommandPathSetting, len(definitions))}
	for alias, definition := range definitions {
		normalizedAlias := normalizeAlias(alias)
		if len(normalizedAlias) == 0 {
			continue
		}
		registry.settingsByAlias[normalizedAlias] = NewCommandPathSetting(definition.EnvironmentVariable, definition.DefaultPath)
	}
	return registry
}

// Resolve returns the command path registered for the alias.
func (registry *CommandPathRegistry) Resolve(alias string) (string, bool) {
	if registry == nil {
		return "", false
	}
	setting, exists := registry.settingsByAlias[normalizeAlias(alias)]
	if !exists {
		return "", false
	}
	return setting.Path(), true
}

// ResolveOrPassthrough returns the registered path for the alias, or the alias itself when unregistered.
func (registry *CommandPathRegistry) ResolveOrPassthrough(commandOrAlias string) string {
	if resolvedPath, exists := registry.Resolve(commandOrAlias); exists {
		return resolvedPath
	}
	return commandOrAlias
}

// Aliases lists the registered aliases in lexical order.
func (registry *CommandPathRegistry) Aliases() []string {
	if registry == nil {
		return nil
	}
	aliases := make([]string, 0, len(registry.settingsByAlias))
	for alias := range registry.settingsByAlias {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

func normalizeAlias(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}
