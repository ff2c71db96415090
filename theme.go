package views

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// applyTheme resolves the configured theme selection and exposes it to every
// template as a "theme" global: merged design tokens, partial template paths,
// and resolved asset URLs.
func (e *Environment) applyTheme() error {
	selection, err := e.opts.ThemeSelector.Select(e.opts.ThemeName, e.opts.ThemeVariant)
	if err != nil {
		return fmt.Errorf("views: select theme %q/%q: %w", e.opts.ThemeName, e.opts.ThemeVariant, err)
	}
	if selection == nil || selection.Manifest == nil {
		return fmt.Errorf("views: theme %q/%q resolved to an empty selection", e.opts.ThemeName, e.opts.ThemeVariant)
	}
	return e.engine.Globals(map[string]any{
		"theme": themeGlobals(selection),
	})
}

func themeGlobals(selection *theme.Selection) map[string]any {
	manifest := selection.Manifest

	tokens := make(map[string]any, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	partials := make(map[string]any, len(manifest.Templates))
	for key, value := range manifest.Templates {
		partials[key] = value
	}
	assets := make(map[string]any, len(manifest.Assets.Files))
	for key, file := range manifest.Assets.Files {
		assets[key] = assetURL(manifest.Assets.Prefix, file)
	}

	// Variant values override the base manifest.
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		for key, value := range variant.Templates {
			partials[key] = value
		}
		prefix := variant.Assets.Prefix
		if prefix == "" {
			prefix = manifest.Assets.Prefix
		}
		for key, file := range variant.Assets.Files {
			assets[key] = assetURL(prefix, file)
		}
	}

	return map[string]any{
		"name":     selection.Theme,
		"variant":  selection.Variant,
		"tokens":   tokens,
		"partials": partials,
		"assets":   assets,
	}
}

func assetURL(prefix, file string) string {
	if prefix == "" {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}
