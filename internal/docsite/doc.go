// Package docsite models the documentation website configuration for
// ccp: site metadata, navigation, sidebar, social links, footer, edit link,
// search and markdown options, in the shape a VitePress build consumes.
//
// # Loading
//
// Configurations are read from YAML with Load or Parse. Sidebar prefixes
// keep their file order, since the rendered sidebar depends on it.
//
// # Validation
//
// Validate checks the structural rules the site generator relies on:
//
//   - every sidebar key is a nav target or a prefix of a known route
//   - every nav entry and sidebar item has a label
//   - every internal link starts with the configured base path
//
// All problems are reported together as a *multierror.Error whose entries
// are *FieldError values.
//
// # Export
//
// MarshalJSON produces the framework's config object; RenderConfigModule
// wraps it as a .vitepress/config.mts module. Build runs the external
// builder as a smoke test.
package docsite
