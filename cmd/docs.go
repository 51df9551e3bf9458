package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/kio/ccleanplus/internal/docsite"
	"github.com/kio/ccleanplus/internal/fsutil"
	"github.com/kio/ccleanplus/internal/log"
)

var docsFlags struct {
	show    string
	export  string
	out     string
	dir     string
	noDir   bool
	timeout time.Duration
	force   bool
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage the documentation site configuration",
	Long: `Inspect, validate, export and build the documentation site.

The configuration comes from docs.config in the settings file when set,
otherwise the built-in default is used.`,
}

var docsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the site configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := loadSite()
		if err != nil {
			return err
		}
		switch docsFlags.show {
		case "yaml":
			data, err := site.Marshal()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		case "json":
			data, err := site.JSON()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		case "ts":
			return site.RenderConfigModule(os.Stdout)
		}
		return fmt.Errorf("unknown format %q (yaml, json or ts)", docsFlags.show)
	},
}

var docsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := docsFlags.out
		if out == "" {
			out = "site.yaml"
		}
		if _, err := os.Stat(out); err == nil && !docsFlags.force {
			return fmt.Errorf("%s already exists; pass --force to overwrite", out)
		}
		data, err := docsite.Default().Marshal()
		if err != nil {
			return err
		}
		if err := fsutil.WriteFileAtomic(out, data, 0o644); err != nil {
			return err
		}
		fmt.Println(okLine("Wrote " + out))
		return nil
	},
}

var docsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the site configuration",
	Long: `Check labels, link targets, sidebar prefixes and the other rules the
site generator relies on. When the docs directory exists, internal links
must also resolve to a page in it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := loadSite()
		if err != nil {
			return err
		}
		opts, err := validateOptions()
		if err != nil {
			return err
		}
		if err := site.Validate(opts); err != nil {
			printValidation(err)
			return errors.New("site configuration is invalid")
		}
		fmt.Println(okLine("Site configuration is valid"))
		return nil
	},
}

var docsRoutesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the pages found in the docs directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := docsite.DiscoverRoutes(docsDir())
		if err != nil {
			return err
		}
		t := newTable("Route", "Title")
		for _, r := range routes.Sorted() {
			t.Row(r, routes[r])
		}
		fmt.Println(t.Render())
		return nil
	},
}

var docsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the configuration for the site generator",
	Long:  "Write .vitepress/config.mts (or JSON with --format json) after validating the configuration.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := validSite()
		if err != nil {
			return err
		}
		out, err := exportSite(site)
		if err != nil {
			return err
		}
		fmt.Println(okLine("Wrote " + out))
		return nil
	},
}

var docsBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the configuration and build the site",
	Long:  "Export the configuration, then run the site builder and fail unless it exits with status zero.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := validSite()
		if err != nil {
			return err
		}
		docsFlags.export = "ts"
		if _, err := exportSite(site); err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()
		err = docsite.Build(ctx, docsite.BuildOptions{
			Dir:     docsDir(),
			Command: settings.Docs.Builder,
			Timeout: docsFlags.timeout,
			Log:     log.WithComponent("docs"),
		})
		if err != nil {
			return err
		}
		fmt.Println(okLine("Site built"))
		return nil
	},
}

func init() {
	docsShowCmd.Flags().StringVar(&docsFlags.show, "format", "yaml", "Output format: yaml, json or ts")
	docsInitCmd.Flags().StringVarP(&docsFlags.out, "out", "o", "", "Output file (default site.yaml)")
	docsInitCmd.Flags().BoolVar(&docsFlags.force, "force", false, "Overwrite an existing file")
	docsExportCmd.Flags().StringVar(&docsFlags.export, "format", "ts", "Output format: ts or json")
	docsExportCmd.Flags().StringVarP(&docsFlags.out, "out", "o", "", "Output file (default <docs>/.vitepress/config.mts)")
	docsBuildCmd.Flags().DurationVar(&docsFlags.timeout, "timeout", docsite.DefaultBuildTimeout, "Give up on the build after this long")

	for _, c := range []*cobra.Command{docsValidateCmd, docsRoutesCmd, docsExportCmd, docsBuildCmd} {
		c.Flags().StringVar(&docsFlags.dir, "docs-dir", "", "Documentation source directory (default from settings)")
	}
	docsValidateCmd.Flags().BoolVar(&docsFlags.noDir, "no-routes", false, "Skip checking links against the docs directory")
	docsExportCmd.Flags().BoolVar(&docsFlags.noDir, "no-routes", false, "Skip checking links against the docs directory")

	docsCmd.AddCommand(docsShowCmd, docsInitCmd, docsValidateCmd, docsRoutesCmd, docsExportCmd, docsBuildCmd)
}

func loadSite() (docsite.Site, error) {
	if settings.Docs.Config == "" {
		return docsite.Default(), nil
	}
	return docsite.Load(settings.Docs.Config)
}

func docsDir() string {
	if docsFlags.dir != "" {
		return docsFlags.dir
	}
	return settings.Docs.Dir
}

// validateOptions discovers routes when the docs directory exists.
func validateOptions() (docsite.ValidateOptions, error) {
	if docsFlags.noDir {
		return docsite.ValidateOptions{}, nil
	}
	dir := docsDir()
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		l := log.WithComponent("docs")
		l.Debug().Str("dir", dir).Msg("docs directory missing, skipping route checks")
		return docsite.ValidateOptions{}, nil
	}
	routes, err := docsite.DiscoverRoutes(dir)
	if err != nil {
		return docsite.ValidateOptions{}, err
	}
	return docsite.ValidateOptions{Routes: routes}, nil
}

func validSite() (docsite.Site, error) {
	site, err := loadSite()
	if err != nil {
		return site, err
	}
	opts, err := validateOptions()
	if err != nil {
		return site, err
	}
	if err := site.Validate(opts); err != nil {
		printValidation(err)
		return site, errors.New("refusing to export an invalid site configuration")
	}
	return site, nil
}

func exportSite(site docsite.Site) (string, error) {
	out := docsFlags.out
	if out == "" {
		name := "config.mts"
		if docsFlags.export == "json" {
			name = "config.json"
		}
		out = filepath.Join(docsDir(), ".vitepress", name)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	switch docsFlags.export {
	case "json":
		return out, site.WriteJSON(out)
	case "ts":
		return out, site.WriteConfigModule(out)
	}
	return "", fmt.Errorf("unknown format %q (ts or json)", docsFlags.export)
}

func printValidation(err error) {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		fmt.Println(errLine(err.Error()))
		return
	}
	for _, e := range merr.Errors {
		var fe *docsite.FieldError
		if errors.As(e, &fe) {
			fmt.Println(errLine(fe.Field + ": " + fe.Message))
			continue
		}
		fmt.Println(errLine(e.Error()))
	}
}
