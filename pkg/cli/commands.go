package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mchmarny/docnav/pkg/schema"
	"github.com/mchmarny/docnav/pkg/sidebar"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a sidebar document",
		Long: `Validate checks a sidebar document against the JSON Schema and the
structural rules: known node types, non-empty ids and labels, hrefs on links,
non-empty categories and unique ids.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}

			path := cfg.SidebarFile
			if len(args) == 1 {
				path = args[0]
			}

			s, err := loadSidebar(path)
			if err != nil {
				return err
			}

			if path == "" {
				v, err := schema.NewValidator()
				if err != nil {
					return err
				}
				if err := v.Validate(s); err != nil {
					return err
				}
			}

			if err := s.Validate(cfg.ValidateOptions()...); err != nil {
				return fmt.Errorf("sidebar is invalid:\n%w", err)
			}

			st := s.Count()
			name := path
			if name == "" {
				name = "built-in sidebar"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d groups, %d categories, %d docs, %d links)\n",
				name, len(s.Groups), st.Categories, st.Docs, st.Links)

			return nil
		},
	}
}

func newRenderCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "render [group]",
		Short: "Render a sidebar group in order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}

			s, err := loadSidebar(cfg.SidebarFile)
			if err != nil {
				return err
			}

			group := sidebar.GroupDocs
			if len(args) == 1 {
				group = args[0]
			}

			entries, err := s.Entries(group, cfg.Resolver())
			if err != nil {
				return err
			}

			return writeEntries(cmd.OutOrStdout(), entries, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "outline", "Output format (outline|table|json)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"outline", "table", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func writeEntries(w io.Writer, entries []sidebar.Entry, format string) error {
	switch format {
	case "outline", "":
		return sidebar.RenderOutline(w, entries)
	case "table":
		sidebar.RenderTable(w, entries)
		return nil
	case "json":
		return writeJSON(w, entries)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newRoutesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the URL of every doc and link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}

			s, err := loadSidebar(cfg.SidebarFile)
			if err != nil {
				return err
			}

			routes := cfg.Resolver().Routes(s)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), routes)
			}

			sidebar.RenderRoutes(cmd.OutOrStdout(), routes)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the route table as JSON")

	return cmd
}

func newExportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the sidebar as a YAML or JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}

			f, err := sidebar.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := loadSidebar(cfg.SidebarFile)
			if err != nil {
				return err
			}

			return sidebar.Encode(cmd.OutOrStdout(), s, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Document format (yaml|json)")

	return cmd
}

func newSchemaCommand() *cobra.Command {
	var reflected bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of sidebar documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := schema.Embedded()

			if reflected {
				var err error
				if out, err = schema.Generate(); err != nil {
					return fmt.Errorf("generate schema: %w", err)
				}
				out = append(out, '\n')
			}

			_, err := cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&reflected, "reflect", false, "Print the schema reflected from the Go types instead of the validation schema")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n", appName, Version, Commit, Date)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}
