package host

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Mount initializes p and attaches each of its commands to root. Plugin
// commands receive their arguments untouched: cobra flag parsing is disabled
// for them so that flags like --output reach the plugin's own parser.
func Mount(root *cobra.Command, p Plugin, hc Context) error {
	if p.Init != nil {
		if err := p.Init(hc); err != nil {
			return fmt.Errorf("unable to initialize plugin %s: %w", p.Name, err)
		}
	}

	for _, c := range p.Commands {
		if c.Handler == nil {
			return fmt.Errorf("plugin %s: command %q has no handler", p.Name, c.Name)
		}
		handler := c.Handler
		root.AddCommand(&cobra.Command{
			Use:                c.Name,
			Short:              c.Description,
			Long:               c.Description + "\n\n" + c.Usage,
			DisableFlagParsing: true,
			SilenceUsage:       true,
			Annotations:        map[string]string{"plugin": p.Name, "version": p.Version},
			RunE: func(cmd *cobra.Command, args []string) error {
				handler(cmd.Context(), hc, args)
				return nil
			},
		})
	}

	hc.Log().Debug(fmt.Sprintf("mounted plugin %s %s (%d commands)", p.Name, p.Version, len(p.Commands)))
	return nil
}
