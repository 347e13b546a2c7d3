package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/config"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/logging"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server would expose",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			// The catalog is static, so a key is not needed here.
			client := ghl.NewClient(ghl.Config{APIKey: "unused"}, logging.New(io.Discard, "silent", "json"))
			registry, err := buildRegistry(client, cfg.Tools.Enabled, log)
			if err != nil {
				return err
			}

			for _, tool := range registry.Tools() {
				fmt.Printf("%-32s %s\n", tool.Name, tool.Description)
			}
			fmt.Printf("\n%d tools\n", registry.Len())
			return nil
		},
	}
}
