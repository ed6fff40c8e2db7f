package cmd

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/ledgerline/guideline-converter/internal/api"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversion API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		addr := cfg.Serve.Addr
		if addrFlag != "" {
			addr = addrFlag
		}

		app := fiber.New(fiber.Config{
			AppName:   "guideline-converter",
			BodyLimit: 32 << 20,
		})
		h := &api.Handler{Config: cfg}
		h.Register(app)

		fmt.Printf("Listening on %s\n", addr)
		return app.Listen(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
