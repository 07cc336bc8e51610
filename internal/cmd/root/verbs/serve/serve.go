package serve

import (
	"context"
	"fmt"
	"strings"

	"github.com/amora/amoractl/internal/cmd"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/amora/amoractl/internal/web"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	Verb = verbs.Serve

	addrFlagName     = "addr"
	siteNameFlagName = "site-name"
)

var (
	serveUse = Verb.String()

	serveShort = i18n.T("root.verbs.serve.serveShort", "Serve the public legal pages and the account deletion form")

	serveLong = normalizers.LongDesc(i18n.T("root.verbs.serve.serveLong",
		`Start a web server with the privacy policy, the terms of service and the
account deletion form required by the app stores.

Deletion requests are forwarded to the backend configured for the profile.
The server settings are read from AMORACTL_SERVE_* environment variables and
the flags below override them. The server stops on SIGINT or SIGTERM.`))

	serveExamples = normalizers.Examples(i18n.T("root.verbs.serve.serveExamples",
		fmt.Sprintf(`
	# Serve on the default address (:8080)
	%[1]s serve

	# Serve on a different port against a staging backend
	%[1]s serve --addr :9000 --base-url https://staging.amora.app/api`, meta.CLIName)))
)

func NewServeCmd() (*cobra.Command, error) {
	c := &cobra.Command{
		Use:     serveUse,
		Short:   serveShort,
		Long:    serveLong,
		Example: serveExamples,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			c.SetContext(context.WithValue(ctx, verbs.Verb, Verb))
			return rescommon.PreRunE("serve")(c, args)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return run(cmd.BuildHelper(c, args))
		},
	}

	rescommon.AddBackendFlags(Verb, c)
	c.Flags().String(addrFlagName, "", "Address to listen on. Overrides AMORACTL_SERVE_ADDR.")
	c.Flags().String(siteNameFlagName, "", "Site name shown in the page header. Overrides AMORACTL_SERVE_SITE_NAME.")

	return c, nil
}

func run(helper cmd.Helper) error {
	cfg, err := serverConfig(helper.GetCmd().Flags())
	if err != nil {
		return err
	}

	backend, logger, err := rescommon.Backend(helper)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(cfg, backend.GetAccountDeletionAPI(), logger)
	if err != nil {
		return cmd.PrepareExecutionErrorWithHelper(helper, "failed to start the web server", err)
	}

	fmt.Fprintf(helper.GetStreams().Out, "Serving %s on %s\n", cfg.SiteName, displayAddr(cfg.Addr))
	if err := srv.Run(helper.GetContext()); err != nil {
		return cmd.PrepareExecutionErrorWithHelper(helper, "web server stopped", err)
	}
	return nil
}

// serverConfig reads the environment and applies the flags that were set.
func serverConfig(flags *pflag.FlagSet) (web.Config, error) {
	cfg, err := web.LoadConfig()
	if err != nil {
		return web.Config{}, &cmd.ConfigurationError{Err: err}
	}
	if flags.Changed(addrFlagName) {
		cfg.Addr, _ = flags.GetString(addrFlagName)
	}
	if flags.Changed(siteNameFlagName) {
		cfg.SiteName, _ = flags.GetString(siteNameFlagName)
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return web.Config{}, &cmd.ConfigurationError{Err: fmt.Errorf("%s cannot be empty", addrFlagName)}
	}
	return cfg, nil
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
