package cmd

import (
	"context"
	"log/slog"

	"github.com/amora/amoractl/internal/backend/helpers"
	"github.com/amora/amoractl/internal/build"
	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/cmd/root/resources"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/config"
	"github.com/amora/amoractl/internal/iostreams"
	"github.com/spf13/cobra"
)

// MockHelper implements cmd.Helper with overridable function fields. Unset
// fields return zero values or the matching field below.
type MockHelper struct {
	Cmd         *cobra.Command
	Args        []string
	Streams     *iostreams.IOStreams
	Config      config.Hook
	Backend     helpers.BackendAPI
	Logger      *slog.Logger
	Interactive bool
	Format      common.OutputFormat
	Layout      common.Layout
	BuildInfo   *build.Info

	GetVerbMock     func() (verbs.VerbValue, error)
	GetResourceMock func() (resources.ResourceValue, error)
	GetConfigMock   func() (config.Hook, error)
	GetBackendMock  func(cfg config.Hook, logger *slog.Logger) (helpers.BackendAPI, error)
}

func (m *MockHelper) GetCmd() *cobra.Command {
	if m.Cmd == nil {
		m.Cmd = &cobra.Command{Use: "mock"}
		m.Cmd.SetContext(context.Background())
	}
	return m.Cmd
}

func (m *MockHelper) GetArgs() []string {
	return m.Args
}

func (m *MockHelper) GetVerb() (verbs.VerbValue, error) {
	if m.GetVerbMock != nil {
		return m.GetVerbMock()
	}
	return "", nil
}

func (m *MockHelper) GetResource() (resources.ResourceValue, error) {
	if m.GetResourceMock != nil {
		return m.GetResourceMock()
	}
	return "", nil
}

func (m *MockHelper) GetStreams() *iostreams.IOStreams {
	if m.Streams == nil {
		s := iostreams.NewTestIOStreamsOnly()
		m.Streams = &s
	}
	return m.Streams
}

func (m *MockHelper) GetConfig() (config.Hook, error) {
	if m.GetConfigMock != nil {
		return m.GetConfigMock()
	}
	return m.Config, nil
}

func (m *MockHelper) GetOutputFormat() (common.OutputFormat, error) {
	return m.Format, nil
}

func (m *MockHelper) GetLayout() (common.Layout, error) {
	return m.Layout, nil
}

func (m *MockHelper) IsInteractive() (bool, error) {
	return m.Interactive, nil
}

func (m *MockHelper) GetLogger() (*slog.Logger, error) {
	if m.Logger == nil {
		m.Logger = slog.New(slog.DiscardHandler)
	}
	return m.Logger, nil
}

func (m *MockHelper) GetBuildInfo() (*build.Info, error) {
	if m.BuildInfo != nil {
		return m.BuildInfo, nil
	}
	return &build.Info{Version: "dev"}, nil
}

func (m *MockHelper) GetContext() context.Context {
	if ctx := m.GetCmd().Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (m *MockHelper) GetBackend(cfg config.Hook, logger *slog.Logger) (helpers.BackendAPI, error) {
	if m.GetBackendMock != nil {
		return m.GetBackendMock(cfg, logger)
	}
	return m.Backend, nil
}
