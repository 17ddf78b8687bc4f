package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/renderers/tui"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// app carries state shared by every subcommand.
type app struct {
	out     io.Writer
	errOut  io.Writer
	cfgFile string
	verbose bool

	cfg    Config
	logger *zap.Logger
	driver tui.PromptDriver
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "formschema",
		Short:         "Render, validate and preview declarative form schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.cfgFile, func(v *viper.Viper) error {
				return bindFlags(cmd, v)
			})
			if err != nil {
				return err
			}
			a.cfg = cfg

			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ~/.config/formschema/config.yaml)")
	flags.String("forms-dir", "", "directory of JSON/YAML forms (default: embedded examples)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRenderCmd(a),
		newValidateCmd(a),
		newPreviewCmd(a),
		newFormsCmd(a),
		newImportCmd(a),
	)
	return root
}

// bindFlags exposes changed flags to viper under their config keys.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for key, name := range map[string]string{
		"forms_dir": "forms-dir",
		"renderer":  "renderer",
		"id_prefix": "id-prefix",
	} {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) catalog() (*schema.Catalog, error) {
	if a.cfg.FormsDir == "" {
		return schema.LoadFS(schema.EmbeddedFS())
	}
	catalog, err := schema.LoadFS(os.DirFS(a.cfg.FormsDir))
	if err != nil {
		return nil, fmt.Errorf("load forms from %s: %w", a.cfg.FormsDir, err)
	}
	return catalog, nil
}

func (a *app) orchestrator(catalog *schema.Catalog) *orchestrator.Orchestrator {
	return orchestrator.New(
		orchestrator.WithCatalog(catalog),
		orchestrator.WithDefaultRenderer(a.cfg.Renderer),
		orchestrator.WithLogger(a.logger),
	)
}
