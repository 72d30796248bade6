package main

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/gitakids/internal/catalog"
	"github.com/hammamikhairi/gitakids/internal/config"
	"github.com/hammamikhairi/gitakids/internal/logger"
	"github.com/hammamikhairi/gitakids/internal/timeline"
)

// cli holds what every command shares once flags, env and the config file
// have been resolved.
type cli struct {
	root    *cobra.Command
	v       *viper.Viper
	cfg     config.Config
	log     *logger.Logger
	logFile *os.File
}

func newCLI(v *viper.Viper) *cli {
	c := &cli{v: v}

	root := &cobra.Command{
		Use:   "gitakids",
		Short: "A child-friendly Bhagavad Gita reader",
		Long: "Gitakids shows the chapters of the Bhagavad Gita retold for children, " +
			"with stories, discussion questions, narrations and podcast episodes.",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runRead,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .gitakids.yaml)")
	pf.String("catalog", "", "catalog TOML file (default: built-in catalog)")
	pf.String("splash", "", "splash timeline TOML file (default: built-in splash)")
	pf.String("log-level", "normal", "log level: off, normal or verbose")
	pf.String("log-file", "gitakids.log", "file to write logs to (use \"stderr\" to log to the console)")
	for key, flag := range map[string]string{
		"catalog_path": "catalog",
		"splash_path":  "splash",
		"log_level":    "log-level",
		"log_file":     "log-file",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	addReadFlags(root, v)
	root.AddCommand(
		c.newReadCmd(),
		c.newChaptersCmd(),
		c.newVerseCmd(),
		c.newListenCmd(),
		c.newSearchCmd(),
		c.newExportCmd(),
		c.newValidateCmd(),
		c.newSplashCmd(),
	)

	c.root = root
	return c
}

// setup reads the config file and environment, validates the result and
// opens the log sink.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
	} else {
		c.v.SetConfigName(".gitakids")
		c.v.SetConfigType("yaml")
		c.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			c.v.AddConfigPath(home)
		}
	}
	c.v.SetEnvPrefix(config.EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.New(cfg.Level(), c.openLog(cmd.ErrOrStderr()))
	c.log.Debug("config: %+v", cfg)
	return nil
}

// openLog directs logs to the configured file so the reader screen stays
// clean, falling back to stderr.
func (c *cli) openLog(stderr io.Writer) io.Writer {
	var out io.Writer = stderr
	if path := c.cfg.LogFile; path != "" && path != "stderr" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		} else {
			c.logFile = f
			out = f
		}
	}

	// Third-party packages log through the standard logger.
	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)
	return out
}

func (c *cli) close() {
	if c.logFile != nil {
		c.logFile.Close()
		c.logFile = nil
	}
}

// library loads the configured catalog. Integrity problems are fatal.
func (c *cli) library() (*catalog.Index, error) {
	log := c.log.With("catalog")
	if c.cfg.CatalogPath == "" {
		return catalog.Default(log)
	}
	return catalog.LoadFile(c.cfg.CatalogPath, log)
}

// phases loads the configured splash sequence.
func (c *cli) phases() ([]timeline.Phase, error) {
	if c.cfg.SplashPath == "" {
		return timeline.DefaultSplash()
	}
	return timeline.LoadPhasesFile(c.cfg.SplashPath)
}
