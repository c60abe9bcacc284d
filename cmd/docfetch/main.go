package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/quantmind-br/docfetch-go/internal/config"
	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/quantmind-br/docfetch-go/internal/fetch"
	"github.com/quantmind-br/docfetch-go/internal/utils"
	"github.com/quantmind-br/docfetch-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docfetch [uri...]",
	Short: "Fetch and cache documents from heterogeneous sources",
	Long: `Docfetch retrieves documents from web pages, PDFs, git repositories,
video transcripts, and local files, normalizes them to unicode text, and
caches everything on disk so repeated fetches are free.`,
	Version: version.Short(),
	Args:    cobra.MinimumNArgs(0),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.docfetch/config.yaml)")
	rootCmd.PersistentFlags().StringP("title", "t", "", "Display title for a single source")
	rootCmd.PersistentFlags().String("cache-dir", "", "Content cache directory")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Write normalized text files into this directory")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "HTTP request timeout")
	rootCmd.PersistentFlags().Bool("no-response-cache", false, "Disable the HTTP response cache")
	rootCmd.PersistentFlags().String("user-agent", "", "Custom User-Agent")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("cache.directory", rootCmd.PersistentFlags().Lookup("cache-dir"))
	_ = viper.BindPFlag("http.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("http.user_agent", rootCmd.PersistentFlags().Lookup("user-agent"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Get().String())
	},
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 0 {
		return cmd.Help()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	noRespCache, _ := cmd.Flags().GetBool("no-response-cache")
	title, _ := cmd.Flags().GetString("title")
	outDir, _ := cmd.Flags().GetString("output")

	svc, err := fetch.NewService(fetch.Options{
		CacheDir:            cfg.Cache.Directory,
		ResponseCacheDir:    cfg.Cache.ResponseDirectory,
		EnableResponseCache: cfg.Cache.ResponseCache && !noRespCache,
		ResponseCacheTTL:    cfg.Cache.ResponseTTL,
		Timeout:             cfg.HTTP.Timeout,
		MaxRetries:          cfg.HTTP.MaxRetries,
		UserAgent:           cfg.HTTP.UserAgent,
		Logger:              log,
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	sources := make([]domain.Source, 0, len(args))
	for _, uri := range args {
		src := domain.Source{URI: uri}
		if len(args) == 1 {
			src.Title = title
		}
		sources = append(sources, src)
	}

	results := svc.FetchAll(ctx, sources)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		for _, doc := range res.Documents {
			if outDir != "" {
				if err := writeDocument(outDir, doc); err != nil {
					return err
				}
			}
			fmt.Printf("%s\t%d chars\n", doc.Path, len(doc.Text))
		}
	}

	if failed > 0 {
		log.Warn().Int("failed", failed).Int("total", len(results)).Msg("Some sources failed")
	}
	return nil
}

// writeDocument writes one normalized document as a text file under dir.
func writeDocument(dir string, doc domain.Document) error {
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}
	name := utils.Sanitize(filepath.Base(doc.Path)) + ".txt"
	return os.WriteFile(filepath.Join(dir, name), []byte(doc.Text), 0644)
}
