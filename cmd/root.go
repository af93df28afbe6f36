// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdfalk/catalog-search/internal/catalog"
	"github.com/jdfalk/catalog-search/internal/config"
	"github.com/jdfalk/catalog-search/internal/database"
	"github.com/jdfalk/catalog-search/internal/matcher"
	"github.com/jdfalk/catalog-search/internal/models"
	"github.com/jdfalk/catalog-search/internal/search"
	"github.com/jdfalk/catalog-search/internal/server"
)

var cfgFile string
var dataDir string
var storeType string
var databasePath string
var threshold float64

// openStore is swapped out in tests.
var openStore = func(path string) (database.Store, error) {
	return database.OpenStore(config.StorePebble, path)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catalog-search",
	Short: "Fuzzy search over an automotive parts, paint code and fuse catalog",
	Long: `Catalog Search loads a catalog of replacement parts, factory paint codes
and fuse box maps, and answers typo-tolerant searches and autocomplete
suggestions over it, from the command line or over HTTP.`,
	SilenceUsage: true,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search one entity kind",
	Long: `Search parts, colors or fuses. Filters are exact key=value pairs, e.g.
  catalog-search search --kind parts --filter model=GL amortecedor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		query, _ := cmd.Flags().GetString("query")
		filterArgs, _ := cmd.Flags().GetStringArray("filter")
		if query == "" {
			query = strings.Join(args, " ")
		}
		return runSearch(cmd.Context(), cmd.OutOrStdout(), kind, query, filterArgs)
	},
}

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Print autocomplete suggestions, one per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		query, _ := cmd.Flags().GetString("query")
		if query == "" {
			query = strings.Join(args, " ")
		}
		return runSuggest(cmd.Context(), cmd.OutOrStdout(), kind, query)
	},
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the file catalog into the Pebble store",
	Long: `Read parts, colors and fuses files from the data directory and replace
the contents of the Pebble store at --db with them. Records without an id
are assigned one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Start the HTTP search API, the SSE event stream and the Prometheus endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		holder, closer, err := loadHolder(cmd.Context())
		if err != nil {
			return err
		}
		defer closer()

		cfg := server.GetDefaultServerConfig()
		cfg.Host = config.AppConfig.Host
		cfg.Port = config.AppConfig.Port
		cfg.CacheTTL = config.AppConfig.CacheTTL
		cfg.RateLimitPerMinute = config.AppConfig.RateLimitPerMinute
		cfg.RateLimitBurst = config.AppConfig.RateLimitBurst
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if config.AppConfig.WatchCatalog {
			if config.AppConfig.StoreType == config.StoreFile {
				cfg.WatchDir = config.AppConfig.DataDir
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: --watch only applies to the file store; ignoring")
			}
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on %s:%s\n", holder.Source(), cfg.Host, cfg.Port)
		return server.NewServer(holder, newEngine(), cfg).Start(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.catalog-search.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data", "directory containing parts, colors and fuses files")
	rootCmd.PersistentFlags().StringVar(&storeType, "store", config.StoreFile, "catalog source: file (default) or pebble")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "catalog.pebble", "path to the Pebble catalog store")
	rootCmd.PersistentFlags().Float64Var(&threshold, "threshold", matcher.DefaultThreshold, "fuzzy similarity threshold in [0, 1]")

	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data"))
	viper.BindPFlag("store_type", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("similarity_threshold", rootCmd.PersistentFlags().Lookup("threshold"))

	for _, c := range []*cobra.Command{searchCmd, suggestCmd} {
		c.Flags().StringP("kind", "k", string(models.KindParts), "entity kind: parts, colors or fuses")
		c.Flags().StringP("query", "q", "", "query text (defaults to the positional arguments)")
	}
	searchCmd.Flags().StringArrayP("filter", "f", nil, "exact filter as key=value (repeatable)")

	serveCmd.Flags().String("port", "8080", "port to run the web server on")
	serveCmd.Flags().String("host", "localhost", "host to bind the web server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().Bool("watch", false, "reload the catalog when its files change")
	serveCmd.Flags().String("cache-ttl", "30s", "how long search results are cached (0 disables)")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("watch_catalog", serveCmd.Flags().Lookup("watch"))
	viper.BindPFlag("cache_ttl", serveCmd.Flags().Lookup("cache-ttl"))

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(diagnosticsCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(config.DefaultConfigName)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()

	// Ensure database directory exists
	if config.AppConfig.StoreType == config.StorePebble && config.AppConfig.DatabasePath != "" {
		dbDir := filepath.Dir(config.AppConfig.DatabasePath)
		if dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating database directory: %v\n", err)
			}
		}
	}
}

func newEngine() search.Engine {
	return search.New(search.WithThreshold(config.AppConfig.SimilarityThreshold))
}

// openSource returns the configured catalog source and a func releasing it.
func openSource() (catalog.Source, func(), error) {
	if config.AppConfig.StoreType == config.StorePebble {
		store, err := openStore(config.AppConfig.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return catalog.NewDirSource(config.AppConfig.DataDir), func() {}, nil
}

// loadHolder validates the configuration and loads the first snapshot.
func loadHolder(ctx context.Context) (*catalog.Holder, func(), error) {
	if err := config.AppConfig.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	src, closer, err := openSource()
	if err != nil {
		return nil, nil, err
	}
	holder := catalog.NewHolder(src)
	if _, err := holder.Reload(ctx); err != nil {
		closer()
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return holder, closer, nil
}

// parseFilters turns ["model=GL", "tipo=solida"] into Filters.
func parseFilters(args []string) (search.Filters, error) {
	filters := search.Filters{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, want key=value", arg)
		}
		filters[key] = value
	}
	return filters, nil
}

func currentCatalog(ctx context.Context) (*models.Catalog, func(), error) {
	holder, closer, err := loadHolder(ctx)
	if err != nil {
		return nil, nil, err
	}
	cat, err := holder.Current()
	if err != nil {
		closer()
		return nil, nil, err
	}
	return cat, closer, nil
}

func runSearch(ctx context.Context, out io.Writer, kindName, query string, filterArgs []string) error {
	kind, err := models.ParseEntityKind(kindName)
	if err != nil {
		return err
	}
	filters, err := parseFilters(filterArgs)
	if err != nil {
		return err
	}
	cat, closer, err := currentCatalog(ctx)
	if err != nil {
		return err
	}
	defer closer()

	env, err := newEngine().SearchCatalog(cat, kind, query, filters)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

func runSuggest(ctx context.Context, out io.Writer, kindName, query string) error {
	kind, err := models.ParseEntityKind(kindName)
	if err != nil {
		return err
	}
	cat, closer, err := currentCatalog(ctx)
	if err != nil {
		return err
	}
	defer closer()

	suggestions, err := search.SuggestCatalog(cat, kind, query)
	if err != nil {
		return err
	}
	for _, s := range suggestions {
		fmt.Fprintln(out, s)
	}
	return nil
}

type progressReplacer interface {
	ReplaceCatalogWithProgress(cat *models.Catalog, onRecord func()) error
}

func runImport(ctx context.Context, out, progressOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if config.AppConfig.DatabasePath == "" {
		return fmt.Errorf("database path not specified")
	}
	src := catalog.NewDirSource(config.AppConfig.DataDir)
	cat, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	for _, issue := range catalog.Validate(cat) {
		fmt.Fprintf(out, "Warning: %s\n", issue)
	}

	store, err := openStore(config.AppConfig.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	total := len(cat.Parts) + len(cat.Colors) + len(cat.Fuses)
	fmt.Fprintf(out, "Importing %d records from %s into %s\n", total, src, store)
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(progressOut),
		progressbar.OptionSetDescription("importing"),
		progressbar.OptionShowCount(),
	)

	if pr, ok := store.(progressReplacer); ok {
		err = pr.ReplaceCatalogWithProgress(cat, func() { _ = bar.Add(1) })
	} else {
		err = store.ReplaceCatalog(cat)
		_ = bar.Add(total)
	}
	_ = bar.Finish()
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(out, "\nImported %d parts, %d colors, %d fuses\n", len(cat.Parts), len(cat.Colors), len(cat.Fuses))
	return nil
}
