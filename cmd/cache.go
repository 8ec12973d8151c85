package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/slatebar/slatebar/internal/cache"
)

var flagCacheTTL time.Duration

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the widget content cache",
}

var cacheGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a cached value if it is still fresh",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := cache.NewStore(cfg.CacheDir)
		v, ok := store.Get(args[0], flagCacheTTL)
		if !ok {
			return fmt.Errorf("no fresh entry for %q", args[0])
		}
		fmt.Println(v)
		return nil
	},
}

var cacheSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a value under a key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return cache.NewStore(cfg.CacheDir).Set(args[0], args[1])
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return cache.NewStore(cfg.CacheDir).Clear()
	},
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println(cache.NewStore(cfg.CacheDir).Dir())
		return nil
	},
}

func init() {
	cacheGetCmd.Flags().DurationVar(&flagCacheTTL, "ttl", time.Minute, "freshness window for get")
	cacheCmd.AddCommand(cacheGetCmd, cacheSetCmd, cacheClearCmd, cacheDirCmd)
	rootCmd.AddCommand(cacheCmd)
}
