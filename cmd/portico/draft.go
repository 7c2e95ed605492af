package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/portico"
	"github.com/aretw0/portico/internal/config"
	"github.com/aretw0/portico/pkg/adapters/sqlite"
	"github.com/aretw0/portico/pkg/persistence/middleware"
	"github.com/aretw0/portico/pkg/ports"
	"github.com/aretw0/portico/pkg/session"
	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage saved wizard drafts",
	Long:  `List, inspect, remove and prune the drafts kept in the configured store.`,
}

var draftLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved drafts by session ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := openDraftStore(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		keys, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing drafts: %w", err)
		}

		var ids []string
		for _, k := range keys {
			if id, ok := session.SessionID(k); ok {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			fmt.Println("No saved drafts found.")
			return nil
		}

		fmt.Println("Saved Drafts:")
		for _, id := range ids {
			fmt.Println("- " + id)
		}
		return nil
	},
}

var draftInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Show a draft with personal data masked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := openDraftStore(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		if reveal, _ := cmd.Flags().GetBool("reveal"); !reveal {
			store = middleware.Chain(store, middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns))
		}

		draft, err := store.Get(cmd.Context(), session.Key(args[0]))
		if err != nil {
			return fmt.Errorf("error loading draft '%s': %w", args[0], err)
		}

		data, err := json.MarshalIndent(draft, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling draft: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

var draftRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more drafts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := openDraftStore(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		var errs []error
		for _, id := range args {
			if err := store.Delete(cmd.Context(), session.Key(id)); err != nil {
				errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
				continue
			}
			fmt.Printf("Removed draft '%s'\n", id)
		}
		return errors.Join(errs...)
	},
}

var draftPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete drafts not updated recently (sqlite store)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Store.Driver != config.DriverSQLite {
			return fmt.Errorf("prune needs the sqlite driver; redis drafts expire via store.ttl")
		}
		age, _ := cmd.Flags().GetDuration("older-than")

		store, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.PruneBefore(cmd.Context(), time.Now().Add(-age))
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d draft(s) older than %s\n", n, age)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.AddCommand(draftLsCmd)
	draftCmd.AddCommand(draftInspectCmd)
	draftCmd.AddCommand(draftRmCmd)
	draftCmd.AddCommand(draftPruneCmd)

	draftInspectCmd.Flags().Bool("reveal", false, "Show personal data unmasked")
	draftPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Age after which drafts are deleted")
}

func openDraftStore(cmd *cobra.Command) (ports.DraftStore, io.Closer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return portico.OpenStore(cfg.Store)
}
