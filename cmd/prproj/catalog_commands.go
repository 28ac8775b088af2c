package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"prproj/internal/catalog"
	"prproj/internal/config"
	"prproj/internal/logging"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var pathFlag string

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Record and browse scanned projects",
	}
	catalogCmd.PersistentFlags().StringVar(&pathFlag, "catalog", "", "Catalog database path (enables the catalog)")

	open := func() (*catalog.Store, error) {
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return nil, err
		}
		path := cfg.Catalog.Path
		if trimmed := strings.TrimSpace(pathFlag); trimmed != "" {
			if path, err = config.ExpandPath(trimmed); err != nil {
				return nil, fmt.Errorf("resolve catalog path: %w", err)
			}
		} else if !cfg.Catalog.Enabled {
			return nil, errors.New("catalog is disabled; set catalog.enabled in the config or pass --catalog")
		}
		return catalog.Open(path)
	}

	catalogCmd.AddCommand(newCatalogRecordCommand(ctx, open))
	catalogCmd.AddCommand(newCatalogListCommand(open))
	catalogCmd.AddCommand(newCatalogShowCommand(open))
	catalogCmd.AddCommand(newCatalogRemoveCommand(open))
	return catalogCmd
}

type storeOpener func() (*catalog.Store, error)

func newCatalogRecordCommand(ctx *commandContext, open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "record <file>",
		Short: "Read a project and store the scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}
			previous, err := store.FindByDigest(runCtx, loaded.digest)
			if err != nil {
				return err
			}

			catalogLogger := logging.NewComponentLogger(logger, "catalog")
			id, err := store.Record(runCtx, catalog.NewScan(loaded.path, loaded.digest, loaded.size, loaded.project))
			if err != nil {
				logging.ErrorWithContext(catalogLogger, "scan not recorded", "catalog_record_failed",
					logging.String(logging.FieldPath, loaded.path),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "another process may hold the catalog lock"),
				)
				return err
			}
			logging.WithContext(logging.WithScanID(runCtx, id), catalogLogger).Info(
				"scan recorded",
				logging.String(logging.FieldPath, loaded.path),
				logging.Int("sequences", len(loaded.project.Sequences)),
				logging.Int("warnings", len(loaded.project.Warnings)),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded scan %s\n", id)
			if previous != nil {
				fmt.Fprintf(out, "Same content as scan %s recorded %s\n", previous.ID, previous.RecordedAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}

func newCatalogListCommand(open storeOpener) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded scans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No scans recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.ID,
					entry.RecordedAt.Local().Format(time.DateTime),
					entry.Path,
					entry.Compression,
					strconv.Itoa(entry.SequenceCount),
					strconv.Itoa(entry.CutCount),
					strconv.Itoa(entry.MediaCount),
					strconv.Itoa(entry.WarningCount),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "Scan"},
				{header: "Recorded"},
				{header: "Path"},
				{header: "Format"},
				{header: "Sequences", align: alignRight},
				{header: "Cuts", align: alignRight},
				{header: "Media", align: alignRight},
				{header: "Warnings", align: alignRight},
			}, rows))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of scans to list (0 for all)")
	return cmd
}

func newCatalogShowCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "show <scan-id>",
		Short: "Show a recorded scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx := cmd.Context()
			id := strings.TrimSpace(args[0])
			entry, err := store.Get(runCtx, id)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("scan %s not found", id)
			}
			sequences, err := store.Sequences(runCtx, id)
			if err != nil {
				return err
			}
			media, err := store.Media(runCtx, id)
			if err != nil {
				return err
			}
			warnings, err := store.Warnings(runCtx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Scan "+entry.ID, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("File", statusInfo, entry.Path, colorize))
			fmt.Fprintln(out, renderStatusLine("Recorded", statusInfo, entry.RecordedAt.Local().Format(time.DateTime), colorize))
			fmt.Fprintln(out, renderStatusLine("Compression", statusInfo, entry.Compression, colorize))
			fmt.Fprintln(out, renderStatusLine("Digest", statusInfo, entry.Digest, colorize))
			fmt.Fprintln(out)

			if len(sequences) > 0 {
				rows := make([][]string, 0, len(sequences))
				for _, seq := range sequences {
					rows = append(rows, []string{
						strconv.FormatUint(uint64(seq.SequenceID), 10),
						seq.Name,
						formatSeconds(seq.DurationSeconds),
						strconv.FormatUint(uint64(seq.Width), 10) + "x" + strconv.FormatUint(uint64(seq.Height), 10),
						strconv.Itoa(seq.Cuts),
						strconv.Itoa(seq.TimelineItems),
					})
				}
				fmt.Fprintln(out, renderTable([]column{
					{header: "ID", align: alignRight},
					{header: "Name"},
					{header: "Duration", align: alignRight},
					{header: "Size"},
					{header: "Cuts", align: alignRight},
					{header: "Visible", align: alignRight},
				}, rows))
			}
			if len(media) > 0 {
				rows := make([][]string, 0, len(media))
				for _, m := range media {
					rows = append(rows, []string{m.Name, formatSeconds(m.DurationSeconds), m.FilePath})
				}
				fmt.Fprintln(out, renderTable([]column{
					{header: "Medium"},
					{header: "Duration", align: alignRight},
					{header: "Path"},
				}, rows))
			}
			for i, msg := range warnings {
				fmt.Fprintln(out, renderStatusLine(fmt.Sprintf("#%d", i+1), statusWarn, msg, colorize))
			}
			return nil
		},
	}
}

func newCatalogRemoveCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <scan-id>",
		Short: "Delete a recorded scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			id := strings.TrimSpace(args[0])
			removed, err := store.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("scan %s not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed scan %s\n", id)
			return nil
		},
	}
}
