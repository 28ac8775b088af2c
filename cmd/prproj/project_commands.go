package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"prproj/internal/premiere"
	"prproj/internal/timeline"
)

func newReadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "read <file>",
		Short: "Read a project and summarize its sequences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			project := loaded.project

			for _, line := range renderSectionHeader("Project", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("File", statusInfo, loaded.path, colorize))
			fmt.Fprintln(out, renderStatusLine("Compression", statusInfo, project.Compression.String(), colorize))
			fmt.Fprintln(out, renderStatusLine("Digest", statusInfo, loaded.digest, colorize))
			fmt.Fprintln(out, renderStatusLine("Sequences", statusOK, strconv.Itoa(len(project.Sequences)), colorize))
			fmt.Fprintln(out, renderStatusLine("Cuts", statusOK, strconv.Itoa(project.CutCount()), colorize))
			fmt.Fprintln(out, renderStatusLine("Media", statusOK, strconv.Itoa(len(project.Media)), colorize))
			fmt.Fprintln(out)

			if len(project.Sequences) > 0 {
				fmt.Fprintln(out, sequencesTable(project.Sequences))
			}
			printWarnings(out, project.Warnings, colorize)
			return nil
		},
	}
}

func newSequencesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sequences <file>",
		Short: "List the sequences of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(loaded.project.Sequences) == 0 {
				fmt.Fprintln(out, "No sequences found")
				return nil
			}
			fmt.Fprintln(out, sequencesTable(loaded.project.Sequences))
			return nil
		},
	}
}

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var (
		sequenceID uint32
		at         float64
	)
	cmd := &cobra.Command{
		Use:   "timeline <file>",
		Short: "Show which cut is visible over the course of a sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			seq, err := loaded.sequence(sequenceID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			items := seq.Timeline.Items()
			if cmd.Flags().Changed("at") {
				item, ok := seq.Timeline.At(at)
				if !ok {
					fmt.Fprintf(out, "Nothing visible at %s in sequence %d\n", formatSeconds(at), seq.ID)
					return nil
				}
				items = []timeline.Item{item}
			}
			if len(items) == 0 {
				fmt.Fprintf(out, "Sequence %d has an empty timeline\n", seq.ID)
				return nil
			}
			fmt.Fprintln(out, timelineTable(seq, items))
			return nil
		},
	}
	cmd.Flags().Uint32VarP(&sequenceID, "sequence", "s", 0, "Sequence ID")
	cmd.Flags().Float64Var(&at, "at", 0, "Only show the item visible at this many seconds")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}

func timelineTable(seq *premiere.Sequence, items []timeline.Item) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		cut, _ := seq.Cut(item.Cut)
		name := "-"
		if cut.Medium != nil {
			name = cut.Medium.Name
		}
		rows = append(rows, []string{
			formatSeconds(item.Start),
			formatSeconds(item.End),
			strconv.Itoa(item.Cut),
			name,
		})
	}
	return renderTable([]column{
		{header: "Start", align: alignRight},
		{header: "End", align: alignRight},
		{header: "Cut", align: alignRight},
		{header: "Medium"},
	}, rows)
}

func newCutsCommand(ctx *commandContext) *cobra.Command {
	var sequenceID uint32
	cmd := &cobra.Command{
		Use:   "cuts <file>",
		Short: "List the cuts of a sequence in discovery order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			seq, err := loaded.sequence(sequenceID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(seq.Cuts) == 0 {
				fmt.Fprintf(out, "Sequence %d has no cuts\n", seq.ID)
				return nil
			}
			rows := make([][]string, 0, len(seq.Cuts))
			for i, cut := range seq.Cuts {
				rows = append(rows, []string{
					strconv.Itoa(i),
					formatSeconds(cut.Start),
					formatSeconds(cut.End),
					formatSeconds(cut.Duration().Seconds()),
					cut.Medium.Name,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "#", align: alignRight},
				{header: "Start", align: alignRight},
				{header: "End", align: alignRight},
				{header: "Duration", align: alignRight},
				{header: "Medium"},
			}, rows))
			return nil
		},
	}
	cmd.Flags().Uint32VarP(&sequenceID, "sequence", "s", 0, "Sequence ID")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}

func newMediaCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "media <file>",
		Short: "List the media referenced by a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(loaded.project.Media) == 0 {
				fmt.Fprintln(out, "No media found")
				return nil
			}
			rows := make([][]string, 0, len(loaded.project.Media))
			for _, m := range loaded.project.Media {
				rows = append(rows, []string{
					m.Name,
					formatSeconds(m.DurationSeconds),
					formatFPS(m),
					formatSize(m.Size),
					m.FilePath,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "Name"},
				{header: "Duration", align: alignRight},
				{header: "FPS", align: alignRight},
				{header: "Size"},
				{header: "Path"},
			}, rows))
			return nil
		},
	}
}

func sequencesTable(sequences []*premiere.Sequence) string {
	rows := make([][]string, 0, len(sequences))
	for _, seq := range sequences {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(seq.ID), 10),
			seq.Name,
			formatSeconds(seq.DurationSeconds),
			formatSize(seq.Size),
			strconv.Itoa(len(seq.Cuts)),
			strconv.Itoa(seq.Timeline.Len()),
		})
	}
	return renderTable([]column{
		{header: "ID", align: alignRight},
		{header: "Name"},
		{header: "Duration", align: alignRight},
		{header: "Size"},
		{header: "Cuts", align: alignRight},
		{header: "Visible", align: alignRight},
	}, rows)
}

func printWarnings(out io.Writer, warnings []error, colorize bool) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(out)
	for _, line := range renderSectionHeader("Warnings", colorize) {
		fmt.Fprintln(out, line)
	}
	for i, warning := range warnings {
		fmt.Fprintln(out, renderStatusLine(fmt.Sprintf("#%d", i+1), statusWarn, warning.Error(), colorize))
	}
}
