package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/spvbuild/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database    string
	Limit       int
	Fingerprint string
	ID          string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded builds",
		Long: `List builds recorded in a history database, newest first.

The database is taken from --db, or from the history key of the config
file when --db is not given.

Examples:
  spvbuild history --db .spvbuild/history.db
  spvbuild history --limit 5 --format json
  spvbuild history --fingerprint 3f2a...
  spvbuild history --id 0190f3c2-...`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the history database")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of builds to list (0 for all)")
	cmd.Flags().StringVar(&opts.Fingerprint, "fingerprint", "", "only list builds with this descriptor fingerprint")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show a single build by ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dbPath := opts.Database
	if dbPath == "" {
		settings, _, err := loadSettings(cmd.Flags(), opts.Config, nil)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeConfig, err)
		}
		dbPath = settings.History
	}
	if dbPath == "" {
		return formatter.Fail(ExitCommandError, ErrCodeHistory,
			errors.New("no history database: pass --db or set history in the config file"))
	}
	if opts.Limit < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, fmt.Errorf("invalid --limit %d", opts.Limit))
	}

	st, err := store.OpenExisting(dbPath)
	if errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, err)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeHistory, err)
	}
	defer st.Close()

	if opts.ID != "" {
		rec, err := st.GetBuild(cmd.Context(), opts.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("no build with id %q", opts.ID))
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeHistory, err)
		}
		if formatter.Format == "json" {
			return formatter.Success(rec)
		}
		writeBuild(formatter.Writer, rec)
		return nil
	}

	records, err := st.ListBuilds(cmd.Context(), store.ListOptions{
		Limit:       opts.Limit,
		Fingerprint: opts.Fingerprint,
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeHistory, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(records)
	}
	writeHistory(formatter.Writer, records)
	return nil
}

func writeHistory(w io.Writer, records []store.BuildRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No builds recorded")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tSTATUS\tTARGET\tFINGERPRINT\tSHA256\tCREATED")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Seq,
			r.ID,
			r.Status,
			r.Target,
			short(r.Fingerprint),
			short(r.SHA256),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	tw.Flush()
}

func writeBuild(w io.Writer, r store.BuildRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
	fmt.Fprintf(tw, "Seq:\t%d\n", r.Seq)
	fmt.Fprintf(tw, "Status:\t%s\n", r.Status)
	if r.Error != "" {
		fmt.Fprintf(tw, "Error:\t%s\n", r.Error)
	}
	fmt.Fprintf(tw, "Source:\t%s\n", r.Source)
	fmt.Fprintf(tw, "Target:\t%s\n", r.Target)
	fmt.Fprintf(tw, "Toolchain:\t%s\n", r.Toolchain)
	fmt.Fprintf(tw, "Panic strategy:\t%s\n", r.PanicStrategy)
	fmt.Fprintf(tw, "Capabilities:\t%v\n", r.Capabilities)
	fmt.Fprintf(tw, "Extensions:\t%v\n", r.Extensions)
	if r.Artifact != "" {
		fmt.Fprintf(tw, "Artifact:\t%s\n", r.Artifact)
	}
	if r.Destination != "" {
		fmt.Fprintf(tw, "Destination:\t%s\n", r.Destination)
	}
	if r.SHA256 != "" {
		fmt.Fprintf(tw, "SHA256:\t%s (%d bytes)\n", r.SHA256, r.Size)
	}
	fmt.Fprintf(tw, "Fingerprint:\t%s\n", r.Fingerprint)
	fmt.Fprintf(tw, "Created:\t%s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	tw.Flush()
}

// short abbreviates a hex digest for tables.
func short(digest string) string {
	if digest == "" {
		return "-"
	}
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
