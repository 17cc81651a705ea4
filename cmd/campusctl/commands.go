package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/campusconnect-backend/internal/app"
	"github.com/heartmarshall/campusconnect-backend/internal/config"
	"github.com/heartmarshall/campusconnect-backend/internal/domain"
	"github.com/heartmarshall/campusconnect-backend/internal/service/submission"
)

// env is what every subcommand runs against.
type env struct {
	svc   *app.Services
	close func()
	now   func() time.Time
}

type envLoader func(ctx context.Context) (*env, error)

func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log)

	st, err := app.OpenStorage(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sender, err := app.NewSender(cfg.Mail, logger)
	if err != nil {
		st.Close()
		return nil, err
	}
	svc, err := app.NewServices(ctx, cfg, st, sender, logger)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &env{svc: svc, close: st.Close, now: time.Now}, nil
}

func newRootCmd(load envLoader) *cobra.Command {
	root := &cobra.Command{
		Use:          "campusctl",
		Short:        "Operate the CampusConnect feed and notification roster",
		SilenceUsage: true,
	}

	// with opens the environment for one command invocation.
	with := func(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()
			return fn(cmd, args, e)
		}
	}

	root.AddCommand(submissionsCmd(with))
	root.AddCommand(subscribersCmd(with))
	root.AddCommand(broadcastCmd(with))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	})

	return root
}

type runWith func(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error

func submissionsCmd(with runWith) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "Inspect the submission feed",
	}

	var tab, query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List submissions through the feed filter",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, e *env) error {
			items, err := e.svc.Submissions.Browse(cmd.Context(), "", submission.BrowseInput{Tab: tab, Query: query})
			if err != nil {
				return err
			}
			return printSubmissions(cmd.OutOrStdout(), items, e.now())
		}),
	}
	list.Flags().StringVar(&tab, "tab", "all", "feed tab: all, events, opportunities, announcements")
	list.Flags().StringVarP(&query, "query", "q", "", "case-insensitive text search")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a submission",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(cmd *cobra.Command, args []string, e *env) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := e.svc.Submissions.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed submission %d\n", id)
			return nil
		}),
	}

	cmd.AddCommand(list, remove)
	return cmd
}

func subscribersCmd(with runWith) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscribers",
		Short: "Manage the notification roster",
	}

	add := &cobra.Command{
		Use:   "add <email>...",
		Short: "Subscribe one or more emails",
		Args:  cobra.MinimumNArgs(1),
		RunE: with(func(cmd *cobra.Command, args []string, e *env) error {
			for _, email := range args {
				outcome, err := e.svc.Subscribers.Subscribe(cmd.Context(), email)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", domain.NormalizeEmail(email), outcome)
			}
			return nil
		}),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List subscribers in subscription order",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, e *env) error {
			subs, err := e.svc.Subscribers.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "EMAIL\tSUBSCRIBED")
			for _, s := range subs {
				fmt.Fprintf(tw, "%s\t%s\n", s.Email, humanize.RelTime(s.SubscribedAt, e.now(), "ago", "from now"))
			}
			return tw.Flush()
		}),
	}

	cmd.AddCommand(add, list)
	return cmd
}

func broadcastCmd(with runWith) *cobra.Command {
	var subject, text, htmlFile string

	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Send a message to every current subscriber",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, e *env) error {
			msg := domain.Message{Subject: subject, Text: text}
			if htmlFile != "" {
				data, err := os.ReadFile(htmlFile)
				if err != nil {
					return fmt.Errorf("read html body: %w", err)
				}
				msg.HTML = string(data)
			}
			report, err := e.svc.Broadcasts.Broadcast(cmd.Context(), msg)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report)
		}),
	}
	cmd.Flags().StringVar(&subject, "subject", "", "message subject")
	cmd.Flags().StringVar(&text, "text", "", "plain text body")
	cmd.Flags().StringVar(&htmlFile, "html-file", "", "file holding the HTML body")
	_ = cmd.MarkFlagRequired("subject")

	announce := &cobra.Command{
		Use:   "announce <submission-id>",
		Short: "Send the announcement email for a stored submission",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(cmd *cobra.Command, args []string, e *env) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := e.svc.Submissions.Get(cmd.Context(), "", id)
			if err != nil {
				return err
			}
			report, err := e.svc.Broadcasts.Announce(cmd.Context(), item.Submission)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report)
		}),
	}
	cmd.AddCommand(announce)

	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid submission id %q", s)
	}
	return id, nil
}

func printSubmissions(w io.Writer, items []domain.FeedItem, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tTITLE\tWHEN\tVOTES\tTAGS")
	for _, it := range items {
		when := "TBA"
		if it.OccursAt != nil {
			when = humanize.RelTime(*it.OccursAt, now, "ago", "from now")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			it.ID, it.Category, it.Title, when, it.VoteCount, strings.Join(it.Tags, ","))
	}
	return tw.Flush()
}

func printReport(w io.Writer, report domain.BroadcastReport) error {
	fmt.Fprintf(w, "sent: %d, failed: %d\n", len(report.Sent), len(report.Failed))
	for _, f := range report.Failed {
		fmt.Fprintf(w, "  %s: %s\n", f.Recipient, f.Reason)
	}
	return nil
}
