package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/planner/internal/config"
	"github.com/pkordes/planner/internal/deeplink"
	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/tripform"
)

const dateLayout = "2006-01-02"

func newCreateCmd() *cobra.Command {
	var (
		destination string
		from, to    string
		invites     []string
		yes         bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trip and invite guests",
		Long: `Walk the trip creation form: destination and dates, guest emails, then
the "Confirm trip?" prompt. On success this device is bound to the new trip
and a guest link is printed for every invitee.`,
		Example: `  planner create --destination Rome --from 2025-03-10 --to 2025-03-15 \
    --invite ana@example.com --invite bob@example.com`,
		Args: cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, _ []string, a *app) error {
			start, err := time.Parse(dateLayout, from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			end, err := time.Parse(dateLayout, to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			events := []tripform.Event{
				tripform.SetDestination{Destination: destination},
				tripform.TapDay{Day: start},
				tripform.TapDay{Day: end},
				tripform.Next{},
			}
			for _, e := range invites {
				events = append(events, tripform.AddEmail{Email: e})
			}
			events = append(events, tripform.Next{})

			ctx := cmd.Context()
			var f tripform.Form
			for _, ev := range events {
				if f, err = a.creation.Dispatch(ctx, ev); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Destination: %s\nDates:       %s\n", strings.TrimSpace(f.Destination), f.Dates.Label)
			if len(f.Emails) > 0 {
				fmt.Fprintf(out, "Guests:      %s\n", strings.Join(f.Emails, ", "))
			}
			answer := yes || ask(cmd.InOrStdin(), out, "Confirm trip? [y/N] ")
			if f, err = a.creation.Dispatch(ctx, tripform.Answer{Yes: answer}); err != nil {
				return err
			}
			if f.Step != tripform.StepSubmitted {
				fmt.Fprintln(out, "Trip not created.")
				return nil
			}

			if err := a.binding.Save(ctx, f.TripID); err != nil {
				return fmt.Errorf("trip %s was created but this device is not bound to it (retry with: planner bind %s): %w", f.TripID, f.TripID, err)
			}
			fmt.Fprintf(out, "Trip created: %s\nShare link:   %s\n", f.TripID, deeplink.Build(a.cfg.LinkScheme, f.TripID, ""))
			return printGuestLinks(cmd, a, f.TripID)
		}),
	}
	cmd.Flags().StringVar(&destination, "destination", "", "where the trip goes")
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringArrayVar(&invites, "invite", nil, "guest email (repeatable)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printGuestLinks(cmd *cobra.Command, a *app, tripID string) error {
	ps, err := a.trips.Participants(cmd.Context(), tripID)
	if err != nil {
		return err
	}
	for _, p := range ps {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", p.Email, deeplink.Build(a.cfg.LinkScheme, tripID, p.ID))
	}
	return nil
}

// ask prints prompt and reports whether the reply starts with y.
func ask(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <link>",
		Short: "Show where a planner:// link leads",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, args []string, a *app) error {
			entry, err := a.invites.Open(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			trip, err := a.trips.Get(cmd.Context(), entry.TripID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, trip.Summary())
			if entry.Mode == deeplink.ModeGuest {
				fmt.Fprintf(out, "You are invited. Confirm with:\n  planner confirm %q --name <name> --email <email>\n", args[0])
			}
			return nil
		}),
	}
}

func newConfirmCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "confirm <link>",
		Short: "Confirm attendance from a guest link",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, args []string, a *app) error {
			entry, err := a.invites.Open(args[0])
			if err != nil {
				return err
			}
			if entry.Mode != deeplink.ModeGuest {
				return errors.New("the link has no participant; ask the organizer for your guest link")
			}
			err = a.invites.Confirm(cmd.Context(), domain.Confirmation{
				TripID:        entry.TripID,
				ParticipantID: entry.ParticipantID,
				Name:          name,
				Email:         email,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attendance confirmed for trip %s.\n", entry.TripID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "your full name")
	cmd.Flags().StringVar(&email, "email", "", "your email")
	return cmd
}

func newBindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bind <trip-id>",
		Short: "Make an existing trip the current trip on this device",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, args []string, a *app) error {
			trip, err := a.trips.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.binding.Save(cmd.Context(), trip.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bound to %s\n", trip.Summary())
			return nil
		}),
	}
}

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the trip this device is bound to",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, _ []string, a *app) error {
			trip, ok, err := a.trips.Resume(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "No trip on this device.")
				return nil
			}
			fmt.Fprintf(out, "%s\n%s\n", trip.Summary(), deeplink.Build(a.cfg.LinkScheme, trip.ID, ""))
			return nil
		}),
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Forget the current trip on this device",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, _ []string, a *app) error {
			if err := a.trips.Remove(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Trip removed from this device.")
			return nil
		}),
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply binding store migrations",
		Long:  `Create or upgrade the device_bindings table for the sqlite or postgres driver.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applied, err := migrateDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to migrate for the %s driver.\n", cfg.BindingDriver)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s).\n", cfg.BindingDriver)
			return nil
		},
	}
}
