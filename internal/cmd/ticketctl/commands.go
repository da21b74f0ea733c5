package ticketctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	ledgerv1 "github.com/louisbranch/ticketbooth/api/ledger/v1"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/auth"
	"github.com/spf13/pflag"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func commands() []*command {
	var (
		payment    uint64
		price      uint64
		ticketID   uint64
		offeredID  uint64
		afterSeq   uint64
		filter     string
		pageSize   int32
		pageToken  string
		descending bool
		key        string
		ttl        time.Duration
	)
	return []*command{
		{
			Name:    "buy",
			Usage:   "<ticket-id>",
			Summary: "buy an unsold ticket at the unit price",
			Flags: func(fs *pflag.FlagSet) {
				fs.Uint64Var(&payment, "payment", 0, "exact payment, must equal the unit price")
			},
			Run: func(ctx context.Context, s *session, args []string) error {
				id, err := uintArg(args, 0, "ticket-id")
				if err != nil {
					return err
				}
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.BuyTicket(callCtx, &ledgerv1.BuyTicketRequest{TicketID: id, Payment: payment})
				if err != nil {
					return err
				}
				s.printf("#%d purchased ticket %d for %s\n", resp.Seq, resp.Notification.TicketID, resp.Notification.Buyer)
				return nil
			},
		},
		{
			Name:    "resale",
			Summary: "list one of your tickets on the resale book",
			Flags: func(fs *pflag.FlagSet) {
				fs.Uint64Var(&price, "price", 0, "asking price")
				fs.Uint64Var(&ticketID, "ticket", 0, "ticket to list (default: your lowest ticket)")
			},
			Run: func(ctx context.Context, s *session, _ []string) error {
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.ResaleTicket(callCtx, &ledgerv1.ResaleTicketRequest{Price: price, TicketID: ticketID})
				if err != nil {
					return err
				}
				s.printf("#%d listed ticket %d at %d as offer %d\n", resp.Seq, resp.Offer.TicketID, resp.Offer.Price, resp.Offer.Index)
				return nil
			},
		},
		{
			Name:    "accept-resale",
			Usage:   "<index>",
			Summary: "buy the resale offer at an index",
			Flags: func(fs *pflag.FlagSet) {
				fs.Uint64Var(&payment, "payment", 0, "exact payment, must equal the asking price")
			},
			Run: func(ctx context.Context, s *session, args []string) error {
				index, err := uintArg(args, 0, "index")
				if err != nil {
					return err
				}
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.AcceptResale(callCtx, &ledgerv1.AcceptResaleRequest{Index: index, Payment: payment})
				if err != nil {
					return err
				}
				n := resp.Notification
				s.printf("#%d %s bought ticket %d from %s for %d\n", resp.Seq, n.Buyer, n.TicketID, n.Seller, n.Price)
				return nil
			},
		},
		{
			Name:    "offer-swap",
			Usage:   "<ticket-id>",
			Summary: "offer one of your tickets in exchange for another",
			Flags: func(fs *pflag.FlagSet) {
				fs.Uint64Var(&offeredID, "offered", 0, "ticket to give (default: your lowest ticket)")
			},
			Run: func(ctx context.Context, s *session, args []string) error {
				target, err := uintArg(args, 0, "ticket-id")
				if err != nil {
					return err
				}
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.OfferSwap(callCtx, &ledgerv1.OfferSwapRequest{TicketID: target, OfferedTicketID: offeredID})
				if err != nil {
					return err
				}
				s.printf("#%d %s offers ticket %d for ticket %d\n", resp.Seq, resp.Offer.Offeror, resp.Offer.OfferedTicketID, resp.Offer.TargetTicketID)
				return nil
			},
		},
		{
			Name:    "accept-swap",
			Usage:   "<ticket-id>",
			Summary: "accept the pending swap offer for your ticket",
			Run: func(ctx context.Context, s *session, args []string) error {
				target, err := uintArg(args, 0, "ticket-id")
				if err != nil {
					return err
				}
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.AcceptSwap(callCtx, &ledgerv1.AcceptSwapRequest{TicketID: target})
				if err != nil {
					return err
				}
				n := resp.Notification
				s.printf("#%d %s now holds ticket %d, %s now holds ticket %d\n", resp.Seq, n.Buyer1, n.TicketID1, n.Buyer2, n.TicketID2)
				return nil
			},
		},
		{
			Name:    "owner-of",
			Usage:   "<ticket-id>",
			Summary: "show who owns a ticket",
			Run: func(ctx context.Context, s *session, args []string) error {
				id, err := uintArg(args, 0, "ticket-id")
				if err != nil {
					return err
				}
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.TicketOwners(callCtx, &ledgerv1.TicketOwnersRequest{TicketID: id})
				if err != nil {
					return err
				}
				if resp.Owner == "" {
					s.printf("ticket %d is unsold\n", id)
					return nil
				}
				s.printf("ticket %d is owned by %s\n", id, resp.Owner)
				return nil
			},
		},
		{
			Name:    "ticket-of",
			Usage:   "[account]",
			Summary: "show the tickets an account holds (default: caller)",
			Run: func(ctx context.Context, s *session, args []string) error {
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.GetTicketOf(callCtx, &ledgerv1.GetTicketOfRequest{Account: optionalArg(args, 0)})
				if err != nil {
					return err
				}
				if resp.TicketID == 0 {
					s.printf("no tickets\n")
					return nil
				}
				s.printf("ticket %d (holds %v)\n", resp.TicketID, resp.TicketIDs)
				return nil
			},
		},
		{
			Name:    "resales",
			Summary: "list the resale book",
			Run: func(ctx context.Context, s *session, _ []string) error {
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.CheckResale(callCtx, &ledgerv1.CheckResaleRequest{})
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(s.out, 2, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "INDEX\tTICKET\tPRICE\tSELLER")
				for _, offer := range resp.Offers {
					fmt.Fprint(tw, s.printer.Sprintf("%d\t%d\t%d\t%s\n", offer.Index, offer.TicketID, offer.Price, offer.Seller))
				}
				return tw.Flush()
			},
		},
		{
			Name:    "price",
			Summary: "show the primary sale price",
			Run: func(ctx context.Context, s *session, _ []string) error {
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.TicketPrice(callCtx, &ledgerv1.TicketPriceRequest{})
				if err != nil {
					return err
				}
				s.printf("%d\n", resp.Price)
				return nil
			},
		},
		{
			Name:    "sold",
			Summary: "show how many tickets have been sold",
			Run: func(ctx context.Context, s *session, _ []string) error {
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.TicketsSold(callCtx, &ledgerv1.TicketsSoldRequest{})
				if err != nil {
					return err
				}
				s.printf("%d\n", resp.Sold)
				return nil
			},
		},
		{
			Name:    "total",
			Summary: "show the ticket inventory size",
			Run: func(ctx context.Context, s *session, _ []string) error {
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.TotalTickets(callCtx, &ledgerv1.TotalTicketsRequest{})
				if err != nil {
					return err
				}
				s.printf("%d\n", resp.Total)
				return nil
			},
		},
		{
			Name:    "owner",
			Summary: "show the ledger administrator",
			Run: func(ctx context.Context, s *session, _ []string) error {
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.Owner(callCtx, &ledgerv1.OwnerRequest{})
				if err != nil {
					return err
				}
				s.printf("%s\n", resp.Owner)
				return nil
			},
		},
		{
			Name:    "swap-offer",
			Usage:   "<ticket-id>",
			Summary: "show the pending swap offer for a ticket",
			Run: func(ctx context.Context, s *session, args []string) error {
				id, err := uintArg(args, 0, "ticket-id")
				if err != nil {
					return err
				}
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.SwapOffers(callCtx, &ledgerv1.SwapOffersRequest{TicketID: id})
				if err != nil {
					return err
				}
				if resp.Offer == nil {
					s.printf("no pending offer for ticket %d\n", id)
					return nil
				}
				s.printf("%s offers ticket %d for ticket %d\n", resp.Offer.Offeror, resp.Offer.OfferedTicketID, id)
				return nil
			},
		},
		{
			Name:    "balances",
			Usage:   "[account]",
			Summary: "show the treasury and an account's resale proceeds",
			Run: func(ctx context.Context, s *session, args []string) error {
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.Balances(callCtx, &ledgerv1.BalancesRequest{Account: optionalArg(args, 0)})
				if err != nil {
					return err
				}
				s.printf("treasury: %d\nproceeds: %d\n", resp.Treasury, resp.Proceeds)
				return nil
			},
		},
		{
			Name:    "events",
			Summary: "list journaled events",
			Flags: func(fs *pflag.FlagSet) {
				fs.StringVar(&filter, "filter", "", `AIP-160 filter, for example 'type = "ticket.purchased"'`)
				fs.Int32Var(&pageSize, "page-size", 0, "events per page")
				fs.StringVar(&pageToken, "page-token", "", "token from a previous page")
				fs.BoolVar(&descending, "desc", false, "newest first")
			},
			Run: func(ctx context.Context, s *session, _ []string) error {
				orderBy := "seq"
				if descending {
					orderBy = "seq desc"
				}
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				callCtx, cancel := s.callContext(ctx)
				defer cancel()
				resp, err := client.ListEvents(callCtx, &ledgerv1.ListEventsRequest{
					Filter:    filter,
					PageSize:  pageSize,
					PageToken: pageToken,
					OrderBy:   orderBy,
				})
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(s.out, 2, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "SEQ\tTIME\tTYPE\tACTOR\tTICKET")
				for _, evt := range resp.Events {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", evt.Seq, evt.OccurredAt.Format(time.RFC3339), evt.Type, evt.Actor, evt.TicketID)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				if resp.NextPageToken != "" {
					fmt.Fprintf(s.out, "next page: %s\n", resp.NextPageToken)
				}
				return nil
			},
		},
		{
			Name:    "watch",
			Summary: "stream purchase, resale and swap notifications",
			Flags: func(fs *pflag.FlagSet) {
				fs.Uint64Var(&afterSeq, "after", 0, "replay notifications after this sequence")
			},
			Run: func(ctx context.Context, s *session, _ []string) error {
				client, err := s.ledger(ctx)
				if err != nil {
					return err
				}
				stream, err := client.WatchNotifications(s.streamContext(ctx), &ledgerv1.WatchNotificationsRequest{AfterSeq: afterSeq})
				if err != nil {
					return err
				}
				for {
					note, err := stream.Recv()
					if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
						return nil
					}
					if err != nil {
						return err
					}
					s.printNotification(note)
				}
			},
		},
		{
			Name:    "token",
			Usage:   "<account>",
			Summary: "sign a caller token with the ledger caller key",
			Flags: func(fs *pflag.FlagSet) {
				fs.StringVar(&key, "key", os.Getenv("TICKETBOOTH_LEDGER_CALLER_KEY"), "caller signing key")
				fs.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
			},
			Run: func(_ context.Context, s *session, args []string) error {
				account := optionalArg(args, 0)
				if account == "" {
					return fmt.Errorf("%w: account is required", ErrUsage)
				}
				verifier := auth.NewVerifier(key)
				if verifier == nil {
					return fmt.Errorf("%w: --key or TICKETBOOTH_LEDGER_CALLER_KEY is required", ErrUsage)
				}
				token, err := verifier.Issue(account, ttl)
				if err != nil {
					return err
				}
				fmt.Fprintln(s.out, token)
				return nil
			},
		},
	}
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprint(s.out, s.printer.Sprintf(format, args...))
}

func (s *session) printNotification(note *ledgerv1.Notification) {
	switch {
	case note.Purchased != nil:
		s.printf("#%d purchased: ticket %d by %s\n", note.Seq, note.Purchased.TicketID, note.Purchased.Buyer)
	case note.Resold != nil:
		r := note.Resold
		s.printf("#%d resold: ticket %d from %s to %s for %d\n", note.Seq, r.TicketID, r.Seller, r.Buyer, r.Price)
	case note.Swapped != nil:
		w := note.Swapped
		s.printf("#%d swapped: %s holds %d, %s holds %d\n", note.Seq, w.Buyer1, w.TicketID1, w.Buyer2, w.TicketID2)
	}
}

func uintArg(args []string, i int, name string) (uint64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("%w: %s is required", ErrUsage, name)
	}
	v, err := strconv.ParseUint(args[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer: %v", ErrUsage, name, err)
	}
	return v, nil
}

func optionalArg(args []string, i int) string {
	if len(args) <= i {
		return ""
	}
	return args[i]
}
