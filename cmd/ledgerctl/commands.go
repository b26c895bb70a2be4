package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"message-ledger/client"
	"message-ledger/domain"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const callTimeout = 10 * time.Second

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Addr    string
	Token   string
	Colours bool
	Trace   bool
}

func NewRootCommand(cfg Config) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Client for the message ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Addr, "addr", cfg.Addr, "ledger server address")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", cfg.Token, "bearer token returned by login")
	cmd.PersistentFlags().BoolVar(&opts.Colours, "colours", cfg.Colours, "colorized output")
	cmd.PersistentFlags().BoolVar(&opts.Trace, "trace", cfg.Trace, "print every gRPC call")

	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newSendCommand(opts))
	cmd.AddCommand(newGetCommand(opts))
	cmd.AddCommand(newReadCommand(opts))
	cmd.AddCommand(newCountCommand(opts))
	cmd.AddCommand(newInboxCommand(opts))
	return cmd
}

func newRegisterCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Create an account and print its identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *client.LedgerClient) error {
				session, err := c.Register(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				renderSession(cmd.OutOrStdout(), session, opts.Colours)
				return nil
			})
		},
	}
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Print a fresh token for LEDGER_TOKEN",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *client.LedgerClient) error {
				session, err := c.Login(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				renderSession(cmd.OutOrStdout(), session, opts.Colours)
				return nil
			})
		},
	}
}

func newSendCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <sender> <receiver> <content>",
		Short: "Deliver a message and print its id",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *client.LedgerClient) error {
				content := strings.Join(args[2:], " ")
				id, err := c.SendMessage(ctx, domain.Identity(args[0]), domain.Identity(args[1]), content)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", paint("Message sent with ID:", opts.Colours), id)
				return nil
			})
		},
	}
}

func newGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id> <requester>",
		Short: "Fetch a message as one of its parties",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(cmd, opts, func(ctx context.Context, c *client.LedgerClient) error {
				message, err := c.GetMessage(ctx, id, domain.Identity(args[1]))
				if err != nil {
					return err
				}
				renderMessages(cmd.OutOrStdout(), []domain.Message{message}, opts.Colours)
				return nil
			})
		},
	}
}

func newReadCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id> <reader>",
		Short: "Mark a message as read as its receiver",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(cmd, opts, func(ctx context.Context, c *client.LedgerClient) error {
				if err := c.MarkAsRead(ctx, id, domain.Identity(args[1])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", paint("Marked as read:", opts.Colours), id)
				return nil
			})
		},
	}
}

func newCountCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of messages ever sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *client.LedgerClient) error {
				count, err := c.GetMessageCount(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			})
		},
	}
}

func newInboxCommand(opts *RootOptions) *cobra.Command {
	var cursor uint64
	var limit int

	cmd := &cobra.Command{
		Use:   "inbox <receiver>",
		Short: "List received messages, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var from *uint64
			if cmd.Flags().Changed("cursor") {
				from = &cursor
			}
			return withClient(cmd, opts, func(ctx context.Context, c *client.LedgerClient) error {
				messages, next, err := c.ListInbox(ctx, domain.Identity(args[0]), from, limit)
				if err != nil {
					return err
				}
				renderMessages(cmd.OutOrStdout(), messages, opts.Colours)
				if next != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s --cursor %d\n", paint("More messages:", opts.Colours), *next)
				}
				return nil
			})
		},
	}

	cmd.Flags().Uint64Var(&cursor, "cursor", 0, "continue below this message id")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size, capped by the server")
	return cmd
}

func withClient(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, c *client.LedgerClient) error) error {
	var dialOpts []grpc.DialOption
	if opts.Trace {
		dialOpts = append(dialOpts, grpc.WithUnaryInterceptor(traceInterceptor(cmd, opts.Colours)))
	}
	c, err := client.Dial(opts.Addr, opts.Token, dialOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), callTimeout)
	defer cancel()
	if err = fn(ctx, c); err != nil {
		if st, ok := status.FromError(err); ok {
			return fmt.Errorf("%s: %s", st.Code(), st.Message())
		}
		return err
	}
	return nil
}

func traceInterceptor(cmd *cobra.Command, colours bool) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		line := fmt.Sprintf("GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
		if colours {
			line = color.New(color.BgBlack, color.FgGreen).Render(line)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), line)
		return err
	}
}

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid message id %q: %w", raw, err)
	}
	return id, nil
}
