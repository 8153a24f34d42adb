package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/graaaaa/vrcvisits/internal/watch"
)

func (c *cli) watchCmd(f *rootFlags) *cobra.Command {
	var replay time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the live VRChat log and print each new visit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return c.report(err)
			}
			logger := c.logger(f.verbose)
			s := f.settings(cmd, c.loadConfig())
			// Age filtering is meaningless for joins as they happen.
			filter := s.filter
			filter.MinAge = 0

			since := watch.ReplaySince(c.clock.Now(), replay)
			opts := []watch.Option{watch.WithLogger(logger)}
			if s.logDir != "" {
				opts = append(opts, watch.WithLogDir(s.logDir))
			}
			source := watch.NewSource(since, opts...)

			p := newPresenter(c.stdout, c.clock)
			follower := watch.NewFollower(source, p.single,
				watch.WithFilter(filter),
				watch.WithClock(c.clock),
				watch.WithFollowerLogger(logger),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := follower.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return c.report(err)
		},
	}
	cmd.Flags().DurationVar(&replay, "replay", 0, "also print visits from this far back (e.g. 30m)")
	return cmd
}
