package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"
	"waveform/render"
	"waveform/types"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path] [project]",
		Short: "列出全部波形与样式",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := open(ctx, cmd, args)
			if err != nil {
				return err
			}
			defer s.engine.Close(ctx)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", s.engine.Project(), s.engine.Analysis())
			vc := s.engine.Registry().VoltageCount()
			for _, t := range s.engine.Traces() {
				color := "-"
				if !t.Color.IsZero() {
					color = t.Color.Hex()
				}
				mark := " "
				if t.Visible {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %3d %-8s %-16s %-8s %-7s %s\n",
					mark, t.Index, types.KindOf(t.Index, vc), t.Name, color, t.Thickness.Label(), t.Style.Label())
			}
			return nil
		},
	}
}

func newMeterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meter [path] [project]",
		Short: "打印可见波形的有效值",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := open(ctx, cmd, args)
			if err != nil {
				return err
			}
			defer s.engine.Close(ctx)
			readings := s.engine.Meters()
			if len(readings) == 0 {
				return errors.New(types.MessageNoTraces)
			}
			for _, r := range readings {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [path] [project]",
		Short: "以网页发布当前曲线",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			s, err := open(ctx, cmd, args)
			if err != nil {
				return err
			}
			defer s.engine.Close(context.Background())

			// 引擎只能在单个协程中使用
			var mu sync.Mutex
			charts := render.NewCharts(s.engine.Project(), func() types.Frame {
				mu.Lock()
				defer mu.Unlock()
				return s.engine.Frame()
			})
			charts.Logger = s.log
			addr, _ := cmd.Flags().GetString("addr")
			mux := http.NewServeMux()
			mux.HandleFunc("/", charts.Handler)
			srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdown)
			}()
			s.log.Info("网页已发布", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", ":8080", "监听地址")
	return cmd
}
