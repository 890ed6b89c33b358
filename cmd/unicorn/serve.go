// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/luxfi/unicorn/clock"
	"github.com/luxfi/unicorn/config"
	unilog "github.com/luxfi/unicorn/log"
	"github.com/luxfi/unicorn/metrics"
	"github.com/luxfi/unicorn/peer"
	"github.com/luxfi/unicorn/transport/zmqt"
	"github.com/luxfi/unicorn/vdf"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Join a real round as a single peer over ZeroMQ PUB/SUB",
		Long: `serve runs one UNICORN peer in its own process, publishing and
subscribing to the other peers over ZeroMQ. Every participating process
must be started with the same --peer list (including itself), naming
every peer's id and PUB bind address.`,
		RunE: runServe,
	}

	cmd.Flags().String("id", "", "this peer's id (required)")
	cmd.Flags().String("bind", "", "this peer's PUB bind address, e.g. tcp://*:5556 (required)")
	cmd.Flags().StringArray("peer", nil, "id@addr of a participating peer, repeatable; must include --id/--bind")
	cmd.Flags().Uint64("difficulty", config.DefaultParameters.VdfDifficulty, "VDF difficulty (sequential squarings)")
	cmd.Flags().String("metrics-addr", ":9090", "address to serve Prometheus metrics on")

	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("bind")
	cmd.MarkFlagRequired("peer")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	idFlag, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	bind, err := cmd.Flags().GetString("bind")
	if err != nil {
		return err
	}
	rawPeers, err := cmd.Flags().GetStringArray("peer")
	if err != nil {
		return err
	}
	difficulty, err := cmd.Flags().GetUint64("difficulty")
	if err != nil {
		return err
	}
	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	if err != nil {
		return err
	}

	id, err := peer.ParsePeerID(idFlag)
	if err != nil {
		return fmt.Errorf("invalid --id: %w", err)
	}

	endpoints := make([]zmqt.Endpoint, 0, len(rawPeers))
	for _, raw := range rawPeers {
		parts := strings.SplitN(raw, "@", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid --peer %q: want id@addr", raw)
		}
		endpoints = append(endpoints, zmqt.Endpoint{ID: parts[0], Addr: parts[1]})
	}

	params := config.DefaultParameters
	params.NumPeers = len(endpoints)
	params.VdfDifficulty = difficulty
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	registry := prometheus.NewRegistry()
	m, err := metrics.NewPeer(registry)
	if err != nil {
		return err
	}

	logger, err := unilog.NewProduction()
	if err != nil {
		return err
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			logger.Error("metrics server stopped", "addr", metricsAddr, "err", err)
		}
	}()

	net, err := zmqt.New(idFlag, bind, endpoints)
	if err != nil {
		return fmt.Errorf("failed to start transport: %w", err)
	}
	defer net.Close()

	v := vdf.NewWesolowski()
	p, err := peer.New(id, params, net, v, clock.New(), logger, m)
	if err != nil {
		return err
	}

	res, err := p.Run(context.Background())
	if err != nil {
		return err
	}

	r := <-res
	if r.Success {
		fmt.Printf("[SUCCESS] peer %s agreed on randomness %x\n", idFlag, r.Randomness)
		return nil
	}
	fmt.Printf("[FAILURE] peer %s did not reach agreement\n", idFlag)
	return fmt.Errorf("round failed")
}
