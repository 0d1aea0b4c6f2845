/* main.go
 * The "main" method for running the bracket pool. Starts the discord bot, the HTTP api or both.
 * Usage: go run . -mode="<all|bot|web>" -test="<true|false>" -season="<year>"
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bracket-pool/api/api"
	"bracket-pool/api/bracket"
	"bracket-pool/api/external"
	"bracket-pool/bot"
	"bracket-pool/config"
	"bracket-pool/logger"
	"bracket-pool/web"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	//Flags
	modePtr := flag.String("mode", "all", "What to run: all, bot or web")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")
	seasonPtr := flag.String("season", "", "Tournament year, overrides SEASON, e.g. 2024")
	flag.Parse()

	if err := run(*modePtr, *testPtr, *seasonPtr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(modeFlag, testFlag, season string) error {
	mode, err := parseMode(modeFlag)
	if err != nil {
		return err
	}
	beta, err := convertStrToBool(testFlag)
	if err != nil {
		return fmt.Errorf("invalid \"test\" flag, should be true or false: %w", err)
	}

	if season != "" {
		os.Setenv("SEASON", season)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	rankStyle, err := api.ParseRankStyle(cfg.RankStyle)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := external.NewClient(external.ClientConfig{
		BaseURL:  cfg.NCAABaseURL,
		RPS:      cfg.UpstreamRPS,
		Retries:  cfg.UpstreamRetries,
		CacheTTL: cfg.ScoreboardCacheTTL,
		Logger:   log,
	})
	source := external.NewSource(client, bracket.NewEncoder(bracket.DefaultConfig()), cfg.Days())

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	poolAPI, err := api.NewAPI(connectCtx, api.Options{
		DBName:     cfg.DBName,
		MongoURI:   cfg.MongoURI,
		Season:     cfg.Season,
		RankStyle:  rankStyle,
		ResultsTTL: cfg.ResultsTTL,
		Source:     source,
		Logger:     log,
	})
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize API: %w", err)
	}
	defer func() {
		if err := poolAPI.Store.GetClient().Disconnect(context.Background()); err != nil {
			log.WithError(err).Error("failed to disconnect from mongo")
		}
	}()

	log.WithFields(logrus.Fields{
		"mode":   mode,
		"season": cfg.Season,
		"days":   len(cfg.Days()),
	}).Info("starting bracket pool")

	g, gctx := errgroup.WithContext(ctx)
	if mode.runsBot() {
		b, err := bot.NewBot(cfg.DiscordToken(beta), poolAPI, log)
		if err != nil {
			return err
		}
		g.Go(func() error { return b.Run(gctx) })
	}
	if mode.runsWeb() {
		g.Go(func() error {
			return web.Start(gctx, web.Config{
				Addr:          cfg.HTTPAddr,
				API:           poolAPI,
				WebhookSecret: cfg.WebhookSecret,
				Logger:        log,
			})
		})
	}
	return g.Wait()
}
