// Command floresta-ask answers deforestation questions from the terminal
//
//	floresta-ask "ranking de desmatamento em 2024"
//	echo "como está o Pará?" | floresta-ask -json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"observafloresta/internal/platform/config"
	"observafloresta/internal/platform/logger"
)

func main() {
	// logs go to stderr so stdout stays pipeable
	lo := logger.FromEnv()
	lo.Writer = os.Stderr
	if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
		lo.Level = "warn"
	}
	logger.Init(lo)

	cfg := config.New().Prefix("FLORESTA_ASK_")

	var o runOptions
	flag.BoolVar(&o.JSON, "json", false, "print the answer as JSON")
	flag.BoolVar(&o.ParseOnly, "parse", false, "print only the parsed query, no data lookups")
	flag.BoolVar(&o.Table, "table", false, "append ranking and biome data as an aligned table")
	flag.StringVar(&o.DataURL, "url", cfg.MayString("DATA_URL", ""), "floresta-api origin, empty uses the embedded dataset")
	flag.Parse()
	o.Rate = cfg.MayFloat64("RATE", 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, flag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "floresta-ask:", err)
		os.Exit(1)
	}
}
