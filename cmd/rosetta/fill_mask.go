package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/signalpost/rosetta/internal/translator"
)

func fillMaskCmd() *cli.Command {
	var (
		srcLang string
		topk    int64
	)

	flags := append(modelFlags(), backendFlags()...)
	flags = append(flags, loggingFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "lang",
			Aliases:     []string{"src-lang", "src_lang"},
			Usage:       "language code of the text",
			Value:       "en_XX",
			Destination: &srcLang,
		},
		&cli.Int64Flag{
			Name:        "topk",
			Aliases:     []string{"top-k", "k"},
			Usage:       "number of candidates to return",
			Value:       translator.DefaultTopK,
			Destination: &topk,
		},
	)

	return &cli.Command{
		Name:      "fill-mask",
		Usage:     "Suggest fills for the <mask> token in a text",
		ArgsUsage: "<text>",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyCommonConfig(cmd, LoadConfig())
			log := buildLogger()

			if cmd.Args().Len() != 1 {
				return cli.Exit("error: fill-mask takes exactly one text argument", 1)
			}
			text := cmd.Args().First()

			svc, err := loadService(ctx, log)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load model: %v", err), 1)
			}
			defer func() { _ = svc.Close() }()

			fills, err := svc.FillMask(ctx, text, srcLang, int(topk))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: fill mask: %v", err), 1)
			}
			for i, word := range fills {
				fmt.Printf("%2d. %s\n", i+1, word)
			}
			return nil
		},
	}
}
