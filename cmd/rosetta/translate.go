package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

func translateCmd() *cli.Command {
	var (
		srcLang string
		tgtLang string
	)

	flags := append(modelFlags(), backendFlags()...)
	flags = append(flags, loggingFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "src-lang",
			Aliases:     []string{"from", "src_lang"},
			Usage:       "source language code (see the languages command)",
			Value:       "en_XX",
			Destination: &srcLang,
		},
		&cli.StringFlag{
			Name:        "tgt-lang",
			Aliases:     []string{"to", "tgt_lang"},
			Usage:       "target language code",
			Destination: &tgtLang,
		},
	)

	return &cli.Command{
		Name:      "translate",
		Usage:     "Translate texts between supported languages",
		ArgsUsage: "[text ...]",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyCommonConfig(cmd, LoadConfig())
			log := buildLogger()

			if strings.TrimSpace(tgtLang) == "" {
				return cli.Exit("error: --tgt-lang is required", 1)
			}

			texts := cmd.Args().Slice()
			if len(texts) == 0 {
				lines, err := readLines(os.Stdin)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: read stdin: %v", err), 1)
				}
				texts = lines
			}

			svc, err := loadService(ctx, log)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load model: %v", err), 1)
			}
			defer func() { _ = svc.Close() }()

			out, err := svc.Translate(ctx, texts, srcLang, tgtLang)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: translate: %v", err), 1)
			}
			for _, line := range out {
				fmt.Println(line)
			}
			return nil
		},
	}
}

// readLines collects non-empty lines, one text per line.
func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
