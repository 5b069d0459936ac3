package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/signalpost/rosetta/internal/tokenizer"
)

func languagesCmd() *cli.Command {
	var verbose bool

	flags := append(modelFlags(),
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "include an English display name for each code",
			Destination: &verbose,
		},
	)

	return &cli.Command{
		Name:  "languages",
		Usage: "List the language codes the model supports",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyCommonConfig(cmd, LoadConfig())

			tokPath, err := resolveTokenizerPath()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			tok, err := tokenizer.Load(tokPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			for _, code := range tok.Languages() {
				if verbose {
					fmt.Printf("%-8s %s\n", code, displayName(code))
				} else {
					fmt.Println(code)
				}
			}
			return nil
		},
	}
}

// displayName resolves the English name for a code such as "fr_XX".
// Codes the language registry does not know come back unchanged.
func displayName(code string) string {
	base, _, _ := strings.Cut(code, "_")
	tag, err := language.Parse(base)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
