package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seriev/lined"
)

var (
	multiline   bool
	historyFile string
)

var rootCmd = &cobra.Command{
	Use:   "lined-demo",
	Short: "Interactive demo shell for the lined line editor",
	Long: `Reads lines with tab-completion and persistent history.
Try typing 'h' and pressing tab. The command /historylen N adjusts the
history capacity; ctrl-d on an empty line exits.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&multiline, "multiline", false, "wrap long lines across rows instead of scrolling")
	rootCmd.Flags().StringVar(&historyFile, "history", "history.txt", "history file path")
}

func run(cmd *cobra.Command, args []string) error {
	editor := lined.NewEditor()
	editor.SetMultiLine(multiline)
	if multiline {
		fmt.Println("Multi-line mode enabled.")
	}

	editor.SetCompletionProducer(func(prefix string) []string {
		if strings.HasPrefix(prefix, "h") {
			return []string{"hello", "hi", "hey", "howzit"}
		}
		return nil
	})

	if err := editor.LoadHistory(historyFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	for {
		line, err := editor.GetLine("hello> ")
		if errors.Is(err, io.EOF) || errors.Is(err, lined.ErrInterrupted) {
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case strings.HasPrefix(line, "/historylen"):
			n, convErr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/historylen")))
			if convErr != nil {
				fmt.Printf("usage: /historylen N\n")
				continue
			}
			if err := editor.SetHistoryCapacity(n); err != nil {
				fmt.Println(err)
			}
		case strings.HasPrefix(line, "/"):
			fmt.Printf("Unrecognized command: %s\n", line)
		case line != "":
			fmt.Printf("echo: '%s'\n", line)
			editor.AddToHistory(line)
			if err := editor.SaveHistory(historyFile); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
