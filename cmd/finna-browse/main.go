package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"
	log "github.com/sirupsen/logrus"

	"github.com/uvalib/virgo4-finna-ws/internal/browse"
	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

var commands = []string{":more", ":show ", ":books", ":fi", ":help", ":quit"}

func main() {
	api := flag.String("finna", finna.DefaultBaseURL, "Finna API URL")
	timeout := flag.Int("timeout", 10, "Finna request timeout in seconds")
	rps := flag.Float64("rps", 5, "Max Finna requests per second, 0 for unlimited")
	verbose := flag.Bool("v", false, "Log Finna requests")
	flag.Parse()

	if !*verbose {
		log.SetLevel(log.WarnLevel)
	}

	client := finna.NewClient(*api, time.Duration(*timeout)*time.Second, *rps)
	b := &browser{
		ctrl:    browse.NewController(client, finna.DefaultPageSize),
		records: client,
		origin:  *api,
		out:     os.Stdout,
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		var out []string
		for _, c := range commands {
			if strings.HasPrefix(c, input) {
				out = append(out, c)
			}
		}
		return out
	})

	fmt.Fprintln(b.out, "Finna-haku. Kirjoita hakusana tai :help.")
	for {
		input, err := line.Prompt(b.prompt())
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				log.Errorf("prompt failed: %s", err.Error())
			}
			return
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if !b.handle(context.Background(), input) {
			return
		}
	}
}
