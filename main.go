/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/lispy/core/config"
	"github.com/google/lispy/core/expr"
	"github.com/google/lispy/core/rendering"
	"github.com/google/lispy/core/repl"
	"github.com/google/lispy/core/views"
	"github.com/peterh/liner"
)

const banner = "Lispy prefix calculator. Type :help for commands, quit or exit to leave."

func main() {
	log.SetFlags(0)
	log.SetPrefix("lispy: ")

	configPath := flag.String("config", "", "path to a YAML configuration file")
	evalExpr := flag.String("e", "", "evaluate one statement, print the result and exit")
	htmlOut := flag.Bool("html", false, "evaluate standard input and write an HTML transcript to standard output")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	session := expr.NewSession()
	if err := repl.Preload(session, cfg.Preload); err != nil {
		log.Fatalf("Failed to preload: %s", expr.FormatError(err))
	}

	switch {
	case *evalExpr != "":
		os.Exit(evalOnce(session, *evalExpr))
	case *htmlOut:
		if err := writeTranscript(session, cfg, os.Stdin, os.Stdout); err != nil {
			log.Fatalf("Failed to write transcript: %v", err)
		}
	default:
		runInteractive(session, cfg)
	}
}

func evalOnce(session *expr.Session, line string) int {
	res, err := session.ParseAndEvaluate(line)
	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, expr.FormatError(err))
		return 1
	}
	fmt.Println(res.Value)
	return 0
}

func writeTranscript(session *expr.Session, cfg *config.Config, in io.Reader, out io.Writer) error {
	renderer, err := rendering.NewTranscriptRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	plain := *cfg
	plain.Color = false
	r := repl.New(session, repl.NewScanReader(in), io.Discard, &plain)
	if err := r.Run(); err != nil {
		return err
	}

	vm := views.BuildTranscriptViewModel("Lispy transcript", r.Transcript(), session.Symbols())
	return renderer.Render(out, vm)
}

func runInteractive(session *expr.Session, cfg *config.Config) {
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	r := repl.New(session, ln, os.Stdout, cfg)
	ln.SetCompleter(r.Complete)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(ln, histPath)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if err := r.Run(); err != nil {
		log.Printf("%v", err)
	}
	fmt.Println()
}

func saveHistory(ln *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("Failed to save history: %v", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		log.Printf("Failed to save history: %v", err)
	}
}
