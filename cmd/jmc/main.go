package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/jmc-lang/jmcc/internal/compile"
	"github.com/jmc-lang/jmcc/internal/config"
	"github.com/jmc-lang/jmcc/internal/diag"
	"github.com/jmc-lang/jmcc/internal/lexer"
	"github.com/jmc-lang/jmcc/internal/util"
)

var version string

type options struct {
	File      string `short:"f" long:"file" description:"Entry JMC file to compile" value-name:"filename" default:"main.jmc"`
	Output    string `short:"o" long:"output" description:"Datapack output directory" value-name:"dir" default:"."`
	Config    string `short:"c" long:"config" description:"Path to the project's jmc.yaml" value-name:"filename"`
	Namespace string `long:"namespace" description:"Override the datapack namespace from jmc.yaml"`
	LogLevel  string `long:"log-level" description:"Log level (debug, info, warn, error)" value-name:"level"`
	DryRun    bool   `long:"dry-run" description:"Print the compiled file tree instead of writing it"`
	Help      bool   `long:"help" description:"Show this help"`
	Version   bool   `long:"version" description:"Show this version"`
}

func parseOptions(args []string) *options {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[option...]"
	if _, err := parser.ParseArgs(args); err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	return &opts
}

func main() {
	opts := parseOptions(os.Args[1:])
	util.InitSlog(opts.LogLevel)

	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}
	output := cfg.Output
	if opts.Output != "." {
		output = opts.Output
	}

	source, err := os.ReadFile(opts.File)
	if err != nil {
		log.Fatal(err)
	}

	vf, err := compile.Compile(string(source), opts.File, cfg.Namespace)
	if err != nil {
		if syntaxErr, ok := err.(*lexer.SyntaxError); ok {
			diag.Print(os.Stderr, syntaxErr)
			os.Exit(1)
		}
		log.Fatal(err)
	}

	if opts.DryRun {
		for _, path := range vf.Paths() {
			fmt.Println(path)
		}
		return
	}

	if err := vf.Materialize(output); err != nil {
		log.Fatal(err)
	}
	slog.Info("wrote datapack", "namespace", cfg.Namespace, "output", output, "files", len(vf.Paths()))
}
