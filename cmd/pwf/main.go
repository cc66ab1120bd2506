package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"pwf/validate"
)

func main() {
	flag.Usage = usage
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "validate":
		os.Exit(runValidate(os.Args[2:]))
	case "history":
		os.Exit(runHistory(os.Args[2:]))
	case "info":
		os.Exit(runInfo(os.Args[2:]))
	case "init":
		os.Exit(runInit(os.Args[2:]))
	case "convert":
		fmt.Fprintln(os.Stderr, "convert is reserved and not yet available; use the library converters")
		os.Exit(2)
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [flags] [args]

Commands:
  validate <files>...   validate Plan YAML documents
  history <files>...    validate History YAML documents
  info                  print format and version information
  init [--history] <path>  write a starter document
  convert               reserved

Common flags:
  --format pretty|json|compact   output style (default pretty)
  --strict                       treat warnings as failures
  --quiet                        suppress warnings (validate only)
`, prog)
}

type outputOptions struct {
	format string
	strict bool
	quiet  bool
}

func parseValidateFlags(name string, args []string) (*outputOptions, []string, bool) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	opts := &outputOptions{}
	fs.StringVar(&opts.format, "format", "pretty", "output style: pretty|json|compact")
	fs.BoolVar(&opts.strict, "strict", false, "treat warnings as failures")
	fs.BoolVar(&opts.quiet, "quiet", false, "suppress warnings")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pwf %s [--format pretty|json|compact] [--strict] [--quiet] <files>...\n", name)
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	switch opts.format {
	case "pretty", "json", "compact":
	default:
		fmt.Fprintf(os.Stderr, "invalid --format %q\n", opts.format)
		return nil, nil, false
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return nil, nil, false
	}
	return opts, fs.Args(), true
}

func runValidate(args []string) int {
	opts, files, ok := parseValidateFlags("validate", args)
	if !ok {
		return 2
	}
	log, err := newLogger(opts.quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	exit := 0
	for _, file := range files {
		doc, err := os.ReadFile(file)
		if err != nil {
			log.Error("read file", "file", file, "error", err)
			exit = 1
			continue
		}
		result := validate.Plan(doc)
		printResult(opts, file, result.Valid, result.Errors, result.Warnings, result)
		if !result.Valid || (opts.strict && len(result.Warnings) > 0) {
			exit = 1
		}
	}
	return exit
}

func runHistory(args []string) int {
	opts, files, ok := parseValidateFlags("history", args)
	if !ok {
		return 2
	}
	log, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	exit := 0
	for _, file := range files {
		doc, err := os.ReadFile(file)
		if err != nil {
			log.Error("read file", "file", file, "error", err)
			exit = 1
			continue
		}
		result := validate.History(doc)
		printResult(opts, file, result.Valid, result.Errors, result.Warnings, result)
		if !result.Valid || (opts.strict && len(result.Warnings) > 0) {
			exit = 1
		}
	}
	return exit
}

// printResult renders one file's outcome. The full result value is used for
// json output; pretty and compact show diagnostics inline.
func printResult(opts *outputOptions, file string, valid bool, errors, warnings []validate.Diagnostic, full any) {
	switch opts.format {
	case "json":
		out, err := json.MarshalIndent(full, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode result for %s: %v\n", file, err)
			return
		}
		fmt.Println(string(out))
	case "compact":
		status := "VALID"
		if !valid {
			status = "INVALID"
		}
		fmt.Printf("%s: %s (%d errors, %d warnings)\n", file, status, len(errors), len(warnings))
	default:
		status := "VALID"
		if !valid {
			status = "INVALID"
		}
		fmt.Printf("%s: %s\n", file, status)
		for _, d := range errors {
			printDiagnostic("error", d)
		}
		if !opts.quiet {
			for _, d := range warnings {
				printDiagnostic("warning", d)
			}
		}
	}
}

func printDiagnostic(kind string, d validate.Diagnostic) {
	if d.Code != "" {
		fmt.Printf("  %s [%s] %s: %s\n", kind, d.Code, d.Path, d.Message)
		return
	}
	fmt.Printf("  %s %s: %s\n", kind, d.Path, d.Message)
}

func runInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	_ = fs.Parse(args)

	fmt.Println("pwf: Portable Workout Format toolkit")
	fmt.Println("  plan schema versions:    1, 2")
	fmt.Println("  history schema versions: 1, 2")
	fmt.Println("  importers:               fit, tcx, gpx")
	fmt.Println("  exporters:               tcx, gpx, csv, parquet")
	return 0
}

const starterPlan = `plan_version: 2
meta:
  title: My Training Plan
  status: draft
exercise_library:
  - id: squat
    name: Back Squat
    modality: strength
    default_sets: 3
    default_reps: 5
cycle:
  days:
    - order: 1
      focus: Lower body
      exercises:
        - exercise_ref: squat
`

const starterHistory = `history_version: 2
exported_at: "2026-01-01T00:00:00Z"
workouts:
  - date: "2026-01-01"
    exercises:
      - name: Back Squat
        modality: strength
        sets:
          - set_number: 1
            reps: 5
            weight_kg: 100
`

func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	history := fs.Bool("history", false, "write a starter History instead of a Plan")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pwf init [--history] <path>")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "%s already exists\n", path)
		return 1
	}

	content := starterPlan
	if *history {
		content = starterHistory
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
		return 1
	}
	fmt.Printf("wrote %s\n", path)
	return 0
}
