package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/borealsat/boreal/solver"
)

var (
	verbose   bool
	progress  bool
	noModel   bool
	dump      bool
	conflicts int64
)

func main() {
	cmd := &cobra.Command{
		Use:   "boreal [file.cnf]",
		Short: "boreal is an incremental CDCL SAT solver",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,

		SilenceUsage: true,
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log solver internals to stderr")
	cmd.Flags().BoolVar(&progress, "progress", false, "write the progress report stream to stderr")
	cmd.Flags().BoolVar(&noModel, "no-model", false, "do not print the model of satisfiable problems")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the parsed problem instead of solving it")
	cmd.Flags().Int64Var(&conflicts, "conflicts", -1, "conflict budget, negative means none")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	s := solver.New(solver.DefaultOptions())
	if verbose {
		log := logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.DebugLevel)
		s.SetLogger(log)
	}
	if progress {
		s.SetReportWriter(os.Stderr)
	}
	s.SetConflictLimit(conflicts)

	if err := solver.ParseCNF(in, s); err != nil {
		return err
	}

	if dump {
		return s.Dump(os.Stdout)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		s.Terminate()
	}()

	res := s.Solve()
	switch res {
	case solver.Satisfiable:
		color.Green("s SATISFIABLE")
		if !noModel {
			printModel(s)
		}
	case solver.Unsatisfiable:
		color.Red("s UNSATISFIABLE")
	default:
		color.Yellow("s UNKNOWN")
	}
	if verbose {
		stats := s.Stats()
		log := logrus.New()
		log.SetOutput(os.Stderr)
		stats.Log(log)
	}
	os.Exit(res)
	return nil
}

func printModel(s *solver.Solver) {
	fmt.Print("v")
	for v := 1; v <= s.Vars(); v++ {
		if val := s.Val(v); val != 0 {
			fmt.Printf(" %d", val)
		}
	}
	fmt.Println(" 0")
}
