package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/AndrewCRMartin/FixAtomNames/labels"
)

var (
	FlagCpu = runtime.NumCPU()

	FlagVerbose = false

	// FlagReport is the verbosity of the per-residue report.
	FlagReport = labels.Silent

	FlagIle = labels.DefaultConfig().FixIle

	FlagDryRun = false
)

func init() {
	log.SetFlags(0)
}

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"cpu": {
		set: func() {
			flag.IntVar(&FlagCpu, "cpu", FlagCpu,
				"The max number of CPUs to use.")
		},
		init: func() {
			runtime.GOMAXPROCS(FlagCpu)
		},
	},
	"verbose": {
		set: func() {
			flag.BoolVar(&FlagVerbose, "verbose", FlagVerbose,
				"When set, progress and summaries are printed to stderr.")
		},
	},
	"v": {
		set: func() {
			flag.IntVar(&FlagReport, "v", FlagReport,
				"Residue report level. 0 is silent, 1 reports relabelled\n"+
					"residues only and 2 reports every residue evaluated.")
		},
	},
	"ile": {
		set: func() {
			flag.BoolVar(&FlagIle, "ile", FlagIle,
				"When set, isoleucine CG1/CG2 are relabelled too.")
		},
	},
	"n": {
		set: func() {
			flag.BoolVar(&FlagDryRun, "n", FlagDryRun,
				"When set, residues are evaluated and reported but no\n"+
					"coordinates are changed.")
		},
	},
}

func FlagUse(names ...string) {
	for _, name := range names {
		commonFlags[name].use = true
	}
}

// FixerConfig builds the fixer configuration from the common flags. The
// reporter is left for the caller to set.
func FixerConfig() labels.Config {
	conf := labels.DefaultConfig()
	conf.FixIle = FlagIle
	conf.DryRun = FlagDryRun
	return conf
}

// Usage just calls `flag.Usage`. It's included here to avoid
// an extra import to `flag` just to call Usage.
func Usage() {
	flag.Usage()
}

// Arg just calls `flag.Arg`. It's included here to avoid
// an extra import to `flag` just to call Arg.
func Arg(i int) string {
	return flag.Arg(i)
}

// Args just calls `flag.Args`.
func Args() []string {
	return flag.Args()
}

// NArg just calls `flag.NArg`. It's included here to avoid
// an extra import to `flag` just to call NArg.
func NArg() int {
	return flag.NArg()
}

func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		flag.VisitAll(func(fl *flag.Flag) {
			var def string
			if len(fl.DefValue) > 0 {
				def = fmt.Sprintf(" (default: %s)", fl.DefValue)
			}

			usage := strings.Replace(fl.Usage, "\n", "\n    ", -1)
			log.Printf("-%s%s\n", fl.Name, def)
			log.Printf("    %s\n", usage)
		})
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}
