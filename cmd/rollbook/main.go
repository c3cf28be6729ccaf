package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeanpaul/rollbook/internal/config"
	"github.com/jeanpaul/rollbook/internal/export"
	"github.com/jeanpaul/rollbook/internal/logging"
	"github.com/jeanpaul/rollbook/internal/stats"
	"github.com/jeanpaul/rollbook/internal/store"
	"github.com/jeanpaul/rollbook/internal/tui"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version")
	writeConfigFlag := flag.Bool("write-config", false, "Write a starter config file and exit")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")
	verboseFlag := flag.Bool("verbose", false, "Debug logging")
	dataFlag := flag.String("data", "", "Data file override")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("rollbook %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if *writeConfigFlag {
		path, err := config.WriteDefault()
		if err != nil {
			fatal("could not write config: %v", err)
		}
		fmt.Println("Wrote " + path)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %v", err)
	}
	if *dataFlag != "" {
		cfg.DataFile = *dataFlag
	}
	if err := cfg.Validate(); err != nil {
		fatal("config error: %v", err)
	}

	log, err := logging.New(cfg.LogFile, cfg.Verbose || *verboseFlag)
	if err != nil {
		// The log file being unwritable should not keep records offline.
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		log = logging.Nop()
	}
	defer log.Sync()

	args := flag.Args()
	if len(args) > 0 {
		runCommand(cfg, log, args)
		return
	}

	st := store.Open(cfg.DataFile, cfg.BackupDir, log)
	p := tea.NewProgram(tui.NewModel(cfg, st, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("terminal error: %v", err)
	}
	// The alt screen swallowed the in-program farewell, so say it again.
	fmt.Println(tui.Farewell)
}

func runCommand(cfg *config.Config, log *zap.Logger, args []string) {
	switch args[0] {
	case "export":
		format := "csv"
		if len(args) > 1 {
			format = args[1]
		}
		cmdExport(cfg, log, format)
	case "stats":
		cmdStats(cfg, log)
	case "backups":
		if len(args) < 2 {
			fatal("usage: rollbook backups <list|diff SNAPSHOT>")
		}
		switch args[1] {
		case "list":
			cmdBackupsList(cfg)
		case "diff":
			if len(args) < 3 {
				fatal("usage: rollbook backups diff <snapshot-file>")
			}
			cmdBackupsDiff(cfg, args[2])
		default:
			fatal("unknown backups command: %s", args[1])
		}
	case "check":
		cmdCheck(cfg)
	case "help":
		showHelp()
	default:
		fatal("unknown command: %s (try 'rollbook help')", args[0])
	}
}

func cmdExport(cfg *config.Config, log *zap.Logger, format string) {
	st := store.Open(cfg.DataFile, cfg.BackupDir, log)
	if err := st.LoadError(); err != nil {
		fatal("could not load student records: %v", err)
	}

	var path string
	var err error
	switch format {
	case "csv":
		path = cfg.CSVExport
		err = export.CSV(path, st.All(), log)
	case "xlsx", "excel":
		path = cfg.XLSXExport
		err = export.XLSX(path, st.All(), log)
	default:
		fatal("unknown export format: %s (want csv or xlsx)", format)
	}
	if err != nil {
		fatal("export failed: %v", err)
	}
	fmt.Println("Students exported to " + path)
}

func cmdStats(cfg *config.Config, log *zap.Logger) {
	st := store.Open(cfg.DataFile, cfg.BackupDir, log)
	if err := st.LoadError(); err != nil {
		fatal("could not load student records: %v", err)
	}
	fmt.Print(stats.Compute(st.All()).Markdown())
}

func cmdBackupsList(cfg *config.Config) {
	snaps, err := store.ListSnapshots(cfg.BackupDir)
	if err != nil {
		fatal("could not list backups: %v", err)
	}
	if len(snaps) == 0 {
		fmt.Println("No backups found.")
		return
	}
	for _, s := range snaps {
		fmt.Printf("%s  %8d bytes  %s\n", s.Name, s.Size, s.ModTime.Format("2006-01-02 15:04:05"))
	}
}

func cmdBackupsDiff(cfg *config.Config, snapshot string) {
	path := snapshot
	if filepath.Dir(path) == "." {
		path = filepath.Join(cfg.BackupDir, snapshot)
	}
	diff, err := store.DiffSnapshot(cfg.DataFile, path)
	if err != nil {
		fatal("diff failed: %v", err)
	}
	if diff == "" {
		fmt.Println("No differences.")
		return
	}
	fmt.Print(diff)
}

func cmdCheck(cfg *config.Config) {
	data, err := os.ReadFile(cfg.DataFile)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("%s: no data file yet\n", cfg.DataFile)
			return
		}
		fatal("could not read %s: %v", cfg.DataFile, err)
	}
	if err := store.CheckSchema(data); err != nil {
		fatal("%s: %v", cfg.DataFile, err)
	}
	fmt.Printf("%s: OK\n", cfg.DataFile)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func showHelp() {
	fmt.Print(`rollbook - student record manager for your terminal

USAGE:
  rollbook [flags]            Start the interactive manager
  rollbook <command> [args]   Run a command

COMMANDS:
  export [csv|xlsx]           Export all records (default csv)
  stats                       Print summary statistics
  backups list                List backup snapshots
  backups diff <snapshot>     Diff current records against a snapshot
  check                       Validate the data file against the record schema
  help                        Show this help

FLAGS:
  -data <file>                Data file override
  -verbose                    Debug logging
  -write-config               Write a starter config file and exit
  -version                    Print version
  -h, -help                   Show this help
`)
}
