package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cqkv/propmigrate"
	"github.com/cqkv/propmigrate/model"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

type kingpinHandler func(input string) (exitCode int)
type kingpinCommand func(*kingpin.Application) (*kingpin.CmdClause, kingpinHandler)

var commands = []kingpinCommand{
	infoCommand,
	dumpCommand,
	chainsCommand,
	migrateCommand,
	getCommand,
}

var (
	logLevel     *string
	useMMap      *bool
	storeVersion *string

	logger = logrus.New()
)

func main() {
	app := kingpin.New("propmigrate", "read and migrate a legacy graph property store")
	logLevel = app.Flag("log-level", "panic, fatal, error, warn, info, debug or trace").Default("info").String()
	useMMap = app.Flag("mmap", "read the store through a memory mapping").Bool()
	storeVersion = app.Flag("store-version", "version tag of the legacy store trailer").Default(model.LegacyVersion).String()

	handlers := map[string]kingpinHandler{}
	for _, cmdFunc := range commands {
		command, handler := cmdFunc(app)
		handlers[command.FullCommand()] = handler
	}

	input := kingpin.MustParse(app.Parse(os.Args[1:]))
	if err := setLogLevel(*logLevel); err != nil {
		app.Fatalf("%v", err)
	}

	handler, ok := handlers[input]
	if !ok {
		app.Fatalf("unknown command %s", input)
	}
	os.Exit(handler(input))
}

func setLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}

func readerOptions() []propmigrate.Option {
	ops := []propmigrate.Option{
		propmigrate.WithLogger(logger),
		propmigrate.WithVersion(*storeVersion),
	}
	if *useMMap {
		ops = append(ops, propmigrate.WithMMap())
	}
	return ops
}

func storePath(storeDir string) string {
	return filepath.Join(storeDir, model.StoreFileName)
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "propmigrate: %v\n", err)
	return 1
}
