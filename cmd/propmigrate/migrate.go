package main

import (
	"fmt"
	"strconv"

	"github.com/cqkv/propmigrate"
	"github.com/cqkv/propmigrate/config"
	"github.com/cqkv/propmigrate/sink"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

func migrateCommand(app *kingpin.Application) (*kingpin.CmdClause, kingpinHandler) {
	cmd := app.Command("migrate", "copy a legacy property store into a leveldb target")
	configPath := cmd.Flag("config", "TOML config file, overrides the arguments").String()
	storeDir := cmd.Arg("store-dir", "directory holding the legacy store").String()
	targetDir := cmd.Arg("target-dir", "leveldb directory to write").String()

	return cmd, func(string) int {
		cfg := config.Default()
		if *configPath != "" {
			loaded, err := config.Load(*configPath)
			if err != nil {
				return fail(err)
			}
			cfg = loaded
			l, err := cfg.NewLogger()
			if err != nil {
				return fail(err)
			}
			logger = l
		} else {
			cfg.StoreDir = *storeDir
			cfg.Target.Dir = *targetDir
			cfg.Version = *storeVersion
			cfg.MMap = *useMMap
			cfg.Log.Level = logger.GetLevel().String()
		}
		if err := cfg.Validate(); err != nil {
			return fail(err)
		}
		if cfg.Target.Dir == "" {
			return fail(errors.Wrap(config.ErrInvalidConfig, "target dir is required"))
		}

		dst, err := sink.Open(cfg.Target.Dir)
		if err != nil {
			return fail(err)
		}
		defer dst.Close()

		ops := []propmigrate.Option{
			propmigrate.WithLogger(logger),
			propmigrate.WithVersion(cfg.Version),
		}
		if cfg.MMap {
			ops = append(ops, propmigrate.WithMMap())
		}

		result, err := propmigrate.Migrate(cfg.StoreDir, dst, ops...)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("run %s: %s records (%s dynamic), %s tombstones, %s read in %s\n",
			result.RunID,
			humanize.Comma(int64(result.Records)),
			humanize.Comma(int64(result.Dynamic)),
			humanize.Comma(int64(result.Tombstones)),
			humanize.Bytes(uint64(result.StoreBytes)),
			result.Duration)
		return 0
	}
}

func getCommand(app *kingpin.Application) (*kingpin.CmdClause, kingpinHandler) {
	cmd := app.Command("get", "print one migrated property")
	targetDir := cmd.Arg("target-dir", "leveldb directory written by migrate").Required().String()
	id := cmd.Arg("id", "record id").Required().String()

	return cmd, func(string) int {
		recordID, err := strconv.ParseUint(*id, 10, 64)
		if err != nil {
			return fail(err)
		}

		src, err := sink.OpenExisting(*targetDir)
		if err != nil {
			return fail(err)
		}
		defer src.Close()

		record, err := src.Get(recordID)
		if err != nil {
			return fail(err)
		}
		data, err := record.Data()
		if err != nil {
			return fail(err)
		}
		fmt.Printf("%s key=%d %s\n", record, data.KeyIndexID, data.Value)
		return 0
	}
}
