package main

import (
	"fmt"

	"github.com/cqkv/propmigrate/fio"
	"github.com/cqkv/propmigrate/model"
	"github.com/dustin/go-humanize"
	"gopkg.in/alecthomas/kingpin.v2"
)

func infoCommand(app *kingpin.Application) (*kingpin.CmdClause, kingpinHandler) {
	cmd := app.Command("info", "show the size and slot count of a legacy property store")
	storeDir := cmd.Arg("store-dir", "directory holding "+model.StoreFileName).Required().String()

	return cmd, func(string) int {
		ioType := fio.StandardFileIO
		if *useMMap {
			ioType = fio.MemoryMap
		}
		ioManager, err := fio.NewIOManager(storePath(*storeDir), ioType)
		if err != nil {
			return fail(err)
		}
		file, err := model.OpenStoreFile(ioManager, *storeVersion)
		if err != nil {
			_ = ioManager.Close()
			return fail(err)
		}
		defer file.Close()

		trailer, err := file.ReadTrailer()
		if err != nil {
			return fail(err)
		}
		expected := model.Trailer(*storeVersion)

		fmt.Printf("store:   %s\n", storePath(*storeDir))
		fmt.Printf("size:    %s\n", humanize.Bytes(uint64(file.Size())))
		fmt.Printf("slots:   %s\n", humanize.Comma(int64(file.SlotCount())))
		fmt.Printf("trailer: %q", trailer)
		if string(trailer) != expected {
			fmt.Printf(" (expected %q)", expected)
		}
		fmt.Println()
		return 0
	}
}
